package bignum

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatUint renders u most significant digit first.
func FormatUint(u BigUint) string {
	ds := u.view()
	var sb strings.Builder
	sb.Grow(len(ds))
	for i := len(ds) - 1; i >= 0; i-- {
		sb.WriteByte('0' + ds[i])
	}
	return sb.String()
}

// FormatInt renders i with a leading '-' when negative. When width exceeds
// the natural length, pad is inserted between the sign and the digits until
// the rendering is width runes long. A width of zero disables padding.
func FormatInt(i BigInt, width int, pad rune) string {
	digits := FormatUint(i.mag)
	sign := ""
	if i.IsNegative() {
		sign = "-"
	}
	natural := len(sign) + len(digits)
	if width <= natural {
		return sign + digits
	}
	if !utf8.ValidRune(pad) {
		pad = '0'
	}
	return sign + strings.Repeat(string(pad), width-natural) + digits
}

// String returns the decimal representation of u.
func (u BigUint) String() string { return FormatUint(u) }

// String returns the decimal representation of i.
func (i BigInt) String() string { return FormatInt(i, 0, '0') }

// Format implements fmt.Formatter for the verbs d, s and v.
//
// The '+' flag forces a sign on non-negative values. With the '0' flag the
// width is filled with zeros after the sign; otherwise spaces are used and
// placed as fmt does for integers ('-' left-justifies).
func (i BigInt) Format(f fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(f, "%%!%c(bignum.BigInt=%s)", verb, i.String())
		return
	}

	sign := ""
	switch {
	case i.IsNegative():
		sign = "-"
	case f.Flag('+'):
		sign = "+"
	}
	digits := FormatUint(i.mag)

	width, ok := f.Width()
	if !ok || width <= len(sign)+len(digits) {
		writeString(f, sign+digits)
		return
	}
	fill := width - len(sign) - len(digits)
	switch {
	case f.Flag('-'):
		writeString(f, sign+digits+strings.Repeat(" ", fill))
	case f.Flag('0'):
		writeString(f, sign+strings.Repeat("0", fill)+digits)
	default:
		writeString(f, strings.Repeat(" ", fill)+sign+digits)
	}
}

func writeString(f fmt.State, s string) {
	// fmt.State writes go to an internal buffer and never fail.
	_, _ = f.Write([]byte(s)) //nolint:errcheck
}
