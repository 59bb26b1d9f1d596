package bignum

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput indicates an empty string or one without digits.
	ErrEmptyInput = errors.New("empty numeric input")
	// ErrInvalidDigit indicates a character that is neither a digit nor a
	// separator.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrSignMismatch indicates that a declared sign contradicts the parsed one.
	ErrSignMismatch = errors.New("sign mismatch")
)

// separators are stripped anywhere in the integer part.
const separators = ",_' "

// ParseUint parses an unsigned decimal literal. It accepts the same grammar
// as ParseInt except for the sign.
func ParseUint(s string) (BigUint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BigUint{}, ErrEmptyInput
	}
	if s[0] == '+' {
		s = s[1:]
	}
	return parseDigits(s)
}

// ParseInt parses a signed decimal literal.
//
// A leading '-' or '+' sets the sign. Separators (comma, underscore,
// apostrophe and space) are dropped and a '.' truncates the literal, so
// "-1,234.99" parses as -1234. Leading zeros are discarded.
func ParseInt(s string) (BigInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BigInt{}, ErrEmptyInput
	}
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	u, err := parseDigits(s)
	if err != nil {
		return BigInt{}, err
	}
	return BigInt{neg: neg, mag: u}, nil
}

// ParseIntSigned parses s and checks it against a declared sign. Zero
// matches either declaration.
func ParseIntSigned(s string, positive bool) (BigInt, error) {
	v, err := ParseInt(s)
	if err != nil {
		return BigInt{}, err
	}
	if !v.IsZero() && v.IsPositive() != positive {
		return BigInt{}, fmt.Errorf("%w: %q declared positive=%t", ErrSignMismatch, s, positive)
	}
	return v, nil
}

// MustParseInt is like ParseInt but panics on error. It is meant for
// constants in tests and examples.
func MustParseInt(s string) BigInt {
	v, err := ParseInt(s)
	if err != nil {
		panic(fmt.Sprintf("bignum: MustParseInt(%q): %v", s, err))
	}
	return v
}

func parseDigits(s string) (BigUint, error) {
	truncated := false
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		s = s[:dot]
		truncated = true
	}

	if strings.ContainsAny(s, separators) {
		var b strings.Builder
		b.Grow(len(s))
		for i := range len(s) {
			ch := s[i]
			if strings.IndexByte(separators, ch) >= 0 {
				continue
			}
			b.WriteByte(ch)
		}
		s = b.String()
	}

	if s == "" {
		if truncated {
			return UintZero(), nil
		}
		return BigUint{}, ErrEmptyInput
	}

	for i := range len(s) {
		if ch := s[i]; ch < '0' || ch > '9' {
			return BigUint{}, fmt.Errorf("%w: %q at offset %d in %q", ErrInvalidDigit, rune(ch), i, s)
		}
	}

	s = strings.TrimLeft(s, "0")
	if s == "" {
		return UintZero(), nil
	}
	out := make([]uint8, len(s))
	for i := range len(s) {
		out[len(s)-1-i] = s[i] - '0'
	}
	return BigUint{digits: out}, nil
}
