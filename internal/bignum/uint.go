package bignum

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

var (
	// ErrEmptyOperand indicates a digit sequence with no digits at all.
	ErrEmptyOperand = errors.New("empty operand")
	// ErrInvalidSubtractionOrder indicates an unsigned subtraction whose
	// subtrahend is larger than its minuend.
	ErrInvalidSubtractionOrder = errors.New("invalid subtraction order")
	// ErrDivisionByZero indicates an attempt to divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// BigUint represents a big unsigned integer (a magnitude).
type BigUint struct {
	// digits are base-10 little-endian (digits[0] is least significant).
	//
	// Canonical zero is the single digit 0. A nil slice is read as zero so the
	// zero value of BigUint is usable.
	digits []uint8
}

// UintZero returns a zero BigUint with its own storage.
func UintZero() BigUint { return BigUint{digits: []uint8{0}} }

// UintOne returns a BigUint equal to one with its own storage.
func UintOne() BigUint { return BigUint{digits: []uint8{1}} }

// UintFromUint64 creates a BigUint from a uint64.
func UintFromUint64(v uint64) BigUint {
	if v == 0 {
		return UintZero()
	}
	out := make([]uint8, 0, 20)
	for v > 0 {
		out = append(out, uint8(v%10)) //nolint:gosec // G115: v%10 < 10.
		v /= 10
	}
	return BigUint{digits: out}
}

// UintFromDigits creates a BigUint from little-endian decimal digits.
// The input is copied and trimmed.
func UintFromDigits(ds []uint8) (BigUint, error) {
	if len(ds) == 0 {
		return BigUint{}, ErrEmptyOperand
	}
	for i, d := range ds {
		if d > 9 {
			return BigUint{}, fmt.Errorf("%w: %d at position %d", ErrInvalidDigit, d, i)
		}
	}
	out, err := TrimDigits(slices.Clone(ds))
	if err != nil {
		return BigUint{}, err
	}
	return BigUint{digits: out}, nil
}

// TrimDigits drops most-significant zero digits until one digit is left or
// the last digit is nonzero. The returned slice shares storage with ds.
func TrimDigits(ds []uint8) ([]uint8, error) {
	if len(ds) == 0 {
		return nil, ErrEmptyOperand
	}
	return trimDigits(ds), nil
}

// IsZero reports whether the unsigned integer is zero.
func (u BigUint) IsZero() bool {
	ds := u.view()
	return len(ds) == 1 && ds[0] == 0
}

// Len returns the number of decimal digits; zero has one digit.
func (u BigUint) Len() int {
	return len(u.view())
}

// Digits returns a copy of the little-endian digit sequence.
func (u BigUint) Digits() []uint8 {
	return slices.Clone(u.view())
}

// Cmp compares two BigUint values and returns -1, 0, or 1.
func (u BigUint) Cmp(v BigUint) int {
	return cmpDigits(u.view(), v.view())
}

// Equal reports whether u and v hold the same digits.
func (u BigUint) Equal(v BigUint) bool {
	return slices.Equal(u.view(), v.view())
}

// Less reports whether u < v.
func (u BigUint) Less(v BigUint) bool {
	return cmpDigits(u.view(), v.view()) < 0
}

// Uint64 converts BigUint to uint64 if possible.
func (u BigUint) Uint64() (uint64, bool) {
	ds := u.view()
	if len(ds) > 20 {
		return 0, false
	}
	var acc uint64
	for i := len(ds) - 1; i >= 0; i-- {
		d := uint64(ds[i])
		if acc > (^uint64(0)-d)/10 {
			return 0, false
		}
		acc = acc*10 + d
	}
	return acc, true
}

// UintCmp compares two BigUint values and returns -1, 0, or 1.
func UintCmp(a, b BigUint) int { return a.Cmp(b) }

// UintAdd adds two BigUint values and returns the result.
func UintAdd(a, b BigUint) BigUint {
	al := a.view()
	bl := b.view()
	n := max(len(al), len(bl))

	out := make([]uint8, n+1)
	var carry uint8
	for i := range n {
		var av, bv uint8
		if i < len(al) {
			av = al[i]
		}
		if i < len(bl) {
			bv = bl[i]
		}
		sum := av + bv + carry
		out[i] = sum % 10
		carry = sum / 10
	}
	out[n] = carry
	return BigUint{digits: trimDigits(out)}
}

// UintSub subtracts b from a. It requires a >= b and reports
// ErrInvalidSubtractionOrder otherwise instead of wrapping around.
func UintSub(a, b BigUint) (BigUint, error) {
	al := a.view()
	bl := b.view()
	if cmpDigits(al, bl) < 0 {
		return BigUint{}, fmt.Errorf("%w: %s - %s", ErrInvalidSubtractionOrder, a, b)
	}
	out := slices.Clone(al)
	if borrow := subInPlace(out, bl); borrow != 0 {
		return BigUint{}, fmt.Errorf("%w: borrow left after %s - %s", ErrInvalidSubtractionOrder, a, b)
	}
	return BigUint{digits: trimDigits(out)}, nil
}

// UintMul multiplies two BigUint values using the schoolbook method.
//
// Partial products accumulate into wide slots and carries are propagated in
// a single pass at the end.
func UintMul(a, b BigUint) BigUint {
	al := a.view()
	bl := b.view()
	if isZeroDigits(al) || isZeroDigits(bl) {
		return UintZero()
	}

	acc := make([]uint64, len(al)+len(bl))
	for i, ad := range al {
		if ad == 0 {
			continue
		}
		for j, bd := range bl {
			acc[i+j] += uint64(ad) * uint64(bd)
		}
	}

	out := make([]uint8, 0, len(acc)+1)
	var carry uint64
	for _, slot := range acc {
		v := slot + carry
		out = append(out, uint8(v%10)) //nolint:gosec // G115: v%10 < 10.
		carry = v / 10
	}
	for carry != 0 {
		out = append(out, uint8(carry%10)) //nolint:gosec // G115: carry%10 < 10.
		carry /= 10
	}
	return BigUint{digits: trimDigits(out)}
}

// mulDigit multiplies u by a small factor. The carry is kept wide, so any
// uint8 factor is exact.
func mulDigit(u BigUint, m uint8) BigUint {
	if m == 0 || u.IsZero() {
		return UintZero()
	}
	ds := u.view()
	if m == 1 {
		return BigUint{digits: slices.Clone(ds)}
	}
	out := make([]uint8, 0, len(ds)+3)
	var carry uint
	for _, d := range ds {
		prod := uint(d)*uint(m) + carry
		out = append(out, uint8(prod%10)) //nolint:gosec // G115: prod%10 < 10.
		carry = prod / 10
	}
	for carry > 0 {
		out = append(out, uint8(carry%10)) //nolint:gosec // G115: carry%10 < 10.
		carry /= 10
	}
	return BigUint{digits: trimDigits(out)}
}

// UintDivMod performs long division with remainder on two BigUint values.
func UintDivMod(a, b BigUint) (q, r BigUint, err error) {
	al := a.view()
	bl := b.view()
	if isZeroDigits(bl) {
		return BigUint{}, BigUint{}, ErrDivisionByZero
	}
	if cmpDigits(al, bl) < 0 {
		return UintZero(), BigUint{digits: slices.Clone(al)}, nil
	}

	// multiples[k] = k*b; the quotient digit is found by binary search.
	var multiples [10]BigUint
	for k := range multiples {
		multiples[k] = mulDigit(b, uint8(k)) //nolint:gosec // G115: k < 10.
	}

	quot := make([]uint8, len(al))
	rem := UintZero()
	for i := len(al) - 1; i >= 0; i-- {
		rem = shiftInDigit(rem, al[i])
		lo, hi := 0, 9
		for lo < hi {
			mid := (lo + hi + 1) / 2
			if multiples[mid].Cmp(rem) <= 0 {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		digit, convErr := safecast.Conv[uint8](lo)
		if convErr != nil {
			return BigUint{}, BigUint{}, convErr
		}
		quot[i] = digit
		if lo != 0 {
			rem, err = UintSub(rem, multiples[lo])
			if err != nil {
				return BigUint{}, BigUint{}, err
			}
		}
	}
	return BigUint{digits: trimDigits(quot)}, rem, nil
}

func (u BigUint) view() []uint8 {
	if len(u.digits) == 0 {
		return zeroDigits
	}
	return u.digits
}

var zeroDigits = []uint8{0}

// shiftInDigit returns u*10 + d in fresh storage.
func shiftInDigit(u BigUint, d uint8) BigUint {
	ds := u.view()
	if isZeroDigits(ds) {
		return BigUint{digits: []uint8{d}}
	}
	out := make([]uint8, len(ds)+1)
	out[0] = d
	copy(out[1:], ds)
	return BigUint{digits: out}
}

func trimDigits(ds []uint8) []uint8 {
	for len(ds) > 1 && ds[len(ds)-1] == 0 {
		ds = ds[:len(ds)-1]
	}
	return ds
}

func isZeroDigits(ds []uint8) bool {
	ds = trimDigits(ds)
	return len(ds) == 0 || (len(ds) == 1 && ds[0] == 0)
}

func cmpDigits(a, b []uint8) int {
	a = trimDigits(a)
	b = trimDigits(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// subInPlace subtracts sub from dst digit by digit and returns the final
// borrow, which is zero whenever dst >= sub.
func subInPlace(dst, sub []uint8) uint8 {
	var borrow int8
	for i := range dst {
		var bv int8
		if i < len(sub) {
			bv = int8(sub[i]) //nolint:gosec // G115: digits < 10.
		}
		cur := int8(dst[i]) - borrow - bv //nolint:gosec // G115: digits < 10.
		if cur < 0 {
			cur += 10
			borrow = 1
		} else {
			borrow = 0
		}
		dst[i] = uint8(cur) //nolint:gosec // G115: 0 <= cur < 10.
	}
	if len(sub) > len(dst) && !isZeroDigits(sub[len(dst):]) {
		return 1
	}
	return uint8(borrow) //nolint:gosec // G115: borrow is 0 or 1.
}
