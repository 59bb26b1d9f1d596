package bignum

import (
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"
)

// ErrOverflow indicates a value that does not fit the requested native type.
var ErrOverflow = errors.New("numeric overflow")

// maxInt64Digits is the number of decimal digits of math.MaxInt64.
const maxInt64Digits = 19

// BigInt represents a big signed integer.
//
// A zero magnitude may carry either sign flag, but every predicate,
// comparison and rendering treats zero as positive.
type BigInt struct {
	neg bool
	mag BigUint
}

// IntZero returns a zero BigInt.
func IntZero() BigInt { return BigInt{mag: UintZero()} }

// IntOne returns a BigInt equal to one.
func IntOne() BigInt { return BigInt{mag: UintOne()} }

// IntFromInt64 creates a BigInt from an int64.
func IntFromInt64(v int64) BigInt {
	if v >= 0 {
		return BigInt{mag: UintFromUint64(uint64(v))}
	}
	u := uint64(-(v + 1)) //nolint:gosec // G115: -(v+1) is non-negative and fits in uint64 here.
	u++
	return BigInt{neg: true, mag: UintFromUint64(u)}
}

// IntFromUint64 creates a BigInt from a uint64.
func IntFromUint64(v uint64) BigInt {
	return BigInt{mag: UintFromUint64(v)}
}

// IntFromUint creates a non-negative BigInt holding a copy of u.
func IntFromUint(u BigUint) BigInt {
	return BigInt{mag: BigUint{digits: u.Digits()}}
}

// newInt builds a BigInt that owns mag; zero results are positive.
func newInt(neg bool, mag BigUint) BigInt {
	if mag.IsZero() {
		return BigInt{mag: mag}
	}
	return BigInt{neg: neg, mag: mag}
}

// IsZero reports whether the integer is zero, whatever its sign flag.
func (i BigInt) IsZero() bool {
	return i.mag.IsZero()
}

// IsPositive reports whether i >= 0. Zero is positive even when its sign
// flag is set.
func (i BigInt) IsPositive() bool {
	return !i.neg || i.mag.IsZero()
}

// IsNegative reports whether i < 0.
func (i BigInt) IsNegative() bool {
	return !i.IsPositive()
}

// Sign returns -1, 0 or 1.
func (i BigInt) Sign() int {
	switch {
	case i.mag.IsZero():
		return 0
	case i.neg:
		return -1
	default:
		return 1
	}
}

// Abs returns the absolute value as a BigUint.
func (i BigInt) Abs() BigUint {
	return BigUint{digits: i.mag.Digits()}
}

// Len returns the number of decimal digits of the magnitude.
func (i BigInt) Len() int {
	return i.mag.Len()
}

// Negated returns the value with its sign flag flipped. Negating zero keeps
// a zero magnitude; it still reports itself as positive.
func (i BigInt) Negated() BigInt {
	return BigInt{neg: !i.neg, mag: BigUint{digits: i.mag.Digits()}}
}

// Cmp compares two BigInt values using the usual signed ordering: among
// negative values the larger magnitude is the smaller number.
func (i BigInt) Cmp(j BigInt) int {
	switch c := signCaseOf(i, j); c {
	case casePosNeg:
		return 1
	case caseNegPos:
		return -1
	case caseNegNeg:
		return -cmpDigits(i.mag.view(), j.mag.view())
	default:
		return cmpDigits(i.mag.view(), j.mag.view())
	}
}

// Equal reports whether i and j denote the same number.
func (i BigInt) Equal(j BigInt) bool {
	return i.Cmp(j) == 0
}

// Less reports whether i < j.
func (i BigInt) Less(j BigInt) bool {
	return i.Cmp(j) < 0
}

// Int64 converts BigInt to int64. It reports ErrOverflow when the value does
// not fit.
func (i BigInt) Int64() (int64, error) {
	if i.mag.Len() > maxInt64Digits {
		return 0, fmt.Errorf("%w: %d digits do not fit in int64", ErrOverflow, i.mag.Len())
	}
	mag, ok := i.mag.Uint64()
	if !ok {
		return 0, fmt.Errorf("%w: %s does not fit in int64", ErrOverflow, i)
	}
	if i.IsPositive() {
		v, err := safecast.Conv[int64](mag)
		if err != nil {
			return 0, fmt.Errorf("%w: %s does not fit in int64", ErrOverflow, i)
		}
		return v, nil
	}
	// Negative: allow magnitude up to 2^63.
	switch {
	case mag > uint64(math.MaxInt64)+1:
		return 0, fmt.Errorf("%w: %s does not fit in int64", ErrOverflow, i)
	case mag == uint64(math.MaxInt64)+1:
		return math.MinInt64, nil
	default:
		return -int64(mag), nil //nolint:gosec // G115: mag <= MaxInt64 here.
	}
}

// IntAdd adds two BigInt values.
func IntAdd(a, b BigInt) (BigInt, error) {
	rule := addRules[signCaseOf(a, b)]
	if rule.sum {
		return newInt(rule.neg, UintAdd(a.mag, b.mag)), nil
	}

	switch cmp := UintCmp(a.mag, b.mag); {
	case cmp == 0:
		return IntZero(), nil
	case cmp > 0:
		diff, err := UintSub(a.mag, b.mag)
		if err != nil {
			return BigInt{}, err
		}
		return newInt(a.IsNegative(), diff), nil
	default:
		diff, err := UintSub(b.mag, a.mag)
		if err != nil {
			return BigInt{}, err
		}
		return newInt(b.IsNegative(), diff), nil
	}
}

// IntSub subtracts b from a. Subtracting zero returns a unchanged, sign flag
// included.
func IntSub(a, b BigInt) (BigInt, error) {
	if b.IsZero() {
		return BigInt{neg: a.neg, mag: BigUint{digits: a.mag.Digits()}}, nil
	}
	return IntAdd(a, b.Negated())
}

// IntMul multiplies two BigInt values.
func IntMul(a, b BigInt) BigInt {
	return newInt(productNeg[signCaseOf(a, b)], UintMul(a.mag, b.mag))
}

// IntDivMod performs truncated division: the quotient is rounded toward zero
// and the remainder takes the sign of the dividend, so q*b + r == a and
// |r| < |b|.
func IntDivMod(a, b BigInt) (q, r BigInt, err error) {
	qMag, rMag, err := UintDivMod(a.mag, b.mag)
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	c := signCaseOf(a, b)
	return newInt(productNeg[c], qMag), newInt(remainderNeg[c], rMag), nil
}

// IntQuo returns the truncated quotient a/b.
func IntQuo(a, b BigInt) (BigInt, error) {
	q, _, err := IntDivMod(a, b)
	return q, err
}

// IntRem returns the truncated remainder a%b, which has the sign of a.
func IntRem(a, b BigInt) (BigInt, error) {
	_, r, err := IntDivMod(a, b)
	return r, err
}
