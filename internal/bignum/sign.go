package bignum

// signCase enumerates the four sign combinations of a binary operation.
type signCase uint8

const (
	casePosPos signCase = iota
	casePosNeg
	caseNegPos
	caseNegNeg
)

func signCaseOf(a, b BigInt) signCase {
	var c signCase
	if a.IsNegative() {
		c |= 2
	}
	if b.IsNegative() {
		c |= 1
	}
	return c
}

// String returns the case as a pair of signs, e.g. "+-".
func (c signCase) String() string {
	switch c {
	case casePosPos:
		return "++"
	case casePosNeg:
		return "+-"
	case caseNegPos:
		return "-+"
	case caseNegNeg:
		return "--"
	default:
		return "??"
	}
}

// addRule says how IntAdd combines two magnitudes.
//
// With sum set the magnitudes are added and the result takes neg. Otherwise
// the smaller magnitude is subtracted from the larger and the result takes
// the sign of the operand with the larger magnitude.
type addRule struct {
	sum bool
	neg bool
}

var addRules = [...]addRule{
	casePosPos: {sum: true},
	casePosNeg: {},
	caseNegPos: {},
	caseNegNeg: {sum: true, neg: true},
}

// productNeg holds the sign of products and quotients for each case.
var productNeg = [...]bool{
	casePosPos: false,
	casePosNeg: true,
	caseNegPos: true,
	caseNegNeg: false,
}

// remainderNeg holds the sign of a truncated remainder for each case. It
// follows the dividend.
var remainderNeg = [...]bool{
	casePosPos: false,
	casePosNeg: false,
	caseNegPos: true,
	caseNegNeg: true,
}
