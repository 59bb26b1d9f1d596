// Package bignum implements arbitrary-precision integers stored as decimal
// digits.
//
// BigUint is a magnitude kept least significant digit first in canonical
// form (no superfluous zero digits, zero is the single digit 0). BigInt adds
// a sign flag. All operations are free functions over values: inputs are
// never modified and every result owns fresh storage, so values may be
// shared freely once built.
//
// Division truncates toward zero; the remainder takes the sign of the
// dividend.
package bignum
