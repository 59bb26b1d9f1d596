package bignum

import (
	"math"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomInt returns a random BigInt of up to maxDigits digits together with
// the same value as a math/big oracle.
func randomInt(t *testing.T, r *rand.Rand, maxDigits int) (BigInt, *big.Int) {
	t.Helper()
	var sb strings.Builder
	if r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	for range 1 + r.IntN(maxDigits) {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	s := sb.String()
	v, err := ParseInt(s)
	require.NoError(t, err, s)
	o, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, s)
	return v, o
}

func TestIntScenarios(t *testing.T) {
	t.Run("parse plus negated native is zero", func(t *testing.T) {
		got, err := IntAdd(MustParseInt("1234567890"), IntFromInt64(-1234567890))
		require.NoError(t, err)
		assert.True(t, got.IsZero())
		assert.True(t, got.IsPositive())
		assert.Equal(t, "0", got.String())
	})
	t.Run("subtracting a negative doubles", func(t *testing.T) {
		got, err := IntSub(IntFromInt64(9876543210), IntFromInt64(-9876543210))
		require.NoError(t, err)
		assert.True(t, got.Equal(IntFromInt64(19753086420)), got.String())
		assert.True(t, got.IsPositive())
	})
	t.Run("padded negative", func(t *testing.T) {
		assert.Equal(t, "-0005", FormatInt(IntFromInt64(-5), 5, '0'))
	})
	t.Run("long division", func(t *testing.T) {
		q, r, err := UintDivMod(UintFromUint64(87654), UintFromUint64(780))
		require.NoError(t, err)
		assert.Equal(t, "112", q.String())
		assert.Equal(t, "294", r.String())
	})
}

func TestIntAdd_SignCases(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
	}{
		{7, 5, 12},
		{7, -5, 2},
		{-7, 5, -2},
		{-7, -5, -12},
		{5, -7, -2},
		{-5, 7, 2},
		{5, -5, 0},
		{-5, 5, 0},
		{0, -5, -5},
		{-5, 0, -5},
	}
	for _, tt := range tests {
		got, err := IntAdd(IntFromInt64(tt.a), IntFromInt64(tt.b))
		require.NoError(t, err)
		assert.Equal(t, IntFromInt64(tt.want).String(), got.String(), "%d + %d", tt.a, tt.b)
		if tt.want == 0 {
			assert.True(t, got.IsPositive(), "%d + %d must be positive zero", tt.a, tt.b)
		}
	}
}

func TestIntSub_SignCases(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
	}{
		{7, 5, 2},
		{7, -5, 12},
		{-7, 5, -12},
		{-7, -5, -2},
		{5, 7, -2},
		{-5, -7, 2},
		{5, 5, 0},
		{-5, -5, 0},
		{0, 9876543210, -9876543210},
	}
	for _, tt := range tests {
		got, err := IntSub(IntFromInt64(tt.a), IntFromInt64(tt.b))
		require.NoError(t, err)
		assert.Equal(t, IntFromInt64(tt.want).String(), got.String(), "%d - %d", tt.a, tt.b)
		if tt.want == 0 {
			assert.True(t, got.IsPositive(), "%d - %d must be positive zero", tt.a, tt.b)
		}
	}
}

func TestIntSub_ZeroKeepsOperand(t *testing.T) {
	a := IntFromInt64(-42)
	got, err := IntSub(a, IntZero())
	require.NoError(t, err)
	assert.Equal(t, "-42", got.String())

	negZero := IntZero().Negated()
	got, err = IntSub(negZero, IntZero())
	require.NoError(t, err)
	assert.True(t, got.neg, "sign flag must be carried over unchanged")
	assert.True(t, got.IsPositive())
	assert.Equal(t, 0, got.Sign())
}

func TestIntMul_SignCases(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
	}{
		{7, 5, 35},
		{7, -5, -35},
		{-7, 5, -35},
		{-7, -5, 35},
		{-7, 0, 0},
		{0, -5, 0},
	}
	for _, tt := range tests {
		got := IntMul(IntFromInt64(tt.a), IntFromInt64(tt.b))
		assert.Equal(t, IntFromInt64(tt.want).String(), got.String(), "%d * %d", tt.a, tt.b)
		assert.Equal(t, tt.want >= 0, got.IsPositive(), "%d * %d", tt.a, tt.b)
	}
}

func TestIntDivMod_SignCases(t *testing.T) {
	tests := []struct {
		a, b int64
		q, r int64
	}{
		{7, 2, 3, 1},
		{7, -2, -3, 1},
		{-7, 2, -3, -1},
		{-7, -2, 3, -1},
		{-6, 2, -3, 0},
		{1, -2, 0, 1},
		{-1, 2, 0, -1},
	}
	for _, tt := range tests {
		q, r, err := IntDivMod(IntFromInt64(tt.a), IntFromInt64(tt.b))
		require.NoError(t, err)
		assert.Equal(t, IntFromInt64(tt.q).String(), q.String(), "%d / %d", tt.a, tt.b)
		assert.Equal(t, IntFromInt64(tt.r).String(), r.String(), "%d %% %d", tt.a, tt.b)
		// Native Go division truncates too.
		assert.Equal(t, tt.a/tt.b, tt.q)
		assert.Equal(t, tt.a%tt.b, tt.r)
	}
}

func TestIntDivMod_ByZero(t *testing.T) {
	_, _, err := IntDivMod(IntFromInt64(-3), IntZero())
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = IntQuo(IntOne(), IntZero().Negated())
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = IntRem(IntOne(), IntZero())
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestIntCmp_Ordering(t *testing.T) {
	neg5, neg7 := IntFromInt64(-5), IntFromInt64(-7)
	pos5 := IntFromInt64(5)

	// Cross-sign cases.
	assert.True(t, neg5.Less(pos5))
	assert.False(t, pos5.Less(neg5))
	assert.True(t, neg5.Less(IntZero()))
	assert.True(t, IntZero().Less(pos5))

	// Among negatives the larger magnitude is the smaller value.
	assert.True(t, neg7.Less(neg5))
	assert.False(t, neg5.Less(neg7))
	assert.Equal(t, 1, neg5.Cmp(neg7))

	// Zero is sign agnostic.
	negZero := IntZero().Negated()
	assert.Equal(t, 0, negZero.Cmp(IntZero()))
	assert.True(t, negZero.Equal(IntZero()))
	assert.True(t, negZero.IsPositive())
	assert.False(t, negZero.IsNegative())
	assert.Equal(t, "0", negZero.String())
	assert.False(t, negZero.Less(IntZero()))
}

func TestInt64(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 1234567890, math.MaxInt64, math.MinInt64, math.MinInt64 + 1} {
		got, err := IntFromInt64(v).Int64()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, s := range []string{
		"9223372036854775808",
		"-9223372036854775809",
		"18446744073709551615",
		"123456789012345678901234567890",
	} {
		_, err := MustParseInt(s).Int64()
		assert.ErrorIs(t, err, ErrOverflow, s)
	}
}

func TestIntFromUint64(t *testing.T) {
	v := IntFromUint64(math.MaxUint64)
	assert.Equal(t, "18446744073709551615", v.String())
	assert.True(t, v.IsPositive())
	assert.Equal(t, 20, v.Len())
}

func TestIntNegatedAndAbs(t *testing.T) {
	v := IntFromInt64(-123)
	assert.Equal(t, "123", v.Negated().String())
	assert.Equal(t, "123", v.Abs().String())
	assert.Equal(t, "-123", v.String(), "operands are never modified")
	assert.Equal(t, -1, v.Sign())
}

func TestIntProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 300 {
		a, ao := randomInt(t, r, 40)
		b, bo := randomInt(t, r, 25)
		c, _ := randomInt(t, r, 30)

		sum, err := IntAdd(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Add(ao, bo).String(), sum.String(), "%s + %s", a, b)

		// Commutativity and associativity.
		sumBA, err := IntAdd(b, a)
		require.NoError(t, err)
		assert.True(t, sum.Equal(sumBA))
		left, err := IntAdd(sum, c)
		require.NoError(t, err)
		bc, err := IntAdd(b, c)
		require.NoError(t, err)
		right, err := IntAdd(a, bc)
		require.NoError(t, err)
		assert.True(t, left.Equal(right), "(a+b)+c != a+(b+c) for %s %s %s", a, b, c)

		// Identity and inverse.
		same, err := IntAdd(a, IntZero())
		require.NoError(t, err)
		assert.True(t, same.Equal(a))
		inv, err := IntAdd(a, a.Negated())
		require.NoError(t, err)
		assert.True(t, inv.IsZero() && inv.IsPositive())

		// Subtract/add duality.
		diff, err := IntSub(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Sub(ao, bo).String(), diff.String(), "%s - %s", a, b)
		back, err := IntAdd(diff, b)
		require.NoError(t, err)
		assert.True(t, back.Equal(a))

		// Multiplication.
		prod := IntMul(a, b)
		assert.Equal(t, new(big.Int).Mul(ao, bo).String(), prod.String(), "%s * %s", a, b)
		assert.True(t, IntMul(a, IntOne()).Equal(a))
		assert.True(t, IntMul(a, IntZero()).Equal(IntZero()))

		// Division law.
		if !b.IsZero() {
			q, rem, err := IntDivMod(a, b)
			require.NoError(t, err)
			qo, ro := new(big.Int).QuoRem(ao, bo, new(big.Int))
			assert.Equal(t, qo.String(), q.String(), "%s / %s", a, b)
			assert.Equal(t, ro.String(), rem.String(), "%s %% %s", a, b)
			recon, err := IntAdd(IntMul(q, b), rem)
			require.NoError(t, err)
			assert.True(t, recon.Equal(a))
			assert.True(t, rem.Abs().Less(b.Abs()))
			assert.True(t, rem.IsZero() || rem.IsNegative() == a.IsNegative())
		}

		// Ordering totality.
		n := 0
		for _, ok := range []bool{a.Less(b), a.Equal(b), b.Less(a)} {
			if ok {
				n++
			}
		}
		assert.Equal(t, 1, n, "ordering of %s and %s", a, b)
		assert.Equal(t, ao.Cmp(bo), a.Cmp(b), "Cmp(%s, %s)", a, b)
	}
}
