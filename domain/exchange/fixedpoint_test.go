package exchange

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func amt(v uint64) Amount {
	return NewAmount(v)
}

func isZero(a Amount) bool {
	return a.IsZero()
}

func TestMulDivFloors(t *testing.T) {
	a, b, c := amt(100_000), amt(21), amt(1000)
	require.Equal(t, amt(2100), MulDiv(&a, &b, &c))

	a, b, c = amt(2055), amt(6), amt(21)
	require.Equal(t, amt(587), MulDiv(&a, &b, &c))
}

func TestMulDivWideIntermediate(t *testing.T) {
	// 2.1e15 * 1.5e6 does not fit 64 bits but the quotient does
	tb, cur, next := MaxSupply, amt(1_500_000), amt(1_597_900)
	got := MulDiv(&tb, &cur, &next)
	require.Equal(t, amt(1_971_337_380_311_659), got)
}

func TestMulDivPanics(t *testing.T) {
	one, zero := amt(1), amt(0)
	require.Panics(t, func() { MulDiv(&one, &one, &zero) })

	var big Amount
	big.Lsh(uint256.NewInt(1), 127)
	two := amt(2)
	require.Panics(t, func() { MulDiv(&big, &two, &one) })
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("2100000000000000")
	require.NoError(t, err)
	require.Equal(t, MaxSupply, a)

	_, err = ParseAmount("-1")
	require.ErrorIs(t, err, ErrorInvalidAmount)

	_, err = ParseAmount("340282366920938463463374607431768211456") // 2^128
	require.ErrorIs(t, err, ErrorInvalidAmount)

	_, err = ParseAmount("340282366920938463463374607431768211455")
	require.NoError(t, err)
}

func TestSplitFeeNeverExceedsGross(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		base := amt(rng.Uint64() >> uint(rng.Intn(64)))
		split := SplitFee(&base)

		var sum Amount
		sum.Add(&split.Swap, &split.Majority)
		require.False(t, sum.Gt(&split.Gross), "base %v", base.Dec())

		// the shares come from the gross fee only
		gross := split.Gross
		require.Equal(t, mulDiv64(&gross, 6, 21), split.Swap)
		require.Equal(t, mulDiv64(&gross, 15, 21), split.Majority)
	}
}
