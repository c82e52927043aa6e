package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArithmeticBasics(t *testing.T) {
	a := FromUint64(12345)
	b := FromUint64(67890)

	require.Equal(t, a, a.Add(Zero()))
	require.Equal(t, Zero(), a.Sub(a))
	require.Equal(t, a, a.Mul(One()))
	require.True(t, a.Mul(a.Inv()).Equal(One()))
	require.Equal(t, a.Add(b), b.Add(a))
}

func TestMulMatchesModArithmetic(t *testing.T) {
	// p - 1 and p - 2 multiply to a value easily checked against -1 * -2 = 2.
	a := FromUint64(Modulus - 1)
	b := FromUint64(Modulus - 2)
	require.Equal(t, FromUint64(2), a.Mul(b))
}

func TestNegAndSub(t *testing.T) {
	a := FromUint64(5)
	require.Equal(t, Zero(), a.Add(a.Neg()))
	require.Equal(t, a.Neg(), Zero().Sub(a))
}

func TestNTTRoundTrip(t *testing.T) {
	const logN = 6
	n := 1 << logN
	coeffs := make([]Element, n)
	for i := range coeffs {
		coeffs[i] = FromUint64(uint64(i*7 + 3))
	}

	evals := EvaluateOnPow2Domain(coeffs, logN)
	back := InterpolateFromEvals(evals)

	for i := range coeffs {
		require.True(t, coeffs[i].Equal(back[i]), "coefficient %d did not round-trip", i)
	}
}

func TestCosetShiftOneMatchesPlainNTT(t *testing.T) {
	const logN = 5
	n := 1 << logN
	coeffs := make([]Element, n)
	for i := range coeffs {
		coeffs[i] = FromUint64(uint64(i*3 + 1))
	}

	plain := EvaluateOnPow2Domain(coeffs, logN)
	coset := CosetEvaluate(coeffs, logN, One())

	for i := range plain {
		require.True(t, plain[i].Equal(coset[i]))
	}
}

func TestPrimitiveRootHasExpectedOrder(t *testing.T) {
	root := PrimitiveRoot2Exp(8)
	// root^256 must be 1, but root^128 must not be (it generates order 256).
	require.True(t, root.Pow(256).Equal(One()))
	require.False(t, root.Pow(128).Equal(One()))
}
