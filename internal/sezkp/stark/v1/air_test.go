package v1

import (
	"testing"

	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/stretchr/testify/require"
)

// unitAlphas isolates a single constraint family by giving it coefficient
// one and every other family coefficient zero.
func unitAlphas(set func(*Alphas)) Alphas {
	var a Alphas
	set(&a)
	return a
}

func TestComposeRowZeroOnValidTrace(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())
	a := Alphas{
		Boolean: field.One(), MoveDomain: field.One(), HeadUpdate: field.One(),
		HeadBits: field.One(), SlackBits: field.One(), SymBits: field.One(),
		BoundaryFirst: field.One(), BoundaryLast: field.One(),
	}
	for i := 0; i < trace.N; i++ {
		rv := rowViewFromTrace(trace, i)
		require.True(t, ComposeRow(rv, a).IsZero(), "row %d", i)
	}
}

func TestBooleanConstraintCatchesNonBooleanWflag(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())
	rv := rowViewFromTrace(trace, 1)
	rv.Wflag[0] = field.FromUint64(2) // not boolean
	a := unitAlphas(func(a *Alphas) { a.Boolean = field.One() })
	require.False(t, ComposeRow(rv, a).IsZero())
}

func TestMoveDomainConstraintCatchesOutOfRangeMove(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())
	rv := rowViewFromTrace(trace, 0)
	rv.InputMv = field.FromUint64(2) // not in {-1,0,1}
	a := unitAlphas(func(a *Alphas) { a.MoveDomain = field.One() })
	require.False(t, ComposeRow(rv, a).IsZero())
}

func TestHeadUpdateConstraintCatchesBrokenDelta(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())
	rv := rowViewFromTrace(trace, 0)
	rv.NextHead[0] = rv.NextHead[0].Add(field.One())
	a := unitAlphas(func(a *Alphas) { a.HeadUpdate = field.One() })
	require.False(t, ComposeRow(rv, a).IsZero())
}

func TestBoundaryConstraintsCatchWrongEdges(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())

	first := rowViewFromTrace(trace, 0)
	first.InOff[0] = first.InOff[0].Add(field.One())
	aFirst := unitAlphas(func(a *Alphas) { a.BoundaryFirst = field.One() })
	require.False(t, ComposeRow(first, aFirst).IsZero())

	last := rowViewFromTrace(trace, trace.N-1)
	last.OutOff[0] = last.OutOff[0].Add(field.One())
	aLast := unitAlphas(func(a *Alphas) { a.BoundaryLast = field.One() })
	require.False(t, ComposeRow(last, aLast).IsZero())
}

func TestRangeResidualDetectsOverflow(t *testing.T) {
	require.True(t, rangeResidual(field.FromUint64(12345), HeadBits).IsZero())
	require.False(t, rangeResidual(field.FromUint64(1<<20), HeadBits).IsZero())
}

func TestDeriveAlphasDeterministicPerTranscriptState(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())
	cols, err := BuildColumnSet(trace)
	require.NoError(t, err)

	mk := func() Alphas {
		tr := newTestTranscript()
		for _, root := range cols.Roots() {
			absorbRootForTest(tr, root)
		}
		return DeriveAlphas(tr)
	}
	a1 := mk()
	a2 := mk()
	require.Equal(t, a1, a2)
}
