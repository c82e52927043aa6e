package v1

import (
	"testing"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/stretchr/testify/require"
)

func TestLeafPiAirRoundTrip(t *testing.T) {
	var manifestRoot [32]byte
	block := validSingleTapeBlock()
	proof, err := Prove(manifestRoot, block)
	require.NoError(t, err)

	fs, err := core.Replay(block)
	require.NoError(t, err)

	lp := LeafPiAir{}.ProveLeafPi(proof, fs)
	require.True(t, LeafPiAir{}.VerifyLeafPi(proof, fs, lp))

	fs.CtrlOut++
	require.False(t, LeafPiAir{}.VerifyLeafPi(proof, fs, lp))
}

func TestAreIfaceAirRoundTrip(t *testing.T) {
	left, right := chainedFiniteStates()
	ap := AreIfaceAir{}.ProveInterface(left, right)
	require.True(t, AreIfaceAir{}.VerifyInterface(left, right, ap))

	broken := right
	broken.CtrlIn = 99
	require.False(t, AreIfaceAir{}.VerifyInterface(left, broken, ap))
}

func TestAreIfaceAirPanicsOnNonAdjacentBlocks(t *testing.T) {
	left, right := chainedFiniteStates()
	right.CtrlIn = 99
	require.Panics(t, func() {
		AreIfaceAir{}.ProveInterface(left, right)
	})
}

func TestWrapAirRoundTrip(t *testing.T) {
	var manifestRoot [32]byte
	proof, err := Prove(manifestRoot, validSingleTapeBlock())
	require.NoError(t, err)

	wp := WrapAir{}.WrapProof(proof)
	require.True(t, WrapAir{}.VerifyWrap(proof, wp))

	proof.FinalValue = proof.FinalValue.Add(field.One())
	require.False(t, WrapAir{}.VerifyWrap(proof, wp))
}
