package prover

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logannye/sezkp/internal/sezkp/core"
)

func symbolPtr(s uint16) *uint16 { return &s }

// validSingleTapeBlock mirrors the stark/v1 package's own fixture of the
// same name: a single-tape block whose movement log satisfies core.Replay
// and whose AIR composition evaluates to zero at every row.
func validSingleTapeBlock(id uint32) *core.BlockSummary {
	return &core.BlockSummary{
		BlockID:        id,
		CtrlIn:         uint16(id),
		CtrlOut:        uint16(id + 1),
		InHeadIn:       0,
		InHeadOut:      4,
		Windows:        []core.Window{{Left: 0, Right: 9}},
		HeadInOffsets:  []core.Offset{5},
		HeadOutOffsets: []core.Offset{6},
		MovementLog: core.MovementLog{
			Steps: []core.StepProjection{
				{InputMove: 1, Tapes: []core.TapeOp{{Move: 1}}},
				{InputMove: 0, Tapes: []core.TapeOp{{Move: -1, Write: symbolPtr(3)}}},
				{InputMove: 1, Tapes: []core.TapeOp{{Move: 1}}},
				{InputMove: -1, Tapes: []core.TapeOp{{Move: 0, Write: symbolPtr(5)}}},
			},
		},
	}
}

func TestProveVerifyStarkBatchRoundTrip(t *testing.T) {
	block := validSingleTapeBlock(0)
	blocks := []*core.BlockSummary{block}
	var manifestRoot [32]byte
	manifestRoot[0] = 0xCD

	backend := StarkBackend{}
	artifact, err := Prove(backend, blocks, manifestRoot)
	require.NoError(t, err)
	require.Equal(t, core.BackendStark, artifact.Backend)

	require.NoError(t, Verify(backend, artifact, blocks, manifestRoot))
}

func TestVerifyStarkBatchRejectsWrongManifestRoot(t *testing.T) {
	block := validSingleTapeBlock(0)
	blocks := []*core.BlockSummary{block}
	var manifestRoot [32]byte
	manifestRoot[0] = 0xCD

	backend := StarkBackend{}
	artifact, err := Prove(backend, blocks, manifestRoot)
	require.NoError(t, err)

	var otherRoot [32]byte
	otherRoot[0] = 0xEE
	require.Error(t, Verify(backend, artifact, blocks, otherRoot))
}
