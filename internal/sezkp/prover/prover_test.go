package prover

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/fold"
)

// chainBlocks builds n trivial, mutually-continuous single-tape blocks, the
// same fixture shape fold's own driver tests use.
func chainBlocks(n int) []*core.BlockSummary {
	blocks := make([]*core.BlockSummary, n)
	for i := 0; i < n; i++ {
		blocks[i] = &core.BlockSummary{
			BlockID:        uint32(i),
			CtrlIn:         uint16(i),
			CtrlOut:        uint16(i + 1),
			InHeadIn:       int64(i),
			InHeadOut:      int64(i + 1),
			Windows:        []core.Window{{Left: 0, Right: 9}},
			HeadInOffsets:  []core.Offset{uint32(i % 10)},
			HeadOutOffsets: []core.Offset{uint32((i + 1) % 10)},
		}
	}
	return blocks
}

func TestProveVerifyFoldBatchRoundTrip(t *testing.T) {
	blocks := chainBlocks(6)
	var manifestRoot [32]byte
	manifestRoot[0] = 0xAB

	backend := NewFoldBackend(fold.DefaultDriverOptions())
	artifact, err := Prove(backend, blocks, manifestRoot)
	require.NoError(t, err)
	require.Equal(t, core.BackendFold, artifact.Backend)

	require.NoError(t, Verify(backend, artifact, blocks, manifestRoot))
}

func TestProveBatchRejectsInterfaceDiscontinuity(t *testing.T) {
	blocks := chainBlocks(3)
	blocks[2].CtrlIn = 99 // break continuity with block 1's CtrlOut

	backend := NewFoldBackend(fold.DefaultDriverOptions())
	_, err := Prove(backend, blocks, [32]byte{})
	require.Error(t, err)
}

func TestVerifyFoldBatchRejectsTamperedArtifact(t *testing.T) {
	blocks := chainBlocks(4)
	var manifestRoot [32]byte

	backend := NewFoldBackend(fold.DefaultDriverOptions())
	artifact, err := Prove(backend, blocks, manifestRoot)
	require.NoError(t, err)

	artifact.ProofBytes[0] ^= 0xFF
	require.Error(t, Verify(backend, artifact, blocks, manifestRoot))
}

func TestVerifyFoldBatchRejectsBackendMismatch(t *testing.T) {
	blocks := chainBlocks(2)
	backend := NewFoldBackend(fold.DefaultDriverOptions())
	artifact, err := Prove(backend, blocks, [32]byte{})
	require.NoError(t, err)

	artifact.Backend = core.BackendStark
	require.Error(t, Verify(backend, artifact, blocks, [32]byte{}))
}
