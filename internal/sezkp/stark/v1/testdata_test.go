package v1

import (
	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/merkle"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
)

// newTestTranscript seeds a transcript under the same domain Prove/Verify
// use, so challenge draws in tests line up with the real pipeline's order.
func newTestTranscript() *transcript.Blake3Transcript {
	return transcript.New(DSV1Domain)
}

// absorbRootForTest mirrors the column-root absorption step Prove/Verify
// both perform, for tests that only need the challenges downstream of it.
func absorbRootForTest(tr *transcript.Blake3Transcript, root merkle.Digest) {
	tr.AbsorbLabel(transcript.LabelColRoot, root[:])
}

// transcriptDomain seeds a transcript under an arbitrary domain string, for
// tests checking that distinct domains diverge.
func transcriptDomain(domain string) *transcript.Blake3Transcript {
	return transcript.New(domain)
}

// symbolPtr is a small helper for building TapeOp.Write values inline.
func symbolPtr(s uint16) *uint16 { return &s }

// validSingleTapeBlock returns a single-tape block with a short, varied
// movement log (writes and plain moves, both directions) that satisfies
// core.Replay's structural and write-safety checks, with HeadOutOffsets set
// to the actual post-replay head position so the boundary constraints hold
// too. Every AIR constraint family should evaluate to zero on its trace.
func validSingleTapeBlock() *core.BlockSummary {
	return &core.BlockSummary{
		BlockID:        1,
		CtrlIn:         0,
		CtrlOut:        1,
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

// chainedFiniteStates returns two FiniteState projections from blocks whose
// control and head state genuinely chain, via core.Replay over two trivial
// (empty-movement-log) single-tape blocks.
func chainedFiniteStates() (left, right core.FiniteState) {
	leftBlock := &core.BlockSummary{
		BlockID:        0,
		CtrlIn:         0,
		CtrlOut:        1,
		InHeadIn:       0,
		InHeadOut:      1,
		Windows:        []core.Window{{Left: 0, Right: 9}},
		HeadInOffsets:  []core.Offset{0},
		HeadOutOffsets: []core.Offset{1},
	}
	rightBlock := &core.BlockSummary{
		BlockID:        1,
		CtrlIn:         1,
		CtrlOut:        2,
		InHeadIn:       1,
		InHeadOut:      2,
		Windows:        []core.Window{{Left: 0, Right: 9}},
		HeadInOffsets:  []core.Offset{1},
		HeadOutOffsets: []core.Offset{2},
	}
	left, err := core.Replay(leftBlock)
	if err != nil {
		panic(err)
	}
	right, err = core.Replay(rightBlock)
	if err != nil {
		panic(err)
	}
	return left, right
}
