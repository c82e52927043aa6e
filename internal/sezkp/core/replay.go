package core

import (
	"fmt"

	"github.com/logannye/sezkp/pkg/sezkp"
)

// Replay validates a single σ_k against its structural and write-safety
// invariants and derives its FiniteState projection. Write-safety is always
// enforced: the original this system was ported from gated it behind a
// default-off config flag that contradicted its own documentation, and this
// implementation treats the spec's WriteOutOfWindow testable property as
// authoritative instead.
func Replay(b *BlockSummary) (FiniteState, error) {
	tau := len(b.Windows)
	if len(b.HeadInOffsets) != tau || len(b.HeadOutOffsets) != tau {
		return FiniteState{}, sezkp.Wrap(sezkp.ErrTauMismatch,
			fmt.Sprintf("block %d: tau=%d but head offsets have %d/%d entries",
				b.BlockID, tau, len(b.HeadInOffsets), len(b.HeadOutOffsets)), nil)
	}

	for r, w := range b.Windows {
		if w.Right < w.Left {
			return FiniteState{}, sezkp.New(sezkp.ErrMalformedBlock,
				fmt.Sprintf("block %d: tape %d window is inverted [%d, %d]", b.BlockID, r, w.Left, w.Right))
		}
		length := w.Len()
		if b.HeadInOffsets[r] >= length || b.HeadOutOffsets[r] >= length {
			return FiniteState{}, sezkp.New(sezkp.ErrMalformedBlock,
				fmt.Sprintf("block %d: tape %d head offset out of [0, %d)", b.BlockID, r, length))
		}
	}

	if err := validateMoves(b); err != nil {
		return FiniteState{}, err
	}

	if err := checkWriteSafety(b); err != nil {
		return FiniteState{}, err
	}

	return projectFiniteState(b), nil
}

func validateMoves(b *BlockSummary) error {
	for i, step := range b.MovementLog.Steps {
		if step.InputMove < -1 || step.InputMove > 1 {
			return sezkp.New(sezkp.ErrMalformedBlock,
				fmt.Sprintf("block %d: step %d input move %d out of {-1,0,1}", b.BlockID, i, step.InputMove))
		}
		if len(step.Tapes) != b.Tau() {
			return sezkp.New(sezkp.ErrTauMismatch,
				fmt.Sprintf("block %d: step %d has %d tape ops, want %d", b.BlockID, i, len(step.Tapes), b.Tau()))
		}
		for r, op := range step.Tapes {
			if op.Move < -1 || op.Move > 1 {
				return sezkp.New(sezkp.ErrMalformedBlock,
					fmt.Sprintf("block %d: step %d tape %d move %d out of {-1,0,1}", b.BlockID, i, r, op.Move))
			}
		}
	}
	return nil
}

// checkWriteSafety tracks each tape's absolute head position starting from
// Left+HeadInOffset and rejects any write that lands outside the declared
// window at the post-move position.
func checkWriteSafety(b *BlockSummary) error {
	heads := make([]Cell, b.Tau())
	for r, w := range b.Windows {
		heads[r] = w.Left + Cell(b.HeadInOffsets[r])
	}

	for i, step := range b.MovementLog.Steps {
		for r, op := range step.Tapes {
			heads[r] += Cell(op.Move)
			if op.Write != nil {
				if !b.Windows[r].Contains(heads[r]) {
					return sezkp.New(sezkp.ErrWriteOutOfWindow,
						fmt.Sprintf("block %d: step %d tape %d wrote at %d outside window [%d, %d]",
							b.BlockID, i, r, heads[r], b.Windows[r].Left, b.Windows[r].Right))
				}
			}
		}
	}
	return nil
}

// projectFiniteState derives the FiniteState from σ_k's declared entry/exit
// fields. These are authoritative: replay never substitutes a value derived
// from walking the movement log in their place.
func projectFiniteState(b *BlockSummary) FiniteState {
	tau := b.Tau()
	workIn := make([]int64, tau)
	workOut := make([]int64, tau)
	for r, w := range b.Windows {
		workIn[r] = w.Left + Cell(b.HeadInOffsets[r])
		workOut[r] = w.Left + Cell(b.HeadOutOffsets[r])
	}

	var tag Tag
	if len(b.PostTags) > 0 {
		tag = b.PostTags[len(b.PostTags)-1]
	}

	return FiniteState{
		CtrlIn:      b.CtrlIn,
		CtrlOut:     b.CtrlOut,
		InHeadIn:    b.InHeadIn,
		InHeadOut:   b.InHeadOut,
		WorkHeadIn:  workIn,
		WorkHeadOut: workOut,
		Tag:         tag,
	}
}

// InterfaceOK checks the minimal continuity required between adjacent
// blocks: control-chain continuity and input-head continuity. Work-head
// continuity is not enforced here by design (see CombinerInterfaceOK for
// the stricter check used by the constant-degree combiner).
func InterfaceOK(a, b FiniteState) bool {
	return a.CtrlOut == b.CtrlIn && a.InHeadOut == b.InHeadIn
}
