// Package v1 implements the STARK v1 proving/verification backend (C7): a
// columnar AIR over one block's execution trace, committed with chunked
// Merkle roots, extended via a streaming LDE+DEEP construction, and bound
// together by FRI under a single BLAKE3 transcript.
package v1

import (
	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/field"
)

// HeadBits and SymBits are the range-check widths (the slack check reuses
// HeadBits); Blowup, NumQueries and ColChunkLog2 are the security and
// commitment knobs.
const (
	HeadBits = 16
	SymBits  = 4
	Blowup   = 8
	NumQueries = 30
	ColChunkLog2 = 10
)

// ColumnLabels returns the canonical, order-significant column label list
// for a block of tau work tapes: the three scalars, then seven per-tape
// columns for each r in [0, tau).
func ColumnLabels(tau int) []string {
	labels := []string{"input_mv", "is_first", "is_last"}
	for r := 0; r < tau; r++ {
		labels = append(labels,
			colLabel("mv", r), colLabel("wflag", r), colLabel("wsym", r),
			colLabel("head", r), colLabel("winlen", r), colLabel("in_off", r), colLabel("out_off", r),
		)
	}
	return labels
}

func colLabel(name string, r int) string {
	return name + "_" + itoa(r)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Trace is the per-row column data for a single block, built from its σ_k
// alone (Prove runs core.Replay on the block first, mirroring the fold
// leaf gadget's own ordering).
type Trace struct {
	N   int // number of rows (steps)
	Tau int

	InputMv []field.Element
	IsFirst []field.Element
	IsLast  []field.Element

	Mv     [][]field.Element // [tau][n]
	Wflag  [][]field.Element
	Wsym   [][]field.Element
	Head   [][]field.Element
	Winlen [][]field.Element
	InOff  [][]field.Element
	OutOff [][]field.Element
}

// BuildTrace derives the canonical columns from a block. Head values are
// window-relative offsets tracked with the same post-move semantics as
// core.checkWriteSafety, so a well-formed block (one that already passed
// core.Replay) always yields in-range head/slack values.
func BuildTrace(b *core.BlockSummary) *Trace {
	n := len(b.MovementLog.Steps)
	tau := b.Tau()
	t := &Trace{N: n, Tau: tau}

	t.InputMv = make([]field.Element, n)
	t.IsFirst = make([]field.Element, n)
	t.IsLast = make([]field.Element, n)
	t.Mv = make([][]field.Element, tau)
	t.Wflag = make([][]field.Element, tau)
	t.Wsym = make([][]field.Element, tau)
	t.Head = make([][]field.Element, tau)
	t.Winlen = make([][]field.Element, tau)
	t.InOff = make([][]field.Element, tau)
	t.OutOff = make([][]field.Element, tau)
	for r := 0; r < tau; r++ {
		t.Mv[r] = make([]field.Element, n)
		t.Wflag[r] = make([]field.Element, n)
		t.Wsym[r] = make([]field.Element, n)
		t.Head[r] = make([]field.Element, n)
		t.Winlen[r] = make([]field.Element, n)
		t.InOff[r] = make([]field.Element, n)
		t.OutOff[r] = make([]field.Element, n)
	}

	heads := make([]int64, tau)
	for r, off := range b.HeadInOffsets {
		heads[r] = int64(off)
	}

	for i, step := range b.MovementLog.Steps {
		t.InputMv[i] = field.FromInt64(int64(step.InputMove))
		if i == 0 {
			t.IsFirst[i] = field.One()
		}
		if i == n-1 {
			t.IsLast[i] = field.One()
		}
		for r, op := range step.Tapes {
			heads[r] += int64(op.Move)
			t.Mv[r][i] = field.FromInt64(int64(op.Move))
			winlen := int64(b.Windows[r].Len())
			t.Winlen[r][i] = field.FromInt64(winlen)
			t.InOff[r][i] = field.FromInt64(int64(b.HeadInOffsets[r]))
			t.OutOff[r][i] = field.FromInt64(int64(b.HeadOutOffsets[r]))
			t.Head[r][i] = field.FromInt64(heads[r])
			if op.Write != nil {
				t.Wflag[r][i] = field.One()
				t.Wsym[r][i] = field.FromUint64(uint64(*op.Write))
			}
		}
	}
	return t
}

// Columns returns the trace's columns in canonical label order, ready for
// chunked commitment.
func (t *Trace) Columns() map[string][]field.Element {
	cols := map[string][]field.Element{
		"input_mv": t.InputMv,
		"is_first": t.IsFirst,
		"is_last":  t.IsLast,
	}
	for r := 0; r < t.Tau; r++ {
		cols[colLabel("mv", r)] = t.Mv[r]
		cols[colLabel("wflag", r)] = t.Wflag[r]
		cols[colLabel("wsym", r)] = t.Wsym[r]
		cols[colLabel("head", r)] = t.Head[r]
		cols[colLabel("winlen", r)] = t.Winlen[r]
		cols[colLabel("in_off", r)] = t.InOff[r]
		cols[colLabel("out_off", r)] = t.OutOff[r]
	}
	return cols
}
