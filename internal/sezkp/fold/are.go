package fold

import (
	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/field"
)

// Pi is the folding core's public interface witness for one leaf or
// subtree: control state, a single packed flags word, and a four-lane
// field accumulator that the combiner folds associatively. Acc carries the
// input-head positions and digests of the work-head vectors so that two
// leaves' Pi can be combined without either side ever re-deriving the
// original block.
type Pi struct {
	CtrlIn  uint16
	CtrlOut uint16
	Flags   uint32
	Acc     [4]field.Element
}

// InterfaceWitness carries the two adjoining FiniteState projections a Fold
// gadget needs to check continuity across the join point, without exposing
// the full block.
type InterfaceWitness struct {
	Left  core.FiniteState
	Right core.FiniteState
}

// NewLeafPi derives a Pi from a block's finite-state projection: control
// state copies through, flags is zero, and the accumulator lanes hold
// InHeadIn, InHeadOut, and the workHeadDigest of WorkHeadIn and of
// WorkHeadOut, in that order.
func NewLeafPi(fs core.FiniteState) Pi {
	var acc [4]field.Element
	acc[0] = field.FromInt64(fs.InHeadIn)
	acc[1] = field.FromInt64(fs.InHeadOut)
	acc[2] = workHeadDigest(fs.WorkHeadIn)
	acc[3] = workHeadDigest(fs.WorkHeadOut)
	return Pi{CtrlIn: fs.CtrlIn, CtrlOut: fs.CtrlOut, Acc: acc}
}

// workHeadDigest folds a variable-length work-head vector into one field
// element via Horner's method over a fixed base, so Acc stays constant-size
// regardless of tape arity.
func workHeadDigest(heads []int64) field.Element {
	const base uint64 = 0x9E3779B97F4A7C15
	acc := field.Zero()
	b := field.FromUint64(base)
	for _, h := range heads {
		acc = acc.Mul(b).Add(field.FromInt64(h))
	}
	return acc
}

// CombineAux is the constant-degree combiner over two Pi values: control
// state passes through from the appropriate side, flags XOR, and each
// accumulator lane adds (the leaf/fold gadgets' constraints enforce that
// this addition is only sound when the interface witness checks out).
func CombineAux(left, right Pi) Pi {
	var acc [4]field.Element
	for i := range acc {
		acc[i] = left.Acc[i].Add(right.Acc[i])
	}
	return Pi{
		CtrlIn:  left.CtrlIn,
		CtrlOut: right.CtrlOut,
		Flags:   left.Flags ^ right.Flags,
		Acc:     acc,
	}
}
