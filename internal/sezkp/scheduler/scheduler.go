// Package scheduler implements the pointerless, post-order depth-first
// traversal of the balanced half-open-interval recursion tree that the
// folding driver walks in both its Balanced and MinRam modes. Live frames
// are bounded by ceil(log2 T) + O(1).
package scheduler

import "github.com/logannye/sezkp/internal/sezkp/core"

// Event is one step of the traversal.
type Event struct {
	Kind EventKind
	Leaf uint32        // valid when Kind == EventLeaf
	Left core.Interval // valid when Kind == EventCombine
	Right core.Interval // valid when Kind == EventCombine
}

// EventKind discriminates Event's payload.
type EventKind int

const (
	EventLeaf EventKind = iota
	EventCombine
	EventDone
)

type frameState uint8

const (
	stateDescendLeft frameState = iota
	stateDescendRight
	stateEmitCombine
)

type frame struct {
	iv    core.Interval
	state frameState
	left  core.Interval
	right core.Interval
}

// Scheduler is a pull-style iterator over DFS events for a root span of
// [0, T). Calling Next repeatedly drains the traversal; the final call
// before exhaustion returns (EventDone event, true), and every call after
// that returns (Event{}, false). For tLeaves == 0 no event is emitted at
// all, not even Done.
type Scheduler struct {
	stack       []frame
	doneEmitted bool
	exhausted   bool
}

// New creates a scheduler over the balanced tree for tLeaves leaves,
// i.e. the root span [0, tLeaves).
func New(tLeaves uint32) *Scheduler {
	s := &Scheduler{}
	if tLeaves >= 1 {
		s.stack = append(s.stack, frame{iv: core.Interval{Lo: 0, Hi: tLeaves}})
	} else {
		s.doneEmitted = true
	}
	return s
}

// Next returns the next event, or ok=false once the traversal (including
// its single Done event) is exhausted.
func (s *Scheduler) Next() (Event, bool) {
	for {
		if len(s.stack) == 0 {
			if s.doneEmitted {
				return Event{}, false
			}
			s.doneEmitted = true
			return Event{Kind: EventDone}, true
		}

		top := &s.stack[len(s.stack)-1]
		if top.iv.IsLeaf() {
			k := top.iv.Lo
			s.stack = s.stack[:len(s.stack)-1]
			return Event{Kind: EventLeaf, Leaf: k}, true
		}

		switch top.state {
		case stateDescendLeft:
			l, r := top.iv.SplitMid()
			top.left, top.right = l, r
			top.state = stateDescendRight
			s.stack = append(s.stack, frame{iv: l})
			continue
		case stateDescendRight:
			r := top.right
			top.state = stateEmitCombine
			s.stack = append(s.stack, frame{iv: r})
			continue
		case stateEmitCombine:
			l, r := top.left, top.right
			s.stack = s.stack[:len(s.stack)-1]
			return Event{Kind: EventCombine, Left: l, Right: r}, true
		}
	}
}

// DFS drives a full traversal, invoking onLeaf for each leaf index
// left-to-right and onMerge for each post-order combine. This is the
// callback-driven entry point the folding driver programs against.
func DFS(tLeaves uint32, onLeaf func(span core.Interval), onMerge func(span core.Interval)) {
	sch := New(tLeaves)
	for {
		ev, ok := sch.Next()
		if !ok {
			return
		}
		switch ev.Kind {
		case EventLeaf:
			onLeaf(core.Interval{Lo: ev.Leaf, Hi: ev.Leaf + 1})
		case EventCombine:
			onMerge(core.Interval{Lo: ev.Left.Lo, Hi: ev.Right.Hi})
		case EventDone:
			return
		}
	}
}

// BalancedTree returns the root interval [0, t) for t leaves.
func BalancedTree(t int) core.Interval {
	return core.Interval{Lo: 0, Hi: uint32(t)}
}

// CeilLog2 returns ceil(log2(n)) for n >= 1.
func CeilLog2(n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	r := uint32(0)
	v := n - 1
	for v > 0 {
		v >>= 1
		r++
	}
	return r
}

// DepthBound returns the maximum number of live frames the scheduler can
// hold at once for tLeaves leaves, computed without performing any of the
// traversal's work: ceil(log2(tLeaves)) + 1 for the leaf-and-its-ancestors
// chain, or 1 for tLeaves <= 1.
func DepthBound(tLeaves uint32) uint32 {
	if tLeaves <= 1 {
		return 1
	}
	return CeilLog2(tLeaves) + 1
}
