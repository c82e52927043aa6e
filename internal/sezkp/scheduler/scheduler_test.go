package scheduler

import (
	"testing"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/stretchr/testify/require"
)

func TestEmitsLeavesAndCombinesThenDone(t *testing.T) {
	sch := New(3)
	var leaves, combines int
	var sawDone bool
	for {
		ev, ok := sch.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case EventLeaf:
			leaves++
		case EventCombine:
			combines++
		case EventDone:
			sawDone = true
		}
	}
	require.True(t, sawDone)
	require.Equal(t, 3, leaves)
	require.Equal(t, 2, combines)
}

func TestLeafOrderIsLeftToRight(t *testing.T) {
	sch := New(8)
	var order []uint32
	for {
		ev, ok := sch.Next()
		if !ok {
			break
		}
		if ev.Kind == EventLeaf {
			order = append(order, ev.Leaf)
		}
	}
	require.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestFinalMergeSpansWholeRange(t *testing.T) {
	const n = 13
	sch := New(n)
	var lastLeft, lastRight = -1, -1
	for {
		ev, ok := sch.Next()
		if !ok {
			break
		}
		if ev.Kind == EventCombine {
			lastLeft, lastRight = int(ev.Left.Lo), int(ev.Right.Hi)
		}
	}
	require.Equal(t, 0, lastLeft)
	require.Equal(t, n, lastRight)
}

func TestDepthBoundMatchesSmallCases(t *testing.T) {
	require.Equal(t, uint32(1), DepthBound(1))
	require.Equal(t, uint32(2), DepthBound(2))
	require.Equal(t, uint32(3), DepthBound(3))
	require.Equal(t, uint32(3), DepthBound(4))
	require.Equal(t, uint32(4), DepthBound(5))
}

func TestDFSCallbackDriven(t *testing.T) {
	var leaves, merges int
	DFS(5,
		func(span core.Interval) { leaves++ },
		func(span core.Interval) { merges++ },
	)
	require.Equal(t, 5, leaves)
	require.Equal(t, 4, merges)
}
