package v1

import (
	"testing"

	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/stretchr/testify/require"
)

func TestColumnLabelsCanonicalOrder(t *testing.T) {
	labels := ColumnLabels(2)
	require.Equal(t, []string{
		"input_mv", "is_first", "is_last",
		"mv_0", "wflag_0", "wsym_0", "head_0", "winlen_0", "in_off_0", "out_off_0",
		"mv_1", "wflag_1", "wsym_1", "head_1", "winlen_1", "in_off_1", "out_off_1",
	}, labels)
}

func TestBuildTraceShapeAndBoundaryFlags(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())
	require.Equal(t, 4, trace.N)
	require.Equal(t, 1, trace.Tau)
	require.True(t, trace.IsFirst[0].Equal(field.One()))
	require.True(t, trace.IsLast[trace.N-1].Equal(field.One()))
	for i := 1; i < trace.N-1; i++ {
		require.True(t, trace.IsFirst[i].IsZero())
		require.True(t, trace.IsLast[i].IsZero())
	}
	require.True(t, trace.Wflag[0][1].Equal(field.One()))
	require.True(t, trace.Wsym[0][1].Equal(field.FromUint64(3)))
}

func TestBuildColumnSetRootsStableOrder(t *testing.T) {
	trace := BuildTrace(validSingleTapeBlock())
	cols, err := BuildColumnSet(trace)
	require.NoError(t, err)
	require.Len(t, cols.Roots(), len(ColumnLabels(trace.Tau)))
}
