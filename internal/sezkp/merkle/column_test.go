package merkle

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnOpeningRoundTrip(t *testing.T) {
	const n = 130 // spans several chunks at chunkLog2=5 (chunk size 32)
	values := make([][]byte, n)
	for i := range values {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(i*31+1))
		values[i] = b
	}

	col := BuildColumn("col/head_0", values, 5)
	root := col.Root()

	for _, i := range []int{0, 1, 31, 32, 33, 64, 129} {
		opening := col.Open(i)
		require.Equal(t, values[i], opening.Value)
		require.True(t, VerifyColumnOpening("col/head_0", values[i], opening, root))
	}
}

func TestColumnOpeningRejectsTamperedValue(t *testing.T) {
	values := [][]byte{{1}, {2}, {3}, {4}, {5}}
	col := BuildColumn("col/x", values, 1)
	root := col.Root()
	opening := col.Open(2)
	require.False(t, VerifyColumnOpening("col/x", []byte{9}, opening, root))
}
