package merkle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func leavesN(n int) []Digest {
	out := make([]Digest, n)
	for i := 0; i < n; i++ {
		out[i] = LeafHash("col/test", []byte{byte(i), byte(i >> 8)})
	}
	return out
}

func TestOpenVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 13, 16, 17, 31, 32, 33} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			leaves := leavesN(n)
			tree := NewTree(leaves)
			root := tree.Root()
			for i := 0; i < n; i++ {
				path := tree.Open(i)
				require.True(t, VerifyPath(leaves[i], path, root), "leaf %d failed to verify", i)
			}
		})
	}
}

func TestFrontierMatchesBatchRoot(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 13, 16, 17, 31, 32, 33} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			leaves := leavesN(n)
			batch := RootOf(leaves)

			fr := NewFrontier()
			for _, l := range leaves {
				fr.PushLeaf(l)
			}
			require.Equal(t, batch, fr.FinalizeRoot())
			require.Equal(t, uint32(n), fr.NLeaves())
		})
	}
}

func TestEmptyTreeHasZeroRoot(t *testing.T) {
	require.Equal(t, Digest{}, RootOf(nil))
	require.Equal(t, Digest{}, NewFrontier().FinalizeRoot())
}

func TestCorruptedPathFailsVerification(t *testing.T) {
	leaves := leavesN(5)
	tree := NewTree(leaves)
	root := tree.Root()
	path := tree.Open(2)
	path[0].Sibling[0] ^= 0xFF
	require.False(t, VerifyPath(leaves[2], path, root))
}
