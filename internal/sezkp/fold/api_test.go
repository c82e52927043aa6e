package fold

import (
	"testing"

	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/stretchr/testify/require"
)

func TestCombineCommitmentsIsDeterministicAndOrderSensitive(t *testing.T) {
	a := Commitment{Root: [32]byte{1}, Len: 1}
	b := Commitment{Root: [32]byte{2}, Len: 1}

	ab1 := CombineCommitments(a, b)
	ab2 := CombineCommitments(a, b)
	require.Equal(t, ab1, ab2)

	ba := CombineCommitments(b, a)
	require.NotEqual(t, ab1.Root, ba.Root)
	require.Equal(t, uint32(2), ab1.Len)
}

func TestCommitPiIsDeterministicAndSensitiveToEachField(t *testing.T) {
	base := Pi{CtrlIn: 1, CtrlOut: 2, Flags: 0, Acc: [4]field.Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3), field.FromUint64(4)}}
	c1 := CommitPi(base)
	c2 := CommitPi(base)
	require.Equal(t, c1, c2)

	flagged := base
	flagged.Flags = 1
	require.NotEqual(t, c1, CommitPi(flagged))

	accChanged := base
	accChanged.Acc[0] = field.FromUint64(999)
	require.NotEqual(t, c1, CommitPi(accChanged))
}

func TestCombineAuxMatchesAccumulatorAddition(t *testing.T) {
	left := Pi{CtrlIn: 0, CtrlOut: 1, Flags: 0b01, Acc: [4]field.Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3), field.FromUint64(4)}}
	right := Pi{CtrlIn: 1, CtrlOut: 2, Flags: 0b10, Acc: [4]field.Element{field.FromUint64(5), field.FromUint64(6), field.FromUint64(7), field.FromUint64(8)}}

	parent := CombineAux(left, right)
	require.Equal(t, left.CtrlIn, parent.CtrlIn)
	require.Equal(t, right.CtrlOut, parent.CtrlOut)
	require.Equal(t, uint32(0b11), parent.Flags)
	for i := range parent.Acc {
		require.Equal(t, left.Acc[i].Add(right.Acc[i]), parent.Acc[i])
	}
}
