package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterminismAndLabelSeparation(t *testing.T) {
	t1 := New("dom")
	t2 := New("dom")

	t1.Absorb("a", []byte("hello"))
	t2.Absorb("a", []byte("hello"))

	require.Equal(t, t1.ChallengeBytes("c", 32), t2.ChallengeBytes("c", 32))

	t3 := New("dom")
	t3.Absorb("a", []byte("hello"))
	require.NotEqual(t, t1.ChallengeBytes("c", 32), t3.ChallengeBytes("d", 32))
}

func TestDomainSeparationChangesOutput(t *testing.T) {
	t1 := New("dom1")
	t2 := New("dom2")
	t1.Absorb("x", []byte("payload"))
	t2.Absorb("x", []byte("payload"))
	require.NotEqual(t, t1.ChallengeBytes("c", 16), t2.ChallengeBytes("c", 16))
}

func TestStateProgressionChangesFutureChallenges(t *testing.T) {
	tr := New("dom")
	tr.Absorb("x", []byte("p"))
	c1 := tr.ChallengeBytes("c", 16)
	c2 := tr.ChallengeBytes("c", 16)
	require.NotEqual(t, c1, c2)
}

func TestLabelHelpers(t *testing.T) {
	tr := New("dom")
	tr.AbsorbLabel(LabelParams, []byte("N=1<<20"))
	x := tr.ChallengeBytesLabel(LabelFriFinal, 8)

	tr2 := New("dom")
	tr2.AbsorbLabel(LabelParams, []byte("N=1<<20"))
	y := tr2.ChallengeBytesLabel(LabelFriFinal, 8)

	require.Equal(t, x, y)
}
