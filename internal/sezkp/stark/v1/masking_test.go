package v1

import (
	"testing"

	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/stretchr/testify/require"
)

func TestDeriveMaskDeterministicPerTranscriptState(t *testing.T) {
	m1 := DeriveMask(newTestTranscript())
	m2 := DeriveMask(newTestTranscript())
	require.Equal(t, m1, m2)
}

func TestDeriveMaskDiffersAcrossDomains(t *testing.T) {
	m1 := DeriveMask(transcriptDomain("a"))
	m2 := DeriveMask(transcriptDomain("b"))
	require.NotEqual(t, m1, m2)
}

func TestMaskAndExtendAddsMaskEvaluation(t *testing.T) {
	comp := sampleComposition()
	mask := DeriveMask(newTestTranscript())
	out := MaskAndExtend(comp, mask)

	dom := field.NewDomain(uint32(logCeil(len(comp))))
	for i, c := range comp {
		want := c.Add(mask.EvaluateAt(dom.Element(uint64(i))))
		require.True(t, out[i].Equal(want), "index %d", i)
	}
}
