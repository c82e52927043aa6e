package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logannye/sezkp/internal/sezkp/fold"
)

func TestDefaultConfigMatchesDriverDefaults(t *testing.T) {
	c := DefaultConfig()
	require.Equal(t, fold.DefaultDriverOptions(), c.DriverOptions())
}

func TestBuilderChainAndClone(t *testing.T) {
	c := DefaultConfig().
		WithFoldMode(fold.MinRam).
		WithWrapCadence(4).
		WithEndpointCache(8).
		WithProofStreamPath("/tmp/out.cborseq")

	require.NoError(t, c.Validate())
	require.Equal(t, fold.MinRam, c.FoldMode)

	clone := c.Clone()
	clone.WithWrapCadence(99)
	require.Equal(t, uint32(4), c.WrapCadence)
	require.Equal(t, uint32(99), clone.WrapCadence)
}

func TestFromEnvOverlaysAndValidates(t *testing.T) {
	t.Setenv(EnvFoldMode, "minram")
	t.Setenv(EnvWrapCadence, "16")
	t.Setenv(EnvFoldCache, "32")
	t.Setenv(EnvProofStreamPath, "/tmp/stream.cborseq")

	c, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, fold.MinRam, c.FoldMode)
	require.Equal(t, uint32(16), c.WrapCadence)
	require.Equal(t, uint32(32), c.EndpointCache)
	require.Equal(t, "/tmp/stream.cborseq", c.ProofStreamPath)
}

func TestFromEnvRejectsMalformedFoldMode(t *testing.T) {
	t.Setenv(EnvFoldMode, "turbo")
	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvRejectsMalformedWrapCadence(t *testing.T) {
	t.Setenv(EnvWrapCadence, "not-a-number")
	_, err := FromEnv()
	require.Error(t, err)
}
