package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNopDiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	Nop.Output(&buf).Info().Msg("should not appear")
	require.Empty(t, buf.Bytes())
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel)
	log.Info().Msg("filtered out")
	require.Empty(t, buf.Bytes())

	log.Warn().Msg("passes through")
	require.NotEmpty(t, buf.Bytes())
}

func TestBlockAndFoldSpanEventFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	BlockEvent(log.Info(), 7, 2).Msg("leaf")
	require.Contains(t, buf.String(), `"block_id":7`)
	require.Contains(t, buf.String(), `"tau":2`)

	buf.Reset()
	FoldSpanEvent(log.Info(), 0, 4).Msg("merge")
	require.Contains(t, buf.String(), `"span_lo":0`)
	require.Contains(t, buf.String(), `"span_hi":4`)
}
