package container

import (
	"bytes"
	"testing"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/merkle"
	"github.com/stretchr/testify/require"
)

func TestDetectFormatCaseInsensitive(t *testing.T) {
	cases := map[string]Format{
		"blocks.json":   FormatJSON,
		"BLOCKS.JSON":   FormatJSON,
		"blocks.cbor":   FormatCBOR,
		"blocks.CBOR":   FormatCBOR,
		"blocks.ndjson": FormatNDJSON,
		"blocks.NdJsOn": FormatNDJSON,
	}
	for path, want := range cases {
		got, err := DetectFormat(path)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := DetectFormat("blocks.txt")
	require.Error(t, err)
}

func sampleBlocks() []*core.BlockSummary {
	return []*core.BlockSummary{
		{BlockID: 0, CtrlIn: 0, CtrlOut: 1, Windows: []core.Window{{Left: 0, Right: 9}}, HeadInOffsets: []core.Offset{0}, HeadOutOffsets: []core.Offset{0}},
		{BlockID: 1, CtrlIn: 1, CtrlOut: 2, Windows: []core.Window{{Left: 0, Right: 9}}, HeadInOffsets: []core.Offset{0}, HeadOutOffsets: []core.Offset{0}},
	}
}

func TestBlockContainerRoundTripAllFormats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatCBOR, FormatNDJSON} {
		var buf bytes.Buffer
		require.NoError(t, WriteBlocks(&buf, format, sampleBlocks()))

		got, err := ReadBlocks(&buf, format)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, uint32(0), got[0].BlockID)
		require.Equal(t, uint32(1), got[1].BlockID)
	}
}

func TestManifestContainerRoundTripAllFormats(t *testing.T) {
	var root merkle.Digest
	root[0] = 0xCD
	m := merkle.CommitManifest{Version: merkle.ManifestVersion, Root: root, NLeaves: 7}

	for _, format := range []Format{FormatJSON, FormatCBOR, FormatNDJSON} {
		var buf bytes.Buffer
		require.NoError(t, WriteManifest(&buf, format, m))

		got, err := ReadManifest(&buf, format)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

func TestBlocksChecksumRoundTripAndTamperDetection(t *testing.T) {
	var buf bytes.Buffer
	sum, err := WriteBlocksChecksummed(&buf, FormatJSON, sampleBlocks())
	require.NoError(t, err)

	got, err := ReadBlocksVerifyChecksum(bytes.NewReader(buf.Bytes()), FormatJSON, sum)
	require.NoError(t, err)
	require.Len(t, got, 2)

	tampered := buf.Bytes()
	tampered[0] ^= 0xFF
	_, err = ReadBlocksVerifyChecksum(bytes.NewReader(tampered), FormatJSON, sum)
	require.Error(t, err)
}

func TestReadManifestRejectsMalformedRoot(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`{"version":1,"root":"not-hex","n_leaves":1}`)
	_, err := ReadManifest(&buf, FormatJSON)
	require.Error(t, err)
}
