package fold

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestCborSeqSinkRoundTrip(t *testing.T) {
	blocks := chainBlocks(4)
	d, err := NewDriver(blocks, CryptoLeaf{}, CryptoFold{}, CryptoWrap{}, DriverOptions{FoldMode: Balanced, WrapCadence: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	sink, err := NewCborSeqSink(&buf, 1)
	require.NoError(t, err)

	d.OnWrap(func(depth uint32, root CommitPi, proof any) {
		require.NoError(t, sink.PushWrap(depth, root, proof))
	})
	final, err := d.Run()
	require.NoError(t, err)
	require.NoError(t, sink.Close(final))

	dec := cbor.NewDecoder(&buf)
	header, err := ReadStreamHeader(dec)
	require.NoError(t, err)
	require.Equal(t, StreamFormat, header.Format)
	require.Equal(t, uint32(1), header.WrapCadence)

	var items []StreamItem
	for {
		var v cbor.RawMessage
		if err := dec.Decode(&v); err != nil {
			break
		}
		var item StreamItem
		if err := cbor.Unmarshal(v, &item); err == nil && item.Seq != 0 {
			items = append(items, item)
			continue
		}
		var footer StreamFooter
		require.NoError(t, cbor.Unmarshal(v, &footer))
		require.Equal(t, final.C, footer.FinalRoot)
		require.Equal(t, uint32(len(items)), footer.NumWraps)
		break
	}
	require.NotEmpty(t, items)
}
