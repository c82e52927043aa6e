package fold

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// StreamFormat is the wire tag embedded in StreamHeader, matching the tag
// core.ProofArtifact's Meta carries under "stream_format" when a proof's
// payload lives in a side file rather than ProofBytes.
const StreamFormat = "fold-seq-v1"

// StreamHeader opens a CBOR-sequence streamed fold artifact: one header,
// then one StreamItem per recorded wrap, then one StreamFooter.
type StreamHeader struct {
	Format      string `cbor:"format"`
	WrapCadence uint32 `cbor:"wrap_cadence"`
}

// StreamItem records one wrap attestation: its sequence number, the public
// (Commitment, π commitment) it attests to, and the opaque wrap proof bytes
// (the gadget's proof, CBOR-encoded by the caller before this is built).
type StreamItem struct {
	Seq      uint32       `cbor:"seq"`
	Root     Commitment   `cbor:"root"`
	PiCmt    PiCommitment `cbor:"pi_cmt"`
	ProofCbor []byte      `cbor:"proof"`
}

// StreamFooter closes the sequence with the final accumulated root.
type StreamFooter struct {
	FinalRoot  Commitment   `cbor:"final_root"`
	FinalPiCmt PiCommitment `cbor:"final_pi_cmt"`
	NumWraps   uint32       `cbor:"num_wraps"`
}

// CborSeqSink writes a StreamHeader, a sequence of StreamItems, and a
// StreamFooter to w as a concatenated CBOR sequence (RFC 8742): each value
// is encoded independently back-to-back, with no outer array wrapping, so a
// reader can decode items one at a time without buffering the whole file.
type CborSeqSink struct {
	w        io.Writer
	enc      *cbor.Encoder
	numWraps uint32
}

// NewCborSeqSink writes the header immediately and returns a sink ready to
// accept wrap items.
func NewCborSeqSink(w io.Writer, cadence uint32) (*CborSeqSink, error) {
	enc := cbor.NewEncoder(w)
	if err := enc.Encode(StreamHeader{Format: StreamFormat, WrapCadence: cadence}); err != nil {
		return nil, err
	}
	return &CborSeqSink{w: w, enc: enc}, nil
}

// PushWrap encodes and writes one wrap attestation.
func (s *CborSeqSink) PushWrap(seq uint32, root CommitPi, proof any) error {
	proofBytes, err := cbor.Marshal(proof)
	if err != nil {
		return err
	}
	item := StreamItem{
		Seq:       seq,
		Root:      root.C,
		PiCmt:     CommitPi(root.Pi),
		ProofCbor: proofBytes,
	}
	if err := s.enc.Encode(item); err != nil {
		return err
	}
	s.numWraps++
	return nil
}

// Close writes the footer. The sink must not be used afterward.
func (s *CborSeqSink) Close(final CommitPi) error {
	footer := StreamFooter{
		FinalRoot:  final.C,
		FinalPiCmt: CommitPi(final.Pi),
		NumWraps:   s.numWraps,
	}
	return s.enc.Encode(footer)
}

// ReadStreamHeader decodes the leading StreamHeader from a CBOR sequence
// reader. It does not check the format tag; callers compare
// header.Format against StreamFormat themselves.
func ReadStreamHeader(dec *cbor.Decoder) (StreamHeader, error) {
	var h StreamHeader
	if err := dec.Decode(&h); err != nil {
		return StreamHeader{}, err
	}
	return h, nil
}

// ReadNextRecord decodes one record from a CBOR-sequence fold stream,
// returning either item (a wrap attestation) or, on reaching the closing
// record, footer. Wrap sequence numbers start at 1, which is what
// distinguishes an item from the footer on the wire.
func ReadNextRecord(dec *cbor.Decoder) (item *StreamItem, footer *StreamFooter, err error) {
	var raw cbor.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, err
	}
	var probe struct {
		Seq uint32 `cbor:"seq"`
	}
	if err := cbor.Unmarshal(raw, &probe); err == nil && probe.Seq != 0 {
		var it StreamItem
		if err := cbor.Unmarshal(raw, &it); err != nil {
			return nil, nil, err
		}
		return &it, nil, nil
	}
	var f StreamFooter
	if err := cbor.Unmarshal(raw, &f); err != nil {
		return nil, nil, err
	}
	return nil, &f, nil
}
