package prover

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/fold"
	"github.com/logannye/sezkp/pkg/sezkp"
)

// BlockIterator is the streaming σ_k source the façade consumes one block
// at a time, matching §6's "blocks_iter_or_slice" half of the backend
// trait. Next returns ok=false with a nil error once exhausted.
type BlockIterator interface {
	Next() (block *core.BlockSummary, ok bool, err error)
}

// SliceIterator adapts an in-memory slice to BlockIterator, for callers who
// already hold the whole σ_k sequence (tests, small batches read via
// container.ReadBlocks) but still want to drive the streaming path.
type SliceIterator struct {
	blocks []*core.BlockSummary
	i      int
}

// NewSliceIterator wraps blocks as a BlockIterator.
func NewSliceIterator(blocks []*core.BlockSummary) *SliceIterator {
	return &SliceIterator{blocks: blocks}
}

// Next implements BlockIterator.
func (s *SliceIterator) Next() (*core.BlockSummary, bool, error) {
	if s.i >= len(s.blocks) {
		return nil, false, nil
	}
	b := s.blocks[s.i]
	s.i++
	return b, true, nil
}

// ProveStream consumes it block by block — replay plus interface
// continuity checked as each block arrives, per §4.9's
// "begin -> ingest_block* -> finish" shape — then folds the validated
// sequence and writes the wrap-attestation CBOR sequence to w as wraps are
// emitted. The returned artifact's Meta carries fold.StreamFormat and
// streamPath; the façade never opens streamPath itself, matching §5's
// "file handles for streamed artifacts are owned by the driver session".
func ProveStream(it BlockIterator, manifestRoot [32]byte, opts fold.DriverOptions, w io.Writer, streamPath string) (core.ProofArtifact, error) {
	blocks, err := drainValidated(it)
	if err != nil {
		return core.ProofArtifact{}, err
	}

	sink, err := fold.NewCborSeqSink(w, opts.WrapCadence)
	if err != nil {
		return core.ProofArtifact{}, sezkp.Wrap(sezkp.ErrIO, "prover: opening wrap stream sink", err)
	}

	var sinkErr error
	root, err := runFold(blocks, opts, func(seq uint32, r fold.CommitPi, proof any) {
		if sinkErr != nil {
			return
		}
		sinkErr = sink.PushWrap(seq, r, proof)
	})
	if err != nil {
		return core.ProofArtifact{}, err
	}
	if sinkErr != nil {
		return core.ProofArtifact{}, sezkp.Wrap(sezkp.ErrIO, "prover: writing wrap attestation", sinkErr)
	}
	if err := sink.Close(root); err != nil {
		return core.ProofArtifact{}, sezkp.Wrap(sezkp.ErrIO, "prover: closing wrap stream", err)
	}

	return core.NewStreamArtifact(core.BackendFold, manifestRoot, fold.StreamFormat, streamPath)
}

// VerifyStream repeats the replay/interface-continuity pass over it (which
// may be nil when the backend's verifier needs no σ_k, per §4.9), then
// reads the CBOR-sequence wrap stream from r: header, each wrap verified
// and tallied, and on the closing footer asserts the wrap count matches
// what was streamed and, when the last wrap covers every block (so it is
// the root), that the footer's root and π commitment equal that wrap's.
func VerifyStream(it BlockIterator, artifact core.ProofArtifact, manifestRoot [32]byte, r io.Reader) error {
	if it != nil {
		if _, err := drainValidated(it); err != nil {
			return err
		}
	}

	if artifact.Backend != core.BackendFold {
		return sezkp.New(sezkp.ErrBackendMismatch, "prover: artifact is not a fold backend artifact")
	}
	if artifact.ManifestRoot != manifestRoot {
		return sezkp.New(sezkp.ErrManifestMismatch, "prover: artifact manifest root does not match")
	}
	format, ok := artifact.MetaGet("stream_format")
	if !ok || format != fold.StreamFormat {
		return sezkp.New(sezkp.ErrUnsupportedVersion, "prover: artifact is missing or has an unrecognized stream_format")
	}

	dec := cbor.NewDecoder(r)
	header, err := fold.ReadStreamHeader(dec)
	if err != nil {
		return sezkp.Wrap(sezkp.ErrIO, "prover: reading stream header", err)
	}
	if header.Format != fold.StreamFormat {
		return sezkp.New(sezkp.ErrUnsupportedVersion, "prover: stream header has an unrecognized format")
	}

	var count uint32
	var lastRoot fold.Commitment
	var lastPi fold.PiCommitment
	for {
		item, footer, err := fold.ReadNextRecord(dec)
		if err != nil {
			return sezkp.Wrap(sezkp.ErrIO, "prover: reading stream record", err)
		}
		if footer != nil {
			if footer.NumWraps != count {
				return sezkp.New(sezkp.ErrTranscriptMismatch, "prover: stream footer wrap count does not match records read")
			}
			if count > 0 && lastRoot.Len == footer.FinalRoot.Len && (footer.FinalRoot != lastRoot || footer.FinalPiCmt != lastPi) {
				return sezkp.New(sezkp.ErrTranscriptMismatch, "prover: stream footer root does not match last wrap")
			}
			return nil
		}
		public := fold.CommitPiPublic{C: item.Root, PiCmt: item.PiCmt}
		if !(fold.CryptoWrap{}).VerifyWrapBytes(public, item.ProofCbor) {
			return sezkp.New(sezkp.ErrTranscriptMismatch, "prover: wrap attestation failed to verify")
		}
		count++
		lastRoot = item.Root
		lastPi = item.PiCmt
	}
}

// drainValidated reads every block from it, replaying and checking
// interface continuity between consecutive blocks as they arrive.
func drainValidated(it BlockIterator) ([]*core.BlockSummary, error) {
	var blocks []*core.BlockSummary
	var prev core.FiniteState
	first := true
	for {
		b, ok, err := it.Next()
		if err != nil {
			return nil, sezkp.Wrap(sezkp.ErrIO, "prover: reading block from stream", err)
		}
		if !ok {
			return blocks, nil
		}
		fs, err := core.Replay(b)
		if err != nil {
			log.Error().Uint32("block_id", b.BlockID).Err(err).Msg("prover: streamed block failed replay")
			return nil, sezkp.Wrap(sezkp.ErrMalformedBlock, "prover: replaying streamed block", err)
		}
		if !first && !core.InterfaceOK(prev, fs) {
			log.Error().Uint32("block_id", b.BlockID).Msg("prover: interface discontinuity in streamed chain, aborting")
			return nil, sezkp.New(sezkp.ErrInterfaceMismatch, "prover: interface discontinuity between streamed blocks")
		}
		log.Debug().Uint32("block_id", b.BlockID).Msg("prover: streamed block validated")
		prev = fs
		first = false
		blocks = append(blocks, b)
	}
}
