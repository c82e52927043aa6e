// Package prover implements the backend-agnostic streaming prover façade
// (C9): batch and streaming entry points that validate a σ_k sequence once
// — replay plus interface continuity — and then delegate to whichever
// backend (stark/v1 or fold) actually produces the proof artifact.
package prover

import (
	"github.com/rs/zerolog"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/logging"
	"github.com/logannye/sezkp/pkg/sezkp"
)

// log is the façade's package-level diagnostic logger. It defaults to
// logging.Nop, matching every other package's silent-by-default posture;
// SetLogger lets a caller (a CLI harness, typically) opt in.
var log = logging.Nop

// SetLogger attaches a structured logger for the façade's own validation
// pass (block indices it replays, interface mismatches it aborts on).
func SetLogger(l zerolog.Logger) {
	log = l
}

// Backend is the trait the façade drives. A backend turns a validated σ_k
// sequence plus the manifest root it must prove against into an opaque
// core.ProofArtifact, and can check one back against the same inputs.
type Backend interface {
	Prove(blocks []*core.BlockSummary, manifestRoot [32]byte) (core.ProofArtifact, error)
	Verify(artifact core.ProofArtifact, blocks []*core.BlockSummary, manifestRoot [32]byte) error
}

// validateChain replays every block and asserts §4.4 interface continuity
// between consecutive ones, independent of whichever backend is chosen.
// Backends may layer their own stricter checks (the fold gadgets' combiner
// continuity, for instance) on top of this minimal pass.
func validateChain(blocks []*core.BlockSummary) error {
	var prev core.FiniteState
	for i, b := range blocks {
		fs, err := core.Replay(b)
		if err != nil {
			log.Error().Uint32("block_id", b.BlockID).Err(err).Msg("prover: block failed replay")
			return sezkp.Wrap(sezkp.ErrMalformedBlock, "prover: replaying block", err)
		}
		if i > 0 && !core.InterfaceOK(prev, fs) {
			log.Error().Uint32("block_id", b.BlockID).Msg("prover: interface discontinuity, aborting chain validation")
			return sezkp.New(sezkp.ErrInterfaceMismatch, "prover: interface discontinuity between consecutive blocks")
		}
		log.Debug().Uint32("block_id", b.BlockID).Msg("prover: block validated")
		prev = fs
	}
	return nil
}

// Prove validates blocks (§4.4 replay plus interface continuity) and
// delegates to backend to build the artifact.
func Prove(backend Backend, blocks []*core.BlockSummary, manifestRoot [32]byte) (core.ProofArtifact, error) {
	if err := validateChain(blocks); err != nil {
		return core.ProofArtifact{}, err
	}
	return backend.Prove(blocks, manifestRoot)
}

// Verify repeats the same validation pass and then calls the backend
// verifier. A backend whose verifier does not need σ_k (a streamed fold
// artifact, say) is free to ignore the blocks argument.
func Verify(backend Backend, artifact core.ProofArtifact, blocks []*core.BlockSummary, manifestRoot [32]byte) error {
	if err := validateChain(blocks); err != nil {
		return err
	}
	return backend.Verify(artifact, blocks, manifestRoot)
}
