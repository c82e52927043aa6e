package prover

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/logannye/sezkp/internal/sezkp/core"
	starkv1 "github.com/logannye/sezkp/internal/sezkp/stark/v1"
	"github.com/logannye/sezkp/pkg/sezkp"
)

// StarkBackend proves each block independently with the stark/v1 AIR and
// bundles the per-block proofs into one artifact. There is no cross-block
// aggregation at this layer: the façade's own validateChain pass is what
// ties the sequence together, the same way it does for the fold backend.
type StarkBackend struct{}

type starkBundle struct {
	Proofs [][]byte `cbor:"proofs"`
}

// Prove implements Backend.
func (StarkBackend) Prove(blocks []*core.BlockSummary, manifestRoot [32]byte) (core.ProofArtifact, error) {
	bundle := starkBundle{Proofs: make([][]byte, len(blocks))}
	for i, b := range blocks {
		p, err := starkv1.Prove(manifestRoot, b)
		if err != nil {
			return core.ProofArtifact{}, sezkp.Wrap(sezkp.ErrIO, "prover/stark: proving block", err)
		}
		enc, err := cbor.Marshal(p)
		if err != nil {
			return core.ProofArtifact{}, sezkp.Wrap(sezkp.ErrIO, "prover/stark: encoding block proof", err)
		}
		bundle.Proofs[i] = enc
	}
	raw, err := cbor.Marshal(bundle)
	if err != nil {
		return core.ProofArtifact{}, sezkp.Wrap(sezkp.ErrIO, "prover/stark: encoding proof bundle", err)
	}
	return core.ProofArtifact{Backend: core.BackendStark, ManifestRoot: manifestRoot, ProofBytes: raw}, nil
}

// Verify implements Backend.
func (StarkBackend) Verify(artifact core.ProofArtifact, blocks []*core.BlockSummary, manifestRoot [32]byte) error {
	if artifact.Backend != core.BackendStark {
		return sezkp.New(sezkp.ErrBackendMismatch, "prover/stark: artifact is not a stark backend artifact")
	}
	if artifact.ManifestRoot != manifestRoot {
		return sezkp.New(sezkp.ErrManifestMismatch, "prover/stark: artifact manifest root does not match")
	}
	var bundle starkBundle
	if err := cbor.Unmarshal(artifact.ProofBytes, &bundle); err != nil {
		return sezkp.Wrap(sezkp.ErrIO, "prover/stark: decoding proof bundle", err)
	}
	if len(bundle.Proofs) != len(blocks) {
		return sezkp.New(sezkp.ErrMalformedBlock, "prover/stark: proof count does not match block count")
	}
	for _, enc := range bundle.Proofs {
		var p starkv1.Proof
		if err := cbor.Unmarshal(enc, &p); err != nil {
			return sezkp.Wrap(sezkp.ErrIO, "prover/stark: decoding block proof", err)
		}
		if p.ManifestRoot != manifestRoot {
			return sezkp.New(sezkp.ErrManifestMismatch, "prover/stark: block proof manifest root does not match")
		}
		if err := starkv1.Verify(&p); err != nil {
			return err
		}
	}
	return nil
}
