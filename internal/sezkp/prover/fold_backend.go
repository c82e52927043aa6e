package prover

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/fold"
	"github.com/logannye/sezkp/pkg/sezkp"
)

// FoldBackend drives the balanced-tree folding pipeline (C8) over the whole
// sequence and commits to the recomputed root. Its artifact carries only
// the root commitment and π commitment; verification recomputes the same
// fold over the supplied blocks and compares roots, which the §6 backend
// trait permits explicitly (verify takes the block sequence too).
type FoldBackend struct {
	Opts fold.DriverOptions
}

// NewFoldBackend builds a FoldBackend that uses opts as given; it applies
// no defaults of its own.
func NewFoldBackend(opts fold.DriverOptions) FoldBackend {
	return FoldBackend{Opts: opts}
}

type foldArtifactBody struct {
	Root   fold.Commitment   `cbor:"root"`
	RootPi fold.PiCommitment `cbor:"root_pi"`
}

// Prove implements Backend.
func (b FoldBackend) Prove(blocks []*core.BlockSummary, manifestRoot [32]byte) (core.ProofArtifact, error) {
	root, err := runFold(blocks, b.Opts, nil)
	if err != nil {
		return core.ProofArtifact{}, err
	}
	body := foldArtifactBody{Root: root.C, RootPi: fold.CommitPi(root.Pi)}
	raw, err := cbor.Marshal(body)
	if err != nil {
		return core.ProofArtifact{}, sezkp.Wrap(sezkp.ErrIO, "prover/fold: encoding artifact body", err)
	}
	return core.ProofArtifact{Backend: core.BackendFold, ManifestRoot: manifestRoot, ProofBytes: raw}, nil
}

// Verify implements Backend. It recomputes the fold over blocks and checks
// the recomputed root against the one embedded in artifact.
func (b FoldBackend) Verify(artifact core.ProofArtifact, blocks []*core.BlockSummary, manifestRoot [32]byte) error {
	if artifact.Backend != core.BackendFold {
		return sezkp.New(sezkp.ErrBackendMismatch, "prover/fold: artifact is not a fold backend artifact")
	}
	if artifact.ManifestRoot != manifestRoot {
		return sezkp.New(sezkp.ErrManifestMismatch, "prover/fold: artifact manifest root does not match")
	}
	var body foldArtifactBody
	if err := cbor.Unmarshal(artifact.ProofBytes, &body); err != nil {
		return sezkp.Wrap(sezkp.ErrIO, "prover/fold: decoding artifact body", err)
	}
	root, err := runFold(blocks, b.Opts, nil)
	if err != nil {
		return err
	}
	if root.C != body.Root {
		return sezkp.New(sezkp.ErrManifestMismatch, "prover/fold: recomputed root does not match artifact")
	}
	if fold.CommitPi(root.Pi) != body.RootPi {
		return sezkp.New(sezkp.ErrManifestMismatch, "prover/fold: recomputed pi commitment does not match artifact")
	}
	return nil
}

// runFold builds a driver over blocks and runs it to a single root,
// forwarding wrap attestations to onWrap if non-nil.
func runFold(blocks []*core.BlockSummary, opts fold.DriverOptions, onWrap func(seq uint32, root fold.CommitPi, proof any)) (fold.CommitPi, error) {
	d, err := fold.NewDriver(blocks, fold.CryptoLeaf{}, fold.CryptoFold{}, fold.CryptoWrap{}, opts)
	if err != nil {
		return fold.CommitPi{}, sezkp.Wrap(sezkp.ErrIO, "prover/fold: building driver", err)
	}
	if onWrap != nil {
		d.OnWrap(onWrap)
	}
	root, err := d.Run()
	if err != nil {
		return fold.CommitPi{}, sezkp.Wrap(sezkp.ErrIO, "prover/fold: running driver", err)
	}
	return root, nil
}
