package fold

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
)

// CryptoFold is the default Fold gadget: it checks the stricter
// control/input-head/work-head interface continuity between two children,
// folds their commitments and Pi values, and binds the result with a
// transcript MAC over both children's public commitments.
type CryptoFold struct{}

type foldProof struct {
	mac [32]byte
}

// FoldPair merges a left and right (Commitment, Pi) pair into their parent.
// The interface witness is checked here, not deferred to verification: a
// failed continuity check means the caller handed the gadget two blocks
// that were never adjacent, which is a driver bug, not a malicious-prover
// scenario the proof format needs to express.
func (CryptoFold) FoldPair(left, right CommitPi, iface InterfaceWitness) (Commitment, Pi, any) {
	if !core.CombinerInterfaceOK(iface.Left, iface.Right) {
		panic("fold: FoldPair called on non-adjacent blocks")
	}
	parentC := CombineCommitments(left.C, right.C)
	parentPi := CombineAux(left.Pi, right.Pi)

	tr := transcript.New(DSFold)
	absorbCommitPi(tr, left)
	absorbCommitPi(tr, right)
	tr.Absorb("parent_commitment", parentC.Root[:])
	picmt := CommitPi(parentPi)
	tr.Absorb("parent_pi_commitment", picmt[:])
	mac := tr.ChallengeBytes("mac", 32)

	var proof foldProof
	copy(proof.mac[:], mac)
	return parentC, parentPi, proof
}

// VerifyFold recomputes the parent's expected commitment/π commitment from
// the public children and checks the MAC, without ever observing a raw Pi.
func (CryptoFold) VerifyFold(parent, left, right CommitPiPublic, proof any) bool {
	fp, ok := proof.(foldProof)
	if !ok {
		return false
	}
	wantParentC := CombineCommitments(left.C, right.C)
	if wantParentC != parent.C {
		return false
	}

	tr := transcript.New(DSFold)
	absorbCommitPiPublic(tr, left)
	absorbCommitPiPublic(tr, right)
	tr.Absorb("parent_commitment", parent.C.Root[:])
	tr.Absorb("parent_pi_commitment", parent.PiCmt[:])
	want := tr.ChallengeBytes("mac", 32)
	return string(want) == string(fp.mac[:])
}

func absorbCommitPi(tr *transcript.Blake3Transcript, cp CommitPi) {
	tr.Absorb("commitment", cp.C.Root[:])
	tr.AbsorbUint64("commitment_len", uint64(cp.C.Len))
	picmt := CommitPi(cp.Pi)
	tr.Absorb("pi_commitment", picmt[:])
}

func absorbCommitPiPublic(tr *transcript.Blake3Transcript, cp CommitPiPublic) {
	tr.Absorb("commitment", cp.C.Root[:])
	tr.AbsorbUint64("commitment_len", uint64(cp.C.Len))
	tr.Absorb("pi_commitment", cp.PiCmt[:])
}

// CryptoWrap is the default Wrap gadget: a periodic attestation MAC over
// the current fold root's public (Commitment, π commitment), used to bound
// downstream verification work to a cadence rather than the full leaf
// count. It carries no additional state beyond the MAC: a wrap is a
// checkpoint, not a new accumulation.
type CryptoWrap struct{}

type wrapProof struct {
	Mac [32]byte `cbor:"mac"`
}

// WrapRoot attests to the current root.
func (CryptoWrap) WrapRoot(root CommitPi) any {
	tr := transcript.New(DSWrap)
	absorbCommitPi(tr, root)
	mac := tr.ChallengeBytes("mac", 32)
	var proof wrapProof
	copy(proof.Mac[:], mac)
	return proof
}

// VerifyWrap checks a wrap attestation against the public root.
func (CryptoWrap) VerifyWrap(root CommitPiPublic, proof any) bool {
	wp, ok := proof.(wrapProof)
	if !ok {
		return false
	}
	tr := transcript.New(DSWrap)
	absorbCommitPiPublic(tr, root)
	want := tr.ChallengeBytes("mac", 32)
	return string(want) == string(wp.Mac[:])
}

// VerifyWrapBytes decodes a CBOR-encoded wrap proof (the shape a
// StreamItem.ProofCbor carries) and verifies it against root, for callers
// outside this package that only ever see the wrap proof on the wire.
func (CryptoWrap) VerifyWrapBytes(root CommitPiPublic, proofCbor []byte) bool {
	var wp wrapProof
	if err := cbor.Unmarshal(proofCbor, &wp); err != nil {
		return false
	}
	return CryptoWrap{}.VerifyWrap(root, wp)
}
