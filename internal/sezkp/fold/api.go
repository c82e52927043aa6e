// Package fold implements the folding/accumulation core (C8): Leaf/Fold/Wrap
// gadgets bound to a BLAKE3 transcript, a constant-degree π combiner, and
// a batch driver with two modes (Balanced, MinRam) that produce the same
// balanced-tree fold shape. There is no push-based streaming driver; the
// streamed artifact is written by CborSeqSink from the batch driver's
// wrap callbacks.
package fold

import (
	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/zeebo/blake3"
)

// Domain separators for the three outer gadget transcripts.
const (
	DSLeaf = "fold/leaf"
	DSFold = "fold/merge"
	DSWrap = "fold/wrap"
)

// Commitment is a compact commitment for a leaf/subtree in the fold tree:
// an opaque 32-byte root plus the number of leaves spanned.
type Commitment struct {
	Root [32]byte
	Len  uint32
}

// CombineCommitments is the manifest-compatible parent combiner: it must
// mirror the Merkle manifest's own parent combine so the fold tree's roots
// stay externally consistent with the manifest.
func CombineCommitments(left, right Commitment) Commitment {
	h := blake3.New()
	h.Write(left.Root[:])
	h.Write(right.Root[:])
	var root [32]byte
	copy(root[:], h.Sum(nil))
	return Commitment{Root: root, Len: left.Len + right.Len}
}

// PiCommitment is an opaque 32-byte digest of a Pi; this is what the
// streamed wire format exposes instead of raw Pi internals.
type PiCommitment [32]byte

// CommitPi hashes the canonical field encoding of pi's parts in a fixed,
// wire-stable order.
func CommitPi(pi Pi) PiCommitment {
	h := blake3.New()
	h.Write([]byte("sezkp-fold/pi-commitment/v1"))
	writeU16(h, pi.CtrlIn)
	writeU16(h, pi.CtrlOut)
	writeU32(h, pi.Flags)
	for _, a := range pi.Acc {
		writeU64(h, a.Uint64())
	}
	var out PiCommitment
	copy(out[:], h.Sum(nil))
	return out
}

func writeU16(h *blake3.Hasher, v uint16) {
	h.Write([]byte{byte(v), byte(v >> 8)})
}
func writeU32(h *blake3.Hasher, v uint32) {
	h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}
func writeU64(h *blake3.Hasher, v uint64) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	h.Write(b[:])
}

// FoldMode selects the endpoint-management strategy of the driver.
type FoldMode int

const (
	// Balanced keeps an O(T) endpoint ledger to avoid recomputation.
	Balanced FoldMode = iota
	// MinRam recomputes endpoints on demand, bounded by a small LRU.
	MinRam
)

func (m FoldMode) String() string {
	if m == MinRam {
		return "minram"
	}
	return "balanced"
}

// DriverOptions configures the folding pipeline. These are hints to the
// driver; the gadgets themselves are agnostic to the mode in use.
type DriverOptions struct {
	FoldMode      FoldMode
	WrapCadence   uint32
	EndpointCache uint32
}

// DefaultDriverOptions matches the original's defaults: Balanced mode, wraps
// disabled, a 64-entry endpoint cache (only consulted in MinRam mode).
func DefaultDriverOptions() DriverOptions {
	return DriverOptions{FoldMode: Balanced, WrapCadence: 0, EndpointCache: 64}
}

// Leaf gadget: prove/verify a single block and produce its (π, C).
type Leaf interface {
	ProveLeaf(block *core.BlockSummary) (Pi, Commitment, any)
	VerifyLeaf(commit Commitment, piCmt PiCommitment, proof any) bool
}

// Fold gadget: merge two siblings into their parent with an interface check.
type Fold interface {
	FoldPair(left CommitPi, right CommitPi, iface InterfaceWitness) (Commitment, Pi, any)
	VerifyFold(parent, left, right CommitPiPublic, proof any) bool
}

// Wrap gadget: periodically attest to the current root (C, π).
type Wrap interface {
	WrapRoot(root CommitPi) any
	VerifyWrap(root CommitPiPublic, proof any) bool
}

// CommitPi bundles a Commitment with its full Pi, used prover-side where raw
// π is still available.
type CommitPi struct {
	C  Commitment
	Pi Pi
}

// CommitPiPublic bundles a Commitment with only an opaque PiCommitment, used
// verifier-side where raw π is never observed.
type CommitPiPublic struct {
	C     Commitment
	PiCmt PiCommitment
}
