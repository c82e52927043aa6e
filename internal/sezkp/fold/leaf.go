package fold

import (
	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/merkle"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
)

// CryptoLeaf is the default Leaf gadget: it runs the Algebraic Replay
// Engine over a block, derives its Pi, commits the encoding of the block's
// replayed FiniteState as a single-leaf Merkle tree (the movement log
// itself is not committed), and binds the whole thing
// with a transcript MAC so a verifier can check the leaf without ever
// re-running the replay itself.
type CryptoLeaf struct{}

// leafProof is what CryptoLeaf actually returns from ProveLeaf: the MAC
// plus the FiniteState, which downstream Fold gadgets need to check
// interface continuity.
type leafProof struct {
	mac   [32]byte
	state core.FiniteState
}

// ProveLeaf replays the block, checks write-safety, and derives (π, C); the
// commitment root is the leaf hash of the encoded FiniteState, trivially
// promoted since a leaf spans one element.
func (CryptoLeaf) ProveLeaf(block *core.BlockSummary) (Pi, Commitment, any) {
	fs, err := core.Replay(block)
	if err != nil {
		// A malformed block never reaches the gadget in practice: the
		// driver validates every block before handing it to Prove. Panic
		// here surfaces programmer error loudly rather than returning a
		// silently-wrong Pi.
		panic("fold: ProveLeaf called on invalid block: " + err.Error())
	}

	leafBytes := encodeFiniteState(fs)
	root := merkle.LeafHash("fold/leaf", leafBytes)
	commit := Commitment{Root: [32]byte(root), Len: 1}
	pi := NewLeafPi(fs)

	tr := transcript.New(DSLeaf)
	tr.Absorb("commitment", commit.Root[:])
	tr.AbsorbUint64("commitment_len", uint64(commit.Len))
	picmt := CommitPi(pi)
	tr.Absorb("pi_commitment", picmt[:])
	mac := tr.ChallengeBytes("mac", 32)

	proof := leafProof{state: fs}
	copy(proof.mac[:], mac)
	return pi, commit, proof
}

// VerifyLeaf re-derives the MAC from the public commitment and π
// commitment and checks it against the proof. It does not and cannot
// recompute the replay: that work happened prover-side, and the MAC is
// what stands in for it here.
func (CryptoLeaf) VerifyLeaf(commit Commitment, piCmt PiCommitment, proof any) bool {
	lp, ok := proof.(leafProof)
	if !ok {
		return false
	}
	tr := transcript.New(DSLeaf)
	tr.Absorb("commitment", commit.Root[:])
	tr.AbsorbUint64("commitment_len", uint64(commit.Len))
	tr.Absorb("pi_commitment", piCmt[:])
	want := tr.ChallengeBytes("mac", 32)
	return string(want) == string(lp.mac[:])
}

func encodeFiniteState(fs core.FiniteState) []byte {
	buf := make([]byte, 0, 32+8*len(fs.WorkHeadIn)+8*len(fs.WorkHeadOut))
	buf = appendU16(buf, fs.CtrlIn)
	buf = appendU16(buf, fs.CtrlOut)
	buf = appendI64(buf, fs.InHeadIn)
	buf = appendI64(buf, fs.InHeadOut)
	for _, h := range fs.WorkHeadIn {
		buf = appendI64(buf, h)
	}
	for _, h := range fs.WorkHeadOut {
		buf = appendI64(buf, h)
	}
	buf = appendU32(buf, fs.Flags)
	buf = append(buf, fs.Tag[:]...)
	return buf
}

func appendU16(b []byte, v uint16) []byte { return append(b, byte(v), byte(v>>8)) }
func appendU32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
func appendI64(b []byte, v int64) []byte {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b = append(b, byte(u>>(8*i)))
	}
	return b
}
