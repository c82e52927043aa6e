package v1

import (
	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
)

// MaskDegree is the degree bound on the zero-knowledge mask polynomial
// (degree < MaskDegree).
const MaskDegree = 4

// DSMasks is the transcript label the mask coefficients are drawn under.
const DSMasks = "sezkp/stark/v1/masks"

// Mask is a single low-degree randomizing polynomial, R(x) = sum c_j x^j
// for j in [0, MaskDegree).
type Mask struct {
	Coeffs [MaskDegree]field.Element
}

// DeriveMask pulls MaskDegree field elements from tr under DSMasks. Both
// prover and verifier call this at the same transcript position so
// challenge order stays aligned even though the verifier's openings-only
// AIR check never evaluates the mask itself.
func DeriveMask(tr *transcript.Blake3Transcript) Mask {
	var m Mask
	for j := 0; j < MaskDegree; j++ {
		m.Coeffs[j] = field.FromUint64(beU64(tr.ChallengeBytesLabel(transcript.Label(DSMasks), 8)))
	}
	return m
}

func beU64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// EvaluateAt evaluates R at x via Horner's method.
func (m Mask) EvaluateAt(x field.Element) field.Element {
	acc := field.Zero()
	for j := MaskDegree - 1; j >= 0; j-- {
		acc = acc.Mul(x).Add(m.Coeffs[j])
	}
	return acc
}

// MaskAndExtend adds mask.EvaluateAt(omega^i) to every row of composition,
// where omega generates the order-len(composition) (rounded up to a power
// of two) subgroup, matching the base trace domain the composition column
// is itself indexed by.
func MaskAndExtend(composition []field.Element, mask Mask) []field.Element {
	base := padToPow2(composition)
	logN := logCeil(len(base))
	dom := field.NewDomain(uint32(logN))
	out := make([]field.Element, len(base))
	for i := range base {
		out[i] = base[i].Add(mask.EvaluateAt(dom.Element(uint64(i))))
	}
	return out
}
