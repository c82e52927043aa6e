package v1

import (
	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/logannye/sezkp/internal/sezkp/merkle"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
)

// FriLayer is one folded evaluation vector plus its Merkle commitment.
type FriLayer struct {
	Values []field.Element
	Tree   *merkle.Tree
}

// FriProof is the full layer stack plus the transcript-bound final value.
type FriProof struct {
	Layers     []FriLayer
	Betas      []field.Element
	FinalValue field.Element
}

// Roots returns every layer's public root, in layer order.
func (p FriProof) Roots() []merkle.Digest {
	roots := make([]merkle.Digest, len(p.Layers))
	for i, l := range p.Layers {
		roots[i] = l.Tree.Root()
	}
	return roots
}

// DomainSize returns the layer-0 domain size, which every query index is
// relative to.
func (p FriProof) DomainSize() int { return len(p.Layers[0].Values) }

func leafOf(v field.Element) merkle.Digest {
	b := v.ToLEBytes()
	return merkle.LeafHash("sezkp/fri_leaf", b[:])
}

func commitLayer(values []field.Element) *merkle.Tree {
	leaves := make([]merkle.Digest, len(values))
	for i, v := range values {
		leaves[i] = leafOf(v)
	}
	return merkle.NewTree(leaves)
}

// fold applies y'[i] = y[i] + beta*y[i+half] for i in [0, half).
func fold(y []field.Element, beta field.Element) []field.Element {
	half := len(y) / 2
	out := make([]field.Element, half)
	for i := 0; i < half; i++ {
		out[i] = y[i].Add(beta.Mul(y[i+half]))
	}
	return out
}

// BuildFri runs the full FRI folding schedule over the initial evaluation
// vector: binds the layer-0 root, derives every beta up front, then
// iteratively folds and binds each subsequent layer root, finishing with a
// transcript-bound final value once the vector collapses to length 1.
func BuildFri(tr *transcript.Blake3Transcript, initial []field.Element) FriProof {
	layer0 := FriLayer{Values: initial, Tree: commitLayer(initial)}
	root0 := layer0.Tree.Root()
	tr.AbsorbLabel(transcript.LabelFriRoot, root0[:])

	numFolds := logCeil(len(initial))
	betas := make([]field.Element, numFolds)
	for i := range betas {
		betas[i] = field.FromUint64(tr.ChallengeUint64("fri/beta"))
	}

	layers := []FriLayer{layer0}
	cur := initial
	for _, beta := range betas {
		cur = fold(cur, beta)
		layer := FriLayer{Values: cur, Tree: commitLayer(cur)}
		root := layer.Tree.Root()
		tr.AbsorbLabel(transcript.LabelFriRoot, root[:])
		layers = append(layers, layer)
	}

	final := cur[0]
	finalBytes := final.ToLEBytes()
	tr.AbsorbLabel(transcript.LabelFriFinal, finalBytes[:])
	return FriProof{Layers: layers, Betas: betas, FinalValue: final}
}

// FriQueryStep is one layer's opening within a single sampled query: the
// canonical lower/upper values at that layer and their authentication
// paths against that layer's root.
type FriQueryStep struct {
	Lower, Upper         field.Element
	LowerPath, UpperPath []merkle.ProofNode
}

// FriQuery is one sampled query's per-layer openings, indexed into
// layer 0's domain.
type FriQuery struct {
	Index0 int
	Steps  []FriQueryStep
}

// QueryFri samples NumQueries indices into the layer-0 domain (from the
// transcript, positioned after all layer roots and the final value are
// bound) and builds the opening for each.
func QueryFri(tr *transcript.Blake3Transcript, proof FriProof) []FriQuery {
	domainSize := proof.DomainSize()
	queries := make([]FriQuery, NumQueries)
	for q := 0; q < NumQueries; q++ {
		idx := int(tr.ChallengeUint64("fri/query") % uint64(domainSize))
		queries[q] = buildFriQuery(proof, idx)
	}
	return queries
}

func buildFriQuery(proof FriProof, idx0 int) FriQuery {
	fq := FriQuery{Index0: idx0}
	idx := idx0
	for l := 0; l < len(proof.Layers)-1; l++ {
		layer := proof.Layers[l]
		half := len(layer.Values) / 2
		i := idx
		if i >= half {
			i -= half
		}
		step := FriQueryStep{
			Lower:     layer.Values[i],
			Upper:     layer.Values[i+half],
			LowerPath: layer.Tree.Open(i),
			UpperPath: layer.Tree.Open(i + half),
		}
		fq.Steps = append(fq.Steps, step)
		idx = i
	}
	return fq
}

// VerifyFriQuery recomputes the fold at every layer for one query, given
// the layer-0 domain size (from which every subsequent layer's half-size
// is derived by repeated halving). It checks each step's paths against
// that layer's root and that the fold Lower + beta*Upper equals the next
// layer's corresponding value (Upper if the reduced index is >= the next
// layer's half, else Lower) or, on the last step, the transcript-bound
// final value. It does not check that the opened paths sit at the
// positions the running index names.
func VerifyFriQuery(roots []merkle.Digest, betas []field.Element, final field.Element, domainSize0 int, q FriQuery) bool {
	idx := q.Index0
	layerLen := domainSize0
	for l, step := range q.Steps {
		if !merkle.VerifyPath(leafOf(step.Lower), step.LowerPath, roots[l]) {
			return false
		}
		if !merkle.VerifyPath(leafOf(step.Upper), step.UpperPath, roots[l]) {
			return false
		}

		folded := step.Lower.Add(betas[l].Mul(step.Upper))

		half := layerLen / 2
		nextIdx := idx
		if nextIdx >= half {
			nextIdx -= half
		}

		if l == len(q.Steps)-1 {
			if !folded.Equal(final) {
				return false
			}
			continue
		}

		next := q.Steps[l+1]
		nextHalf := half / 2
		var wantNext field.Element
		if nextIdx >= nextHalf {
			wantNext = next.Upper
		} else {
			wantNext = next.Lower
		}
		if !folded.Equal(wantNext) {
			return false
		}
		idx = nextIdx
		layerLen = half
	}
	return true
}
