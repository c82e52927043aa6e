package v1

import (
	"golang.org/x/sync/errgroup"

	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/logannye/sezkp/internal/sezkp/merkle"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
	"github.com/logannye/sezkp/pkg/sezkp"
)

// DSV1Domain seeds every STARK v1 proof transcript.
const DSV1Domain = "sezkp/stark/v1/domain"

// ColumnSet is the set of chunked column commitments for one trace, built
// once and reused for both the initial root absorption and every later row
// opening.
type ColumnSet struct {
	labels []string
	cols   map[string]*merkle.Column
}

// BuildColumnSet commits every column of t under ColChunkLog2-sized chunks.
// The per-label commitments are independent of each other, so they are
// built concurrently; only the final Roots()/OpenRow() reads need the
// canonical label order.
func BuildColumnSet(t *Trace) (*ColumnSet, error) {
	labels := ColumnLabels(t.Tau)
	values := t.Columns()
	cs := &ColumnSet{labels: labels, cols: make(map[string]*merkle.Column, len(labels))}

	var g errgroup.Group
	built := make([]*merkle.Column, len(labels))
	for i, label := range labels {
		i, label := i, label
		g.Go(func() error {
			vals := values[label]
			byteVals := make([][]byte, len(vals))
			for j, v := range vals {
				b := v.ToLEBytes()
				byteVals[j] = b[:]
			}
			built[i] = merkle.BuildColumn(label, byteVals, ColChunkLog2)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, label := range labels {
		cs.cols[label] = built[i]
	}
	return cs, nil
}

// Roots returns every column's public root, in canonical label order.
func (cs *ColumnSet) Roots() []merkle.Digest {
	roots := make([]merkle.Digest, len(cs.labels))
	for i, label := range cs.labels {
		roots[i] = cs.cols[label].Root()
	}
	return roots
}

// OpenRow opens every column at row i.
func (cs *ColumnSet) OpenRow(i int) map[string]merkle.ColumnOpening {
	out := make(map[string]merkle.ColumnOpening, len(cs.labels))
	for _, label := range cs.labels {
		out[label] = cs.cols[label].Open(i)
	}
	return out
}

// AirRowQuery is one sampled row's column openings, plus the next row's
// openings when one exists (needed by the head-update constraint; nil on
// the trace's last row, where that constraint is masked off anyway).
type AirRowQuery struct {
	Index   int
	Row     map[string]merkle.ColumnOpening
	NextRow map[string]merkle.ColumnOpening
}

// Proof is a complete STARK v1 proof for one block: public column and FRI
// commitments, the transcript-bound final value, and the openings the
// composition-from-openings verifier path consumes. Every challenge
// (alphas, mask coefficients, z, betas, query indices) is re-derived by the
// verifier from these public values; none of them travel in the proof.
type Proof struct {
	ManifestRoot [32]byte
	N, Tau       int
	ColumnRoots  []merkle.Digest
	FriRoots     []merkle.Digest
	FinalValue   field.Element
	AirQueries   []AirRowQuery
	FriQueries   []FriQuery
}

// Prove runs the full STARK v1 pipeline over one block: replay, column
// commitment, AIR composition, zk masking, LDE+DEEP, FRI, and finally the
// AIR and FRI query sampling, all under a single transcript in the order
// spec'd for this backend: manifest root and shape, column roots, alphas,
// mask coefficients, the out-of-domain point, the FRI layer-0 root, all
// betas, every subsequent FRI layer root and the final value, AIR row
// queries (mod n), then FRI row queries (mod N).
func Prove(manifestRoot [32]byte, block *core.BlockSummary) (*Proof, error) {
	if _, err := core.Replay(block); err != nil {
		return nil, err
	}
	trace := BuildTrace(block)
	if trace.N == 0 {
		return nil, sezkp.New(sezkp.ErrMalformedBlock, "stark/v1: block has zero rows")
	}

	cols, err := BuildColumnSet(trace)
	if err != nil {
		return nil, sezkp.Wrap(sezkp.ErrIO, "stark/v1: building column commitments", err)
	}
	roots := cols.Roots()

	tr := transcript.New(DSV1Domain)
	tr.Absorb("manifest_root", manifestRoot[:])
	tr.AbsorbUint64("n", uint64(trace.N))
	tr.AbsorbUint64("tau", uint64(trace.Tau))
	for _, root := range roots {
		tr.AbsorbLabel(transcript.LabelColRoot, root[:])
	}

	alphas := DeriveAlphas(tr)
	mask := DeriveMask(tr)

	base := BaseComposition(trace, alphas)
	masked := MaskAndExtend(base, mask)
	lde := ComputeLDE(masked)
	z := DeriveOutOfDomainPoint(tr, lde.LogN)
	deep := DeepDivide(lde, z)

	friProof := BuildFri(tr, deep)

	airQueries := make([]AirRowQuery, NumQueries)
	indices := make([]int, NumQueries)
	for q := 0; q < NumQueries; q++ {
		indices[q] = int(tr.ChallengeUint64("air/query") % uint64(trace.N))
	}
	var g errgroup.Group
	for q := 0; q < NumQueries; q++ {
		q, idx := q, indices[q]
		g.Go(func() error {
			aq := AirRowQuery{Index: idx, Row: cols.OpenRow(idx)}
			if idx+1 < trace.N {
				aq.NextRow = cols.OpenRow(idx + 1)
			}
			airQueries[q] = aq
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, sezkp.Wrap(sezkp.ErrIO, "stark/v1: opening AIR row queries", err)
	}

	friQueries := QueryFri(tr, friProof)

	return &Proof{
		ManifestRoot: manifestRoot,
		N:            trace.N,
		Tau:          trace.Tau,
		ColumnRoots:  roots,
		FriRoots:     friProof.Roots(),
		FinalValue:   friProof.FinalValue,
		AirQueries:   airQueries,
		FriQueries:   friQueries,
	}, nil
}
