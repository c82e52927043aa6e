package v1

import (
	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
)

// NumAlphas is the authoritative alpha-coefficient count: one per
// constraint family, applied uniformly across tapes inside that family's
// row-composition term.
const NumAlphas = 8

// Alphas packs the eight named random-linear-combination coefficients
// drawn from the transcript after column roots are bound.
type Alphas struct {
	Boolean       field.Element
	MoveDomain    field.Element
	HeadUpdate    field.Element
	HeadBits      field.Element
	SlackBits     field.Element
	SymBits       field.Element
	BoundaryFirst field.Element
	BoundaryLast  field.Element
}

// DeriveAlphas draws the eight alpha coefficients from tr in the canonical
// order, after column roots have already been absorbed.
func DeriveAlphas(tr *transcript.Blake3Transcript) Alphas {
	draw := func(label string) field.Element {
		return field.FromUint64(tr.ChallengeUint64(label))
	}
	return Alphas{
		Boolean:       draw("alpha/boolean"),
		MoveDomain:    draw("alpha/move_domain"),
		HeadUpdate:    draw("alpha/head_update"),
		HeadBits:      draw("alpha/head_bits"),
		SlackBits:     draw("alpha/slack_bits"),
		SymBits:       draw("alpha/sym_bits"),
		BoundaryFirst: draw("alpha/boundary_first"),
		BoundaryLast:  draw("alpha/boundary_last"),
	}
}

// RowView is the minimal set of opened values the composition-from-openings
// verifier path consumes for one queried row: this row's values plus the
// next row's mv/head (needed by the head-update constraint), per tape.
type RowView struct {
	InputMv, IsFirst, IsLast field.Element
	Mv, Wflag, Wsym          []field.Element // len tau
	Head, Winlen, InOff, OutOff []field.Element
	NextMv, NextHead         []field.Element // len tau; zero-valued on the last row
}

// rowViewFromTrace extracts RowView i (and, when available, row i+1's
// mv/head) directly from a built Trace, used prover-side where the full
// trace is in hand.
func rowViewFromTrace(t *Trace, i int) RowView {
	rv := RowView{
		InputMv: t.InputMv[i], IsFirst: t.IsFirst[i], IsLast: t.IsLast[i],
		Mv: make([]field.Element, t.Tau), Wflag: make([]field.Element, t.Tau), Wsym: make([]field.Element, t.Tau),
		Head: make([]field.Element, t.Tau), Winlen: make([]field.Element, t.Tau),
		InOff: make([]field.Element, t.Tau), OutOff: make([]field.Element, t.Tau),
		NextMv: make([]field.Element, t.Tau), NextHead: make([]field.Element, t.Tau),
	}
	for r := 0; r < t.Tau; r++ {
		rv.Mv[r] = t.Mv[r][i]
		rv.Wflag[r] = t.Wflag[r][i]
		rv.Wsym[r] = t.Wsym[r][i]
		rv.Head[r] = t.Head[r][i]
		rv.Winlen[r] = t.Winlen[r][i]
		rv.InOff[r] = t.InOff[r][i]
		rv.OutOff[r] = t.OutOff[r][i]
		if i+1 < t.N {
			rv.NextMv[r] = t.Mv[r][i+1]
			rv.NextHead[r] = t.Head[r][i+1]
		}
	}
	return rv
}

// bitsOf extracts the low nBits bits of e's canonical representative.
func bitsOf(e field.Element, nBits int) []field.Element {
	v := e.Uint64()
	bits := make([]field.Element, nBits)
	for j := 0; j < nBits; j++ {
		bits[j] = field.FromUint64((v >> uint(j)) & 1)
	}
	return bits
}

// rangeResidual returns the sum of the bit-booleanity terms plus the
// reconstruction gap for e against an nBits decomposition: zero iff e's
// canonical value fits in nBits bits with every extracted bit genuinely
// boolean (always true by construction here, since bits are derived
// directly from the opened value rather than separately committed; the
// non-trivial failure mode this still catches is e >= 2^nBits).
func rangeResidual(e field.Element, nBits int) field.Element {
	bits := bitsOf(e, nBits)
	boolSum := field.Zero()
	recon := field.Zero()
	pow := field.One()
	two := field.FromUint64(2)
	for _, b := range bits {
		boolSum = boolSum.Add(b.Mul(b.Sub(field.One())))
		recon = recon.Add(b.Mul(pow))
		pow = pow.Mul(two)
	}
	return boolSum.Add(e.Sub(recon))
}

// ComposeRow evaluates the full α-weighted constraint composition at one
// row, consuming only the openable RowView fields, so the exact same
// function serves both the prover (over the full trace) and the verifier
// (over queried rows only).
func ComposeRow(rv RowView, a Alphas) field.Element {
	tau := len(rv.Mv)
	one := field.One()
	sum := field.Zero()

	booleanTerm := field.Zero()
	moveTerm := func(mv field.Element) field.Element {
		return mv.Mul(mv.Sub(one)).Mul(mv.Add(one))
	}
	moveDomainTerm := moveTerm(rv.InputMv)
	headUpdateTerm := field.Zero()
	headBitsTerm := field.Zero()
	slackBitsTerm := field.Zero()
	symBitsTerm := field.Zero()
	boundaryFirstTerm := field.Zero()
	boundaryLastTerm := field.Zero()

	notLast := one.Sub(rv.IsLast)

	for r := 0; r < tau; r++ {
		wflag := rv.Wflag[r]
		booleanTerm = booleanTerm.Add(wflag.Mul(wflag.Sub(one)))
		moveDomainTerm = moveDomainTerm.Add(moveTerm(rv.Mv[r]))

		headDelta := rv.NextHead[r].Sub(rv.Head[r]).Sub(rv.NextMv[r])
		headUpdateTerm = headUpdateTerm.Add(notLast.Mul(headDelta))

		headBitsTerm = headBitsTerm.Add(wflag.Mul(rangeResidual(rv.Head[r], HeadBits)))
		slack := rv.Winlen[r].Sub(one).Sub(rv.Head[r])
		slackBitsTerm = slackBitsTerm.Add(wflag.Mul(rangeResidual(slack, HeadBits)))
		symBitsTerm = symBitsTerm.Add(wflag.Mul(rangeResidual(rv.Wsym[r], SymBits)))

		boundaryFirstTerm = boundaryFirstTerm.Add(rv.Head[r].Sub(rv.Mv[r]).Sub(rv.InOff[r]))
		boundaryLastTerm = boundaryLastTerm.Add(rv.Head[r].Sub(rv.OutOff[r]))
	}
	boundaryFirstTerm = boundaryFirstTerm.Mul(rv.IsFirst)
	boundaryLastTerm = boundaryLastTerm.Mul(rv.IsLast)

	sum = sum.Add(a.Boolean.Mul(booleanTerm))
	sum = sum.Add(a.MoveDomain.Mul(moveDomainTerm))
	sum = sum.Add(a.HeadUpdate.Mul(headUpdateTerm))
	sum = sum.Add(a.HeadBits.Mul(headBitsTerm))
	sum = sum.Add(a.SlackBits.Mul(slackBitsTerm))
	sum = sum.Add(a.SymBits.Mul(symBitsTerm))
	sum = sum.Add(a.BoundaryFirst.Mul(boundaryFirstTerm))
	sum = sum.Add(a.BoundaryLast.Mul(boundaryLastTerm))
	return sum
}

// BaseComposition evaluates ComposeRow over every row of t, producing the
// base-domain composition column C(i) = row + boundary that the LDE+DEEP
// stage extends.
func BaseComposition(t *Trace, a Alphas) []field.Element {
	out := make([]field.Element, t.N)
	for i := 0; i < t.N; i++ {
		out[i] = ComposeRow(rowViewFromTrace(t, i), a)
	}
	return out
}
