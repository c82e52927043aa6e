package v1

import (
	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/logannye/sezkp/internal/sezkp/merkle"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
	"github.com/logannye/sezkp/pkg/sezkp"
)

// Verify replays every transcript step Prove took, using only proof's
// public commitments, and checks the two independent query families: AIR
// composition-from-openings at NumQueries base-domain rows, and FRI
// fold/path consistency at NumQueries extended-domain rows. No challenge
// (alphas, mask coefficients, z, betas, or either query index set) is read
// from proof; every one is re-derived here and, where the proof supplies a
// corresponding value, checked for equality.
func Verify(proof *Proof) error {
	if proof.N <= 0 {
		return sezkp.New(sezkp.ErrMalformedBlock, "stark/v1: proof has non-positive n")
	}
	labels := ColumnLabels(proof.Tau)
	if len(labels) != len(proof.ColumnRoots) {
		return sezkp.New(sezkp.ErrMalformedBlock, "stark/v1: column root count does not match tau")
	}
	rootsByLabel := make(map[string]merkle.Digest, len(labels))
	for i, l := range labels {
		rootsByLabel[l] = proof.ColumnRoots[i]
	}

	tr := transcript.New(DSV1Domain)
	tr.Absorb("manifest_root", proof.ManifestRoot[:])
	tr.AbsorbUint64("n", uint64(proof.N))
	tr.AbsorbUint64("tau", uint64(proof.Tau))
	for _, root := range proof.ColumnRoots {
		tr.AbsorbLabel(transcript.LabelColRoot, root[:])
	}

	alphas := DeriveAlphas(tr)
	_ = DeriveMask(tr)

	baseLogN := logCeil(proof.N)
	extLogN := baseLogN + logCeil(Blowup)
	domainSizeN := 1 << extLogN
	_ = DeriveOutOfDomainPoint(tr, extLogN)

	if len(proof.FriRoots) == 0 {
		return sezkp.New(sezkp.ErrFriPathMismatch, "stark/v1: proof has no FRI layers")
	}
	tr.AbsorbLabel(transcript.LabelFriRoot, proof.FriRoots[0][:])

	numFolds := logCeil(domainSizeN)
	if len(proof.FriRoots) != numFolds+1 {
		return sezkp.New(sezkp.ErrFriPathMismatch, "stark/v1: FRI layer count does not match the expected fold depth")
	}
	betas := make([]field.Element, numFolds)
	for i := range betas {
		betas[i] = field.FromUint64(tr.ChallengeUint64("fri/beta"))
	}
	for i := 1; i < len(proof.FriRoots); i++ {
		tr.AbsorbLabel(transcript.LabelFriRoot, proof.FriRoots[i][:])
	}
	finalBytes := proof.FinalValue.ToLEBytes()
	tr.AbsorbLabel(transcript.LabelFriFinal, finalBytes[:])

	lastRoot := proof.FriRoots[len(proof.FriRoots)-1]
	if lastRoot != leafOf(proof.FinalValue) {
		return sezkp.New(sezkp.ErrFriFinalMismatch, "stark/v1: final FRI layer root does not match the claimed final value")
	}

	if len(proof.AirQueries) != NumQueries {
		return sezkp.New(sezkp.ErrQueryOrderMismatch, "stark/v1: wrong AIR query count")
	}
	for q := 0; q < NumQueries; q++ {
		want := int(tr.ChallengeUint64("air/query") % uint64(proof.N))
		if proof.AirQueries[q].Index != want {
			return sezkp.New(sezkp.ErrQueryOrderMismatch, "stark/v1: AIR query index was not derived from the transcript")
		}
	}

	if len(proof.FriQueries) != NumQueries {
		return sezkp.New(sezkp.ErrQueryOrderMismatch, "stark/v1: wrong FRI query count")
	}
	for q := 0; q < NumQueries; q++ {
		want := int(tr.ChallengeUint64("fri/query") % uint64(domainSizeN))
		if proof.FriQueries[q].Index0 != want {
			return sezkp.New(sezkp.ErrQueryOrderMismatch, "stark/v1: FRI query index was not derived from the transcript")
		}
	}

	for _, aq := range proof.AirQueries {
		rv, err := rowViewFromOpenings(labels, rootsByLabel, proof.Tau, aq)
		if err != nil {
			return err
		}
		if c := ComposeRow(rv, alphas); !c.IsZero() {
			return sezkp.New(sezkp.ErrAirNonZero, "stark/v1: AIR composition is non-zero at a queried row")
		}
	}

	for _, fq := range proof.FriQueries {
		if !VerifyFriQuery(proof.FriRoots, betas, proof.FinalValue, domainSizeN, fq) {
			return sezkp.New(sezkp.ErrFriFoldMismatch, "stark/v1: FRI query failed to verify")
		}
	}
	return nil
}

func rowViewFromOpenings(labels []string, rootsByLabel map[string]merkle.Digest, tau int, aq AirRowQuery) (RowView, error) {
	get := func(openings map[string]merkle.ColumnOpening, label string) (field.Element, error) {
		op, ok := openings[label]
		if !ok {
			return field.Zero(), sezkp.New(sezkp.ErrMalformedBlock, "stark/v1: row query missing column "+label)
		}
		if !merkle.VerifyColumnOpening(label, op.Value, op, rootsByLabel[label]) {
			return field.Zero(), sezkp.New(sezkp.ErrColumnRootMismatch, "stark/v1: column opening failed to verify for "+label)
		}
		return decodeLE(op.Value), nil
	}

	var rv RowView
	var err error
	if rv.InputMv, err = get(aq.Row, "input_mv"); err != nil {
		return rv, err
	}
	if rv.IsFirst, err = get(aq.Row, "is_first"); err != nil {
		return rv, err
	}
	if rv.IsLast, err = get(aq.Row, "is_last"); err != nil {
		return rv, err
	}

	rv.Mv = make([]field.Element, tau)
	rv.Wflag = make([]field.Element, tau)
	rv.Wsym = make([]field.Element, tau)
	rv.Head = make([]field.Element, tau)
	rv.Winlen = make([]field.Element, tau)
	rv.InOff = make([]field.Element, tau)
	rv.OutOff = make([]field.Element, tau)
	rv.NextMv = make([]field.Element, tau)
	rv.NextHead = make([]field.Element, tau)

	for r := 0; r < tau; r++ {
		if rv.Mv[r], err = get(aq.Row, colLabel("mv", r)); err != nil {
			return rv, err
		}
		if rv.Wflag[r], err = get(aq.Row, colLabel("wflag", r)); err != nil {
			return rv, err
		}
		if rv.Wsym[r], err = get(aq.Row, colLabel("wsym", r)); err != nil {
			return rv, err
		}
		if rv.Head[r], err = get(aq.Row, colLabel("head", r)); err != nil {
			return rv, err
		}
		if rv.Winlen[r], err = get(aq.Row, colLabel("winlen", r)); err != nil {
			return rv, err
		}
		if rv.InOff[r], err = get(aq.Row, colLabel("in_off", r)); err != nil {
			return rv, err
		}
		if rv.OutOff[r], err = get(aq.Row, colLabel("out_off", r)); err != nil {
			return rv, err
		}
		if aq.NextRow != nil {
			if rv.NextMv[r], err = get(aq.NextRow, colLabel("mv", r)); err != nil {
				return rv, err
			}
			if rv.NextHead[r], err = get(aq.NextRow, colLabel("head", r)); err != nil {
				return rv, err
			}
		}
	}
	return rv, nil
}

func decodeLE(b []byte) field.Element {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return field.FromUint64(v)
}
