package v1

import (
	"github.com/logannye/sezkp/internal/sezkp/field"
	"github.com/logannye/sezkp/internal/sezkp/transcript"
)

// logCeil returns the smallest k with 2^k >= n, for n >= 1.
func logCeil(n int) int {
	k := 0
	for (1 << k) < n {
		k++
	}
	return k
}

// CosetShift is the fixed, non-zero, off-subgroup shift used for every LDE
// coset in this backend (the generator of the field's full multiplicative
// group, which never lies in a proper power-of-two subgroup).
var CosetShift = field.FromUint64(field.Generator)

// LDE holds the coset-evaluated, extended composition together with the
// domain parameters needed to re-derive any x_i.
type LDE struct {
	BaseLogN int // log2 of the base (trace) domain size, padded to a power of two
	LogN     int // log2 of the extended coset domain size (BaseLogN + log2(Blowup))
	Domain   field.Domain
	Coeffs   []field.Element
	Values   []field.Element
}

// EvaluateAt evaluates the LDE's interpolated coefficients at an arbitrary
// point via Horner's method, used to derive C(z) at the out-of-domain
// point for the DEEP quotient.
func (l LDE) EvaluateAt(x field.Element) field.Element {
	acc := field.Zero()
	for i := len(l.Coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(l.Coeffs[i])
	}
	return acc
}

// padToPow2 zero-pads a composition column to the next power of two,
// matching the NTT kernels' fixed-size requirement.
func padToPow2(vals []field.Element) []field.Element {
	n := len(vals)
	logN := logCeil(n)
	out := make([]field.Element, 1<<logN)
	copy(out, vals)
	return out
}

// ComputeLDE interpolates the base composition to coefficients, then
// evaluates on a blowup-times-larger multiplicative coset.
func ComputeLDE(composition []field.Element) LDE {
	base := padToPow2(composition)
	baseLogN := logCeil(len(base))
	coeffs := field.InterpolateFromEvals(base)

	extLogN := baseLogN + logCeil(Blowup)
	dom := field.NewDomain(uint32(extLogN)).Coset(CosetShift)
	values := field.CosetEvaluate(coeffs, extLogN, CosetShift)

	return LDE{BaseLogN: baseLogN, LogN: extLogN, Domain: dom, Coeffs: coeffs, Values: values}
}

// DeriveOutOfDomainPoint samples z from the transcript, under DS label
// "z", then nudges it by repeated z += 1 until (z/shift)^(2^k) != 1, i.e.
// z is provably off the coset of order 2^k.
func DeriveOutOfDomainPoint(tr *transcript.Blake3Transcript, logN int) field.Element {
	z := field.FromUint64(tr.ChallengeUint64("z"))
	one := field.One()
	for {
		ratio := z.Mul(CosetShift.Inv())
		if !ratio.Pow(uint64(1)<<uint(logN)).Equal(one) {
			return z
		}
		z = z.Add(one)
	}
}

// DeepDivide computes the DEEP quotient values[i] -> (values[i] - c(z)) /
// (x_i - z), where c(z) is lde's own composition evaluated at the
// out-of-domain point z.
func DeepDivide(lde LDE, z field.Element) []field.Element {
	cz := lde.EvaluateAt(z)
	out := make([]field.Element, len(lde.Values))
	for i, v := range lde.Values {
		xi := lde.Domain.Element(uint64(i))
		denom := xi.Sub(z)
		if denom.IsZero() {
			// z landed exactly on a coset point; this cannot happen once
			// DeriveOutOfDomainPoint's off-coset check has passed, but
			// stays guarded rather than silently dividing by zero.
			out[i] = field.Zero()
			continue
		}
		out[i] = v.Sub(cz).Mul(denom.Inv())
	}
	return out
}
