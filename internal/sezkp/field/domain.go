package field

// Domain is a multiplicative subgroup of order N = 2^k (an "evaluation
// domain"), optionally shifted into a coset by a nonzero scalar.
type Domain struct {
	LogN      uint32
	N         uint64
	Generator Element // generator of the order-N subgroup
	Shift     Element // coset shift; One() for the base (unshifted) domain
}

// NewDomain builds the order-2^logN subgroup generated by a fixed root of
// unity, unshifted.
func NewDomain(logN uint32) Domain {
	return Domain{
		LogN:      logN,
		N:         uint64(1) << logN,
		Generator: PrimitiveRoot2Exp(logN),
		Shift:     One(),
	}
}

// Coset returns the same subgroup shifted by a nonzero scalar, forming a
// coset shift*<omega> disjoint from the base domain whenever shift is not a
// member of <omega>.
func (d Domain) Coset(shift Element) Domain {
	d.Shift = shift
	return d
}

// Element returns the i-th element of the domain: shift * generator^i.
func (d Domain) Element(i uint64) Element {
	return d.Shift.Mul(d.Generator.Pow(i))
}

// Points materializes every element of the domain in index order. Callers
// on a hot path should prefer d.Element(i) to avoid the allocation.
func (d Domain) Points() []Element {
	out := make([]Element, d.N)
	cur := d.Shift
	for i := range out {
		out[i] = cur
		cur = cur.Mul(d.Generator)
	}
	return out
}
