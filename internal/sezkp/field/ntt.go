package field

// In-place radix-2 Cooley-Tukey NTT/INTT, ported from the bit-reversal +
// precomputed-twiddle-per-stage structure of the original NTT kernel.
// ForwardNTT maps coefficients to evaluations over the order-len(a) subgroup
// generated by PrimitiveRoot2Exp; InverseNTT is its exact mirror, scaled by
// n^-1 at the end.

func bitReverse(x, bitsN int) int {
	y := 0
	for i := 0; i < bitsN; i++ {
		y = (y << 1) | (x & 1)
		x >>= 1
	}
	return y
}

func bitReversePermute(a []Element) {
	n := len(a)
	bitsN := 0
	for (1 << bitsN) < n {
		bitsN++
	}
	for i := 0; i < n; i++ {
		j := bitReverse(i, bitsN)
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func buildTwiddles(logN int, inverse bool) [][]Element {
	out := make([][]Element, logN)
	for s := 1; s <= logN; s++ {
		half := 1 << (s - 1)
		root := PrimitiveRoot2Exp(uint32(s))
		if inverse {
			root = root.Inv()
		}
		ws := make([]Element, half)
		w := One()
		for i := 0; i < half; i++ {
			ws[i] = w
			w = w.Mul(root)
		}
		out[s-1] = ws
	}
	return out
}

// ForwardNTT transforms a in place, coefficients -> evaluations. len(a) must
// be a power of two.
func ForwardNTT(a []Element) {
	n := len(a)
	if n <= 1 {
		return
	}
	if !isPowerOfTwo(n) {
		panic("field: NTT size must be a power of two")
	}
	bitReversePermute(a)

	logN := 0
	for (1 << logN) < n {
		logN++
	}
	tw := buildTwiddles(logN, false)

	length := 2
	stage := 1
	for length <= n {
		half := length / 2
		wStage := tw[stage-1]
		for j := 0; j < n; j += length {
			for i := 0; i < half; i++ {
				u := a[j+i]
				v := a[j+i+half].Mul(wStage[i])
				a[j+i] = u.Add(v)
				a[j+i+half] = u.Sub(v)
			}
		}
		stage++
		length <<= 1
	}
}

// InverseNTT transforms a in place, evaluations -> coefficients.
func InverseNTT(a []Element) {
	n := len(a)
	if n <= 1 {
		return
	}
	if !isPowerOfTwo(n) {
		panic("field: NTT size must be a power of two")
	}
	bitReversePermute(a)

	logN := 0
	for (1 << logN) < n {
		logN++
	}
	twInv := buildTwiddles(logN, true)

	length := 2
	stage := 1
	for length <= n {
		half := length / 2
		wStage := twInv[stage-1]
		for j := 0; j < n; j += length {
			for i := 0; i < half; i++ {
				u := a[j+i]
				t := a[j+i+half].Mul(wStage[i])
				a[j+i] = u.Add(t)
				a[j+i+half] = u.Sub(t)
			}
		}
		stage++
		length <<= 1
	}

	invN := FromUint64(uint64(n)).Inv()
	for i := range a {
		a[i] = a[i].Mul(invN)
	}
}

// EvaluateOnPow2Domain zero-pads or truncates coeffs to 2^logN and evaluates
// via forward NTT.
func EvaluateOnPow2Domain(coeffs []Element, logN int) []Element {
	n := 1 << logN
	buf := make([]Element, n)
	m := len(coeffs)
	if m > n {
		m = n
	}
	copy(buf, coeffs[:m])
	ForwardNTT(buf)
	return buf
}

// InterpolateFromEvals recovers coefficients from evaluations via inverse NTT.
func InterpolateFromEvals(evals []Element) []Element {
	buf := make([]Element, len(evals))
	copy(buf, evals)
	InverseNTT(buf)
	return buf
}

// CosetEvaluate evaluates a polynomial (by coefficients) on shift*<omega> of
// size 2^logN: scale coefficient j by shift^j, then forward-NTT on the base
// domain. With shift = One(), this is identical to a plain forward NTT.
func CosetEvaluate(coeffs []Element, logN int, shift Element) []Element {
	n := 1 << logN
	buf := make([]Element, n)
	m := len(coeffs)
	if m > n {
		m = n
	}
	s := One()
	for i := 0; i < m; i++ {
		buf[i] = coeffs[i].Mul(s)
		s = s.Mul(shift)
	}
	ForwardNTT(buf)
	return buf
}
