package core

import "fmt"

// EvaluateRootChecked replays every block, checks pairwise interface
// continuity, and combines all per-block projections into a single root
// FiniteState via a doubling-span bottom-up pass. This is the simple
// façade-level evaluation used outside the sublinear scheduler (see the
// scheduler package for the O(log T)-frame version used by the folding
// driver).
func EvaluateRootChecked(blocks []*BlockSummary) (FiniteState, error) {
	n := len(blocks)
	if n == 0 {
		return FiniteState{}, fmt.Errorf("core: cannot evaluate an empty block list")
	}

	states := make([]FiniteState, n)
	for i, b := range blocks {
		fs, err := Replay(b)
		if err != nil {
			return FiniteState{}, fmt.Errorf("core: replay block %d: %w", i, err)
		}
		states[i] = fs
	}

	for i := 1; i < n; i++ {
		if !InterfaceOK(states[i-1], states[i]) {
			return FiniteState{}, fmt.Errorf("core: interface mismatch between blocks %d and %d", i-1, i)
		}
	}

	cur := states
	span := 1
	for len(cur) > 1 {
		next := make([]FiniteState, 0, (len(cur)+1)/2)
		doubled := span * 2
		if doubled <= 0 {
			doubled = len(cur) // guard against overflow on pathological sizes
		}
		for i := 0; i < len(cur); i += 2 {
			if i+1 < len(cur) {
				next = append(next, Combine(cur[i], cur[i+1]))
			} else {
				next = append(next, cur[i])
			}
		}
		cur = next
		span = doubled
	}
	return cur[0], nil
}
