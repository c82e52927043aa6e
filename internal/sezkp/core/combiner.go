package core

// Combine implements the constant-degree combiner over two FiniteState
// projections: control and input-head state pass through from the
// appropriate side, work-head state passes through similarly, flags XOR,
// and the tag is taken from the right child (it is advisory only).
func Combine(left, right FiniteState) FiniteState {
	return FiniteState{
		CtrlIn:      left.CtrlIn,
		CtrlOut:     right.CtrlOut,
		InHeadIn:    left.InHeadIn,
		InHeadOut:   right.InHeadOut,
		WorkHeadIn:  append([]int64(nil), left.WorkHeadIn...),
		WorkHeadOut: append([]int64(nil), right.WorkHeadOut...),
		Flags:       left.Flags ^ right.Flags,
		Tag:         right.Tag,
	}
}

// CombinerInterfaceOK is the stricter continuity check used when chaining
// combines: in addition to InterfaceOK's control/input-head continuity, it
// requires exact work-head continuity between the two children.
func CombinerInterfaceOK(left, right FiniteState) bool {
	if !InterfaceOK(left, right) {
		return false
	}
	if len(left.WorkHeadOut) != len(right.WorkHeadIn) {
		return false
	}
	for i := range left.WorkHeadOut {
		if left.WorkHeadOut[i] != right.WorkHeadIn[i] {
			return false
		}
	}
	return true
}
