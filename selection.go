package main

// sliceSelection tracks which scalar quantity and which 2D cross-section of
// the 3D volume is displayed. Selectors never leave their enumerated ranges:
// the component cycles modulo componentCount, the axis is one of the three
// slice axes, and the index is clamped to [0, axisMax] whenever it or the
// axis changes.
type sliceSelection struct {
	nx, ny, nz int

	component int
	axis      int
	index     int
}

// newSliceSelection starts at the Ez component on the middle XY slice.
func newSliceSelection(nx, ny, nz int) *sliceSelection {
	s := &sliceSelection{nx: nx, ny: ny, nz: nz}
	s.reset()
	return s
}

// reset restores the default component, axis, and slice position.
func (s *sliceSelection) reset() {
	s.component = componentEz
	s.axis = axisXY
	s.index = s.nz / 2
}

// axisMax reports the largest valid slice index for the active axis.
func (s *sliceSelection) axisMax() int {
	switch s.axis {
	case axisXY:
		return s.nz - 1
	case axisXZ:
		return s.ny - 1
	default:
		return s.nx - 1
	}
}

// cycleComponent advances to the next render component, wrapping after Hz.
func (s *sliceSelection) cycleComponent() {
	s.component = (s.component + 1) % componentCount
}

// setAxis switches the slice axis and re-clamps the current index against
// the new axis's maximum rather than resetting it.
func (s *sliceSelection) setAxis(axis int) {
	if axis < 0 || axis >= axisCount {
		return
	}
	s.axis = axis
	s.index = clampInt(s.index, 0, s.axisMax())
}

// stepIndex moves the slice plane by delta, clamped to the valid range.
func (s *sliceSelection) stepIndex(delta int) {
	s.index = clampInt(s.index+delta, 0, s.axisMax())
}

// sliceDims reports the width and height of the extracted slice.
func (s *sliceSelection) sliceDims() (int, int) {
	switch s.axis {
	case axisXY:
		return s.nx, s.ny
	case axisXZ:
		return s.nx, s.nz
	default:
		return s.ny, s.nz
	}
}
