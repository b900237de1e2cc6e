package main

import "github.com/chewxy/math32"

// fieldStepper advances the 2D TMz grid by one leapfrog step per call and
// exposes the Ez plane for display. The parameter block is recomputed by the
// caller before every step because time and timestep advance.
type fieldStepper interface {
	Step(p *simParams) error
	ReadEz(dst []float32) error
	Close()
	BackendName() string
}

// volumeStepper advances the 3D grid and extracts the display slice selected
// by the parameter block. ReadSlice never mutates field state.
type volumeStepper interface {
	Step(p *simParams3D) error
	ReadSlice(p *simParams3D, dst []float32) error
	Close()
	BackendName() string
}

// roundUpTile rounds n up to the next multiple of the tile size, so kernel
// dispatches cover every cell; remainder workers guard-exit in the kernels.
func roundUpTile(n, tile int) int {
	return (n + tile - 1) / tile * tile
}

// sourceTerm is the continuous point source injected at the source cell
// during the E phase: amp * sin(2*pi*freq*time). Exactly zero at time zero.
func sourceTerm(amp, freq, time float32) float32 {
	return amp * math32.Sin(twoPi*freq*time)
}
