package main

import "fmt"

// Canonical component orders. The device-side buffer table is built in the
// same order, so a component's position here is its binding slot.
var (
	componentNames2D = []string{"Ez", "Hx", "Hy"}
	componentNames3D = []string{"Ex", "Ey", "Ez", "Hx", "Hy", "Hz"}
)

// fieldGrid stores the electromagnetic field components as equal-length
// float32 arrays, zero-initialized and row-major linearized. Array lengths
// never change after creation; the stepper is the only writer and the slice
// projector the only reader.
type fieldGrid struct {
	nx, ny, nz int
	cells      int
	names      []string
	comps      map[string][]float32
}

// newFieldGrid2D allocates a TMz grid holding Ez, Hx, and Hy.
func newFieldGrid2D(nx, ny int) (*fieldGrid, error) {
	return newFieldGrid(nx, ny, 1, componentNames2D)
}

// newFieldGrid3D allocates a full-vector grid holding Ex..Hz.
func newFieldGrid3D(nx, ny, nz int) (*fieldGrid, error) {
	if nz < 3 {
		return nil, fmt.Errorf("3D grid depth %d too small", nz)
	}
	return newFieldGrid(nx, ny, nz, componentNames3D)
}

func newFieldGrid(nx, ny, nz int, names []string) (*fieldGrid, error) {
	if nx < 3 || ny < 3 || nz < 1 {
		return nil, fmt.Errorf("grid dimensions %dx%dx%d too small", nx, ny, nz)
	}
	cells := nx * ny * nz
	g := &fieldGrid{
		nx: nx, ny: ny, nz: nz,
		cells: cells,
		names: names,
		comps: make(map[string][]float32, len(names)),
	}
	for _, name := range names {
		g.comps[name] = make([]float32, cells)
	}
	return g, nil
}

// component returns the storage for a named field component.
func (g *fieldGrid) component(name string) []float32 {
	return g.comps[name]
}

// idx2 linearizes 2D grid coordinates.
func (g *fieldGrid) idx2(x, y int) int {
	return y*g.nx + x
}

// idx3 linearizes 3D grid coordinates.
func (g *fieldGrid) idx3(x, y, z int) int {
	return z*g.nx*g.ny + y*g.nx + x
}
