package main

import "github.com/chewxy/math32"

// cpuFieldSolver runs the 2D TMz leapfrog on host memory, parallelized
// across row ranges. Each phase is a parallelRange call; the join between
// calls is the inter-phase visibility barrier. Within a phase every cell
// writes only its own components and reads only the other field family, so
// cells are mutually independent.
type cpuFieldSolver struct {
	grid       *fieldGrid
	ez, hx, hy []float32
}

func newCPUFieldSolver(cfg *simConfig) (*cpuFieldSolver, error) {
	grid, err := newFieldGrid2D(cfg.nx, cfg.ny)
	if err != nil {
		return nil, err
	}
	return &cpuFieldSolver{
		grid: grid,
		ez:   grid.component("Ez"),
		hx:   grid.component("Hx"),
		hy:   grid.component("Hy"),
	}, nil
}

func (s *cpuFieldSolver) Step(p *simParams) error {
	nx, ny := int(p.nx), int(p.ny)
	cf := p.dt / p.dx
	ez, hx, hy := s.ez, s.hx, s.hy

	// Phase H: curl of Ez from the end of the previous step.
	parallelRange(0, ny, func(y int) {
		row := y * nx
		if y < ny-1 {
			for x := 0; x < nx; x++ {
				i := row + x
				hx[i] -= cf * (ez[i+nx] - ez[i])
			}
		}
		for x := 0; x < nx-1; x++ {
			i := row + x
			hy[i] += cf * (ez[i+1] - ez[i])
		}
	})

	// Phase E: curl of the just-updated H, then source, then boundary.
	parallelRange(1, ny-1, func(y int) {
		row := y * nx
		for x := 1; x < nx-1; x++ {
			i := row + x
			ez[i] += cf * ((hy[i] - hy[i-1]) - (hx[i] - hx[i-nx]))
		}
	})

	sx, sy := int(p.sourceX), int(p.sourceY)
	if sx >= 1 && sx < nx-1 && sy >= 1 && sy < ny-1 {
		ez[sy*nx+sx] += sourceTerm(p.sourceAmp, p.sourceFreq, p.time)
	}

	s.absorbBoundary(nx, ny)
	return nil
}

// absorbBoundary applies the first-order one-way-wave relaxation on the
// outer shell: each edge cell moves toward its interior neighbor's fresh
// value by c*dt/dx, so outgoing waves leave without a visible reflection.
func (s *cpuFieldSolver) absorbBoundary(nx, ny int) {
	ez := s.ez
	k := boundaryRelax
	last := (ny - 1) * nx
	for x := 0; x < nx; x++ {
		ez[x] += k * (ez[x+nx] - ez[x])
		ez[last+x] += k * (ez[last-nx+x] - ez[last+x])
	}
	for y := 1; y < ny-1; y++ {
		left := y * nx
		right := left + nx - 1
		ez[left] += k * (ez[left+1] - ez[left])
		ez[right] += k * (ez[right-1] - ez[right])
	}
}

func (s *cpuFieldSolver) ReadEz(dst []float32) error {
	copy(dst, s.ez)
	return nil
}

func (s *cpuFieldSolver) Close() {}

func (s *cpuFieldSolver) BackendName() string { return "CPU" }

// cpuVolumeSolver runs the full 3D leapfrog on host memory, parallelized
// across z-planes.
type cpuVolumeSolver struct {
	grid                   *fieldGrid
	ex, ey, ez, hx, hy, hz []float32
}

func newCPUVolumeSolver(cfg *simConfig) (*cpuVolumeSolver, error) {
	grid, err := newFieldGrid3D(cfg.nx, cfg.ny, cfg.nz)
	if err != nil {
		return nil, err
	}
	return &cpuVolumeSolver{
		grid: grid,
		ex:   grid.component("Ex"),
		ey:   grid.component("Ey"),
		ez:   grid.component("Ez"),
		hx:   grid.component("Hx"),
		hy:   grid.component("Hy"),
		hz:   grid.component("Hz"),
	}, nil
}

func (s *cpuVolumeSolver) Step(p *simParams3D) error {
	nx, ny, nz := int(p.nx), int(p.ny), int(p.nz)
	plane := nx * ny
	cf := p.dt / p.dx
	ex, ey, ez := s.ex, s.ey, s.ez
	hx, hy, hz := s.hx, s.hy, s.hz

	// Phase H: forward-difference curls of E, one guard per component so
	// every cell that has the needed neighbors is updated.
	parallelRange(0, nz, func(z int) {
		zOK := z < nz-1
		for y := 0; y < ny; y++ {
			yOK := y < ny-1
			row := z*plane + y*nx
			for x := 0; x < nx; x++ {
				i := row + x
				xOK := x < nx-1
				if yOK && zOK {
					hx[i] -= cf * ((ez[i+nx] - ez[i]) - (ey[i+plane] - ey[i]))
				}
				if zOK && xOK {
					hy[i] -= cf * ((ex[i+plane] - ex[i]) - (ez[i+1] - ez[i]))
				}
				if xOK && yOK {
					hz[i] -= cf * ((ey[i+1] - ey[i]) - (ex[i+nx] - ex[i]))
				}
			}
		}
	})

	// Phase E: backward-difference curls of the just-updated H, interior only.
	parallelRange(1, nz-1, func(z int) {
		for y := 1; y < ny-1; y++ {
			row := z*plane + y*nx
			for x := 1; x < nx-1; x++ {
				i := row + x
				ex[i] += cf * ((hz[i] - hz[i-nx]) - (hy[i] - hy[i-plane]))
				ey[i] += cf * ((hx[i] - hx[i-plane]) - (hz[i] - hz[i-1]))
				ez[i] += cf * ((hy[i] - hy[i-1]) - (hx[i] - hx[i-nx]))
			}
		}
	})

	sx, sy, sz := int(p.sourceX), int(p.sourceY), int(p.sourceZ)
	if sx >= 1 && sx < nx-1 && sy >= 1 && sy < ny-1 && sz >= 1 && sz < nz-1 {
		ez[sz*plane+sy*nx+sx] += sourceTerm(p.sourceAmp, p.sourceFreq, p.time)
	}

	s.absorbBoundary(nx, ny, nz)
	return nil
}

// absorbBoundary relaxes every outer-shell E cell toward its nearest
// interior neighbor. Only shell cells are written, so planes can run in
// parallel without touching each other's reads.
func (s *cpuVolumeSolver) absorbBoundary(nx, ny, nz int) {
	plane := nx * ny
	k := boundaryRelax
	relax := func(x, y, z int) {
		i := z*plane + y*nx + x
		j := clampInt(z, 1, nz-2)*plane + clampInt(y, 1, ny-2)*nx + clampInt(x, 1, nx-2)
		s.ex[i] += k * (s.ex[j] - s.ex[i])
		s.ey[i] += k * (s.ey[j] - s.ey[i])
		s.ez[i] += k * (s.ez[j] - s.ez[i])
	}
	parallelRange(0, nz, func(z int) {
		if z == 0 || z == nz-1 {
			for y := 0; y < ny; y++ {
				for x := 0; x < nx; x++ {
					relax(x, y, z)
				}
			}
			return
		}
		for x := 0; x < nx; x++ {
			relax(x, 0, z)
			relax(x, ny-1, z)
		}
		for y := 1; y < ny-1; y++ {
			relax(0, y, z)
			relax(nx-1, y, z)
		}
	})
}

func (s *cpuVolumeSolver) ReadSlice(p *simParams3D, dst []float32) error {
	nx, ny := int(p.nx), int(p.ny)
	plane := nx * ny
	axis := int(p.sliceAxis)
	idx := int(p.sliceIndex)
	comp := int(p.renderComponent)

	var w, h int
	switch axis {
	case axisXY:
		w, h = nx, ny
	case axisXZ:
		w, h = nx, int(p.nz)
	default:
		w, h = ny, int(p.nz)
	}
	parallelRange(0, h, func(v int) {
		for u := 0; u < w; u++ {
			var x, y, z int
			switch axis {
			case axisXY:
				x, y, z = u, v, idx
			case axisXZ:
				x, y, z = u, idx, v
			default:
				x, y, z = idx, u, v
			}
			i := z*plane + y*nx + x
			dst[v*w+u] = s.sampleComponent(comp, i)
		}
	})
	return nil
}

func (s *cpuVolumeSolver) sampleComponent(comp, i int) float32 {
	switch comp {
	case componentEx:
		return s.ex[i]
	case componentEy:
		return s.ey[i]
	case componentEz:
		return s.ez[i]
	case componentEMag:
		return math32.Sqrt(s.ex[i]*s.ex[i] + s.ey[i]*s.ey[i] + s.ez[i]*s.ez[i])
	case componentHx:
		return s.hx[i]
	case componentHy:
		return s.hy[i]
	default:
		return s.hz[i]
	}
}

func (s *cpuVolumeSolver) Close() {}

func (s *cpuVolumeSolver) BackendName() string { return "CPU" }
