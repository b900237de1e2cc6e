package main

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isFinite32(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func maxAbs(vals []float32) float32 {
	var m float32
	for _, v := range vals {
		if a := math32.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func testConfig2D(nx, ny int, amp float32) simConfig {
	cfg := defaultConfig2D()
	cfg.nx, cfg.ny = nx, ny
	cfg.sourceAmp = amp
	cfg.sourceX, cfg.sourceY = -1, -1
	cfg.resolveSource()
	return cfg
}

func testConfig3D(n int, amp float32) simConfig {
	cfg := defaultConfig3D()
	cfg.nx, cfg.ny, cfg.nz = n, n, n
	cfg.sourceAmp = amp
	cfg.sourceX, cfg.sourceY, cfg.sourceZ = -1, -1, -1
	cfg.resolveSource()
	return cfg
}

// The H update must be exactly the scaled forward-difference curl of the
// previous step's E values: own previous H plus orthogonal E neighbors only.
func TestHUpdateStencil2D(t *testing.T) {
	cfg := testConfig2D(16, 16, 0)
	s, err := newCPUFieldSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	nx := cfg.nx
	for y := 0; y < cfg.ny; y++ {
		for x := 0; x < nx; x++ {
			s.ez[y*nx+x] = float32(x*31+y*7%13) * 0.01
		}
	}
	ez0 := make([]float32, len(s.ez))
	copy(ez0, s.ez)

	p := makeSimParams(&cfg, 0)
	require.NoError(t, s.Step(&p))

	cf := p.dt / p.dx
	for y := 1; y < cfg.ny-2; y++ {
		for x := 1; x < nx-2; x++ {
			i := y*nx + x
			wantHx := -cf * (ez0[i+nx] - ez0[i])
			wantHy := cf * (ez0[i+1] - ez0[i])
			if math32.Abs(s.hx[i]-wantHx) > 1e-6 || math32.Abs(s.hy[i]-wantHy) > 1e-6 {
				t.Fatalf("H stencil mismatch at (%d,%d): hx=%g want %g, hy=%g want %g",
					x, y, s.hx[i], wantHx, s.hy[i], wantHy)
			}
		}
	}
}

// At time zero the source contributes exactly nothing; one step later the
// source cell carries exactly amp*sin(2*pi*freq*dt) because the stencil
// contribution over an all-zero grid is zero.
func TestSourceInjection2D(t *testing.T) {
	cfg := testConfig2D(64, 64, 1.0)
	s, err := newCPUFieldSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	p := makeSimParams(&cfg, 0)
	require.NoError(t, s.Step(&p))
	assert.Equal(t, float32(0), maxAbs(s.ez), "source is silent at time zero")
	assert.Equal(t, float32(0), maxAbs(s.hx))
	assert.Equal(t, float32(0), maxAbs(s.hy))

	p = makeSimParams(&cfg, 1)
	require.NoError(t, s.Step(&p))
	src := cfg.sourceY*cfg.nx + cfg.sourceX
	want := cfg.sourceAmp * math32.Sin(twoPi*cfg.sourceFreq*normDT)
	assert.InDelta(t, float64(want), float64(s.ez[src]), 1e-6)
	assert.Equal(t, float32(0), s.ez[src+2], "no propagation past the neighbors yet")
}

// A source-free field under the Courant bound stays bounded, and the
// absorbing boundary drains an outgoing pulse instead of reflecting it.
func TestPulseBoundedAndAbsorbed2D(t *testing.T) {
	cfg := testConfig2D(64, 64, 0)
	s, err := newCPUFieldSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	// Smooth Gaussian bump in the center.
	cx, cy := cfg.nx/2, cfg.ny/2
	for y := 0; y < cfg.ny; y++ {
		for x := 0; x < cfg.nx; x++ {
			dx := float32(x - cx)
			dy := float32(y - cy)
			s.ez[y*cfg.nx+x] = math32.Exp(-(dx*dx + dy*dy) / 16)
		}
	}

	for step := 0; step < 600; step++ {
		p := makeSimParams(&cfg, step)
		require.NoError(t, s.Step(&p))
		if step%100 == 0 {
			m := maxAbs(s.ez)
			require.True(t, isFinite32(m), "non-finite field at step %d", step)
			require.LessOrEqual(t, m, float32(1.5), "field diverged at step %d", step)
		}
	}
	assert.Less(t, maxAbs(s.ez), float32(0.3),
		"pulse should have left through the absorbing boundary")
}

// End-to-end: the default 512x512 run with the source active produces no
// non-finite values in any field array over 100 steps.
func TestDefaultRunStaysFinite2D(t *testing.T) {
	cfg := testConfig2D(512, 512, defaultSourceAmp)
	s, err := newCPUFieldSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	for step := 0; step < 100; step++ {
		p := makeSimParams(&cfg, step)
		require.NoError(t, s.Step(&p))
	}
	for _, comp := range []struct {
		name string
		data []float32
	}{{"Ez", s.ez}, {"Hx", s.hx}, {"Hy", s.hy}} {
		for i, v := range comp.data {
			if !isFinite32(v) {
				t.Fatalf("non-finite %s value at index %d: %v", comp.name, i, v)
			}
		}
	}
	assert.Greater(t, maxAbs(s.ez), float32(0), "source should have excited the field")
}

func TestReadEzCopies(t *testing.T) {
	cfg := testConfig2D(16, 16, 0)
	s, err := newCPUFieldSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	s.ez[5] = 3.25
	dst := make([]float32, len(s.ez))
	require.NoError(t, s.ReadEz(dst))
	assert.Equal(t, float32(3.25), dst[5])
	dst[5] = -1
	assert.Equal(t, float32(3.25), s.ez[5], "readback must not alias simulation state")
}

func TestHUpdateStencil3D(t *testing.T) {
	cfg := testConfig3D(12, 0)
	s, err := newCPUVolumeSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	nx, ny := cfg.nx, cfg.ny
	plane := nx * ny
	for i := range s.ex {
		s.ex[i] = float32(i%17) * 0.01
		s.ey[i] = float32(i%11) * 0.02
		s.ez[i] = float32(i%7) * 0.03
	}
	ex0 := append([]float32(nil), s.ex...)
	ey0 := append([]float32(nil), s.ey...)
	ez0 := append([]float32(nil), s.ez...)

	p := makeSimParams3D(&cfg, 0, newSliceSelection(cfg.nx, cfg.ny, cfg.nz))
	require.NoError(t, s.Step(&p))

	cf := p.dt / p.dx
	check := func(x, y, z int) {
		i := z*plane + y*nx + x
		wantHx := -cf * ((ez0[i+nx] - ez0[i]) - (ey0[i+plane] - ey0[i]))
		wantHy := -cf * ((ex0[i+plane] - ex0[i]) - (ez0[i+1] - ez0[i]))
		wantHz := -cf * ((ey0[i+1] - ey0[i]) - (ex0[i+nx] - ex0[i]))
		assert.InDelta(t, float64(wantHx), float64(s.hx[i]), 1e-6, "hx at (%d,%d,%d)", x, y, z)
		assert.InDelta(t, float64(wantHy), float64(s.hy[i]), 1e-6, "hy at (%d,%d,%d)", x, y, z)
		assert.InDelta(t, float64(wantHz), float64(s.hz[i]), 1e-6, "hz at (%d,%d,%d)", x, y, z)
	}
	check(2, 3, 4)
	check(5, 5, 5)
	check(1, 8, 2)
}

func TestSourceSilentAtTimeZero3D(t *testing.T) {
	cfg := testConfig3D(12, 1.0)
	s, err := newCPUVolumeSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	sel := newSliceSelection(cfg.nx, cfg.ny, cfg.nz)
	p := makeSimParams3D(&cfg, 0, sel)
	require.NoError(t, s.Step(&p))
	for _, comp := range [][]float32{s.ex, s.ey, s.ez, s.hx, s.hy, s.hz} {
		assert.Equal(t, float32(0), maxAbs(comp))
	}

	p = makeSimParams3D(&cfg, 1, sel)
	require.NoError(t, s.Step(&p))
	src := cfg.sourceZ*cfg.nx*cfg.ny + cfg.sourceY*cfg.nx + cfg.sourceX
	want := cfg.sourceAmp * math32.Sin(twoPi*cfg.sourceFreq*normDT)
	assert.InDelta(t, float64(want), float64(s.ez[src]), 1e-6)
}

func TestSliceExtraction3D(t *testing.T) {
	cfg := testConfig3D(16, 0)
	s, err := newCPUVolumeSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	i := s.grid.idx3(3, 4, 5)
	s.ex[i] = 1
	s.ey[i] = 2
	s.ez[i] = 42

	sel := newSliceSelection(cfg.nx, cfg.ny, cfg.nz)
	dst := make([]float32, maxSliceCells(cfg.nx, cfg.ny, cfg.nz))

	sel.axis, sel.index, sel.component = axisXY, 5, componentEz
	p := makeSimParams3D(&cfg, 0, sel)
	require.NoError(t, s.ReadSlice(&p, dst))
	assert.Equal(t, float32(42), dst[4*16+3])

	sel.axis, sel.index = axisXZ, 4
	p = makeSimParams3D(&cfg, 0, sel)
	require.NoError(t, s.ReadSlice(&p, dst))
	assert.Equal(t, float32(42), dst[5*16+3])

	sel.axis, sel.index = axisYZ, 3
	p = makeSimParams3D(&cfg, 0, sel)
	require.NoError(t, s.ReadSlice(&p, dst))
	assert.Equal(t, float32(42), dst[5*16+4])

	sel.axis, sel.index, sel.component = axisXY, 5, componentEMag
	p = makeSimParams3D(&cfg, 0, sel)
	require.NoError(t, s.ReadSlice(&p, dst))
	want := math32.Sqrt(1 + 4 + 42*42)
	assert.InDelta(t, float64(want), float64(dst[4*16+3]), 1e-4)

	// Extraction is read-only with respect to the field.
	assert.Equal(t, float32(42), s.ez[i])
	assert.Equal(t, float32(1), s.ex[i])
}

func TestDefaultRunStaysFinite3D(t *testing.T) {
	cfg := testConfig3D(32, defaultSourceAmp)
	s, err := newCPUVolumeSolver(&cfg)
	require.NoError(t, err)
	defer s.Close()

	sel := newSliceSelection(cfg.nx, cfg.ny, cfg.nz)
	for step := 0; step < 50; step++ {
		p := makeSimParams3D(&cfg, step, sel)
		require.NoError(t, s.Step(&p))
	}
	for _, comp := range [][]float32{s.ex, s.ey, s.ez, s.hx, s.hy, s.hz} {
		for i, v := range comp {
			if !isFinite32(v) {
				t.Fatalf("non-finite value at index %d: %v", i, v)
			}
		}
	}
	assert.Greater(t, maxAbs(s.ez), float32(0))
}
