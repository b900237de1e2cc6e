package main

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(t *testing.T, buf []byte, off int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func i32At(t *testing.T, buf []byte, off int) int32 {
	t.Helper()
	return int32(binary.LittleEndian.Uint32(buf[off:]))
}

func TestSimParamsLayout(t *testing.T) {
	cfg := defaultConfig2D()
	cfg.resolveSource()
	p := makeSimParams(&cfg, 7)

	buf := make([]byte, simParamsSize)
	p.marshal(buf)

	require.Equal(t, 48, simParamsSize)
	assert.Equal(t, int32(512), i32At(t, buf, 0), "nx")
	assert.Equal(t, int32(512), i32At(t, buf, 4), "ny")
	assert.Equal(t, int32(256), i32At(t, buf, 8), "source_x")
	assert.Equal(t, int32(256), i32At(t, buf, 12), "source_y")
	assert.Equal(t, float32(1.0), f32At(t, buf, 16), "dx")
	assert.Equal(t, float32(0.5), f32At(t, buf, 20), "dt")
	assert.Equal(t, float32(3.5), f32At(t, buf, 24), "time = timestep*dt")
	assert.Equal(t, float32(defaultSourceFreq2D), f32At(t, buf, 28), "source_freq")
	assert.Equal(t, float32(defaultSourceAmp), f32At(t, buf, 32), "source_amp")
	assert.Equal(t, float32(defaultFieldScale), f32At(t, buf, 36), "field_scale")
	assert.Equal(t, int32(7), i32At(t, buf, 40), "timestep")
	assert.Equal(t, int32(0), i32At(t, buf, 44), "pad")
}

func TestSimParams3DLayout(t *testing.T) {
	cfg := defaultConfig3D()
	cfg.resolveSource()
	sel := newSliceSelection(cfg.nx, cfg.ny, cfg.nz)
	sel.cycleComponent() // Ez -> |E|
	sel.setAxis(axisYZ)
	p := makeSimParams3D(&cfg, 3, sel)

	buf := make([]byte, simParams3DSize)
	p.marshal(buf)

	require.Equal(t, 64, simParams3DSize)
	assert.Equal(t, int32(128), i32At(t, buf, 0), "nx")
	assert.Equal(t, int32(128), i32At(t, buf, 4), "ny")
	assert.Equal(t, int32(128), i32At(t, buf, 8), "nz")
	assert.Equal(t, int32(64), i32At(t, buf, 12), "source_x")
	assert.Equal(t, int32(64), i32At(t, buf, 16), "source_y")
	assert.Equal(t, int32(64), i32At(t, buf, 20), "source_z")
	assert.Equal(t, float32(1.0), f32At(t, buf, 24), "dx")
	assert.Equal(t, float32(0.5), f32At(t, buf, 28), "dt")
	assert.Equal(t, float32(1.5), f32At(t, buf, 32), "time")
	assert.Equal(t, float32(defaultSourceFreq3D), f32At(t, buf, 36), "source_freq")
	assert.Equal(t, float32(defaultSourceAmp), f32At(t, buf, 40), "source_amp")
	assert.Equal(t, float32(defaultFieldScale), f32At(t, buf, 44), "field_scale")
	assert.Equal(t, int32(3), i32At(t, buf, 48), "timestep")
	assert.Equal(t, int32(componentEMag), i32At(t, buf, 52), "render_component")
	assert.Equal(t, int32(axisYZ), i32At(t, buf, 56), "slice_axis")
	assert.Equal(t, int32(64), i32At(t, buf, 60), "slice_index")
}

func TestSimParamsRecomputedPerStep(t *testing.T) {
	cfg := defaultConfig2D()
	cfg.resolveSource()
	p0 := makeSimParams(&cfg, 0)
	p1 := makeSimParams(&cfg, 1)
	assert.Equal(t, float32(0), p0.time)
	assert.Equal(t, float32(normDT), p1.time)
	assert.Equal(t, p0.sourceFreq, p1.sourceFreq)
}
