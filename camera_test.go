package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoomStaysClamped(t *testing.T) {
	cam := newCamera2D()
	for i := 0; i < 1000; i++ {
		cam.onScroll(5.0)
	}
	assert.Equal(t, cam.maxZoom, cam.zoom)
	for i := 0; i < 1000; i++ {
		cam.onScroll(-5.0)
	}
	assert.Equal(t, cam.minZoom, cam.zoom)

	// Adversarial extreme deltas.
	for _, d := range []float64{1e9, -1e9, 0.001, -12345} {
		cam.onScroll(d)
		assert.GreaterOrEqual(t, cam.zoom, cam.minZoom)
		assert.LessOrEqual(t, cam.zoom, cam.maxZoom)
	}
}

func TestPanDragSemantics(t *testing.T) {
	cam := newCamera2D()

	// Moves without a press are ignored.
	cam.onPointerMove(100, 100)
	cam.onPointerMove(150, 120)
	assert.Equal(t, float32(0), cam.centerX)
	assert.Equal(t, float32(0), cam.centerY)

	// Press latches the cursor, drag pans opposite on x and flipped on y.
	cam.onButton(true, 100, 100)
	cam.onPointerMove(110, 90)
	assert.InDelta(t, -10*0.002, float64(cam.centerX), 1e-6)
	assert.InDelta(t, -10*0.002, float64(cam.centerY), 1e-6)

	// Pan speed is divided by zoom.
	cam.reset()
	cam.zoom = 2
	cam.onButton(true, 0, 0)
	cam.onPointerMove(10, 0)
	assert.InDelta(t, -10*0.002/2, float64(cam.centerX), 1e-6)

	// Release stops panning.
	cam.onButton(false, 0, 0)
	before := cam.centerX
	cam.onPointerMove(500, 500)
	assert.Equal(t, before, cam.centerX)
}

func TestCamera2DReset(t *testing.T) {
	cam := newCamera2D()
	cam.onButton(true, 0, 0)
	cam.onPointerMove(50, -30)
	cam.onScroll(3)
	cam.reset()
	assert.Equal(t, float32(0), cam.centerX)
	assert.Equal(t, float32(0), cam.centerY)
	assert.Equal(t, float32(1), cam.zoom)
}

func TestPitchClamped(t *testing.T) {
	cam := newCamera3D()
	cam.onButton(true, 0, 0)
	cam.onPointerMove(0, 1e6)
	assert.Equal(t, float32(maxPitch), cam.pitch)
	cam.onPointerMove(0, -1e7)
	assert.Equal(t, float32(minPitch), cam.pitch)
}

func TestDistanceStaysClamped(t *testing.T) {
	cam := newCamera3D()

	// Scroll up gets closer.
	before := cam.distance
	cam.onScroll(1)
	assert.Less(t, cam.distance, before)

	for i := 0; i < 1000; i++ {
		cam.onScroll(9.5)
	}
	assert.GreaterOrEqual(t, cam.distance, cam.minDist)
	for i := 0; i < 1000; i++ {
		cam.onScroll(-9.5)
	}
	assert.LessOrEqual(t, cam.distance, cam.maxDist)
}

func TestCamera3DReset(t *testing.T) {
	cam := newCamera3D()
	cam.onButton(true, 0, 0)
	cam.onPointerMove(123, 45)
	cam.onScroll(-2)
	cam.reset()
	assert.Equal(t, float32(defaultYaw), cam.yaw)
	assert.Equal(t, float32(defaultPitch), cam.pitch)
	assert.Equal(t, float32(defaultDistance), cam.distance)
	assert.Equal(t, float32(0.5), cam.targetX)
}
