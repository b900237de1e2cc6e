package main

import "github.com/hajimehoshi/ebiten/v2"

// camera2D is the pan/zoom view controller for the 2D field display. The
// center is a pan offset in UV space; zoom is clamped to [minZoom, maxZoom].
type camera2D struct {
	centerX, centerY float32
	zoom             float32

	dragging     bool
	lastX, lastY float64

	panSpeed  float32
	zoomSpeed float32
	minZoom   float32
	maxZoom   float32
}

func newCamera2D() *camera2D {
	c := &camera2D{
		panSpeed:  0.002,
		zoomSpeed: 0.1,
		minZoom:   0.5,
		maxZoom:   10.0,
	}
	c.reset()
	return c
}

// reset restores the default pan offset and zoom.
func (c *camera2D) reset() {
	c.centerX, c.centerY = 0, 0
	c.zoom = 1.0
}

func (c *camera2D) onButton(pressed bool, x, y float64) {
	c.dragging = pressed
	if pressed {
		c.lastX, c.lastY = x, y
	}
}

func (c *camera2D) onPointerMove(x, y float64) {
	if c.dragging {
		dx := float32(x - c.lastX)
		dy := float32(y - c.lastY)
		// Pan opposite the cursor, vertical axis flipped, speed-invariant
		// across zoom levels.
		c.centerX -= dx * c.panSpeed / c.zoom
		c.centerY += dy * c.panSpeed / c.zoom
	}
	c.lastX, c.lastY = x, y
}

func (c *camera2D) onScroll(dy float64) {
	c.zoom *= 1.0 + float32(dy)*c.zoomSpeed
	c.zoom = clampF32(c.zoom, c.minZoom, c.maxZoom)
}

func (c *camera2D) onKey(key ebiten.Key) {
	if key == ebiten.KeyR {
		c.reset()
	}
}

// clampF32 constrains v to lie within the inclusive [min, max] range.
func clampF32(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
