package main

import "github.com/hajimehoshi/ebiten/v2"

// camera3D is the orbit view controller for the 3D variant. Yaw and pitch
// are in degrees with pitch clamped to [-89, 89]; distance is clamped to
// [minDist, maxDist]. The slice display uses the distance as magnification
// (defaultDist/distance), so zooming stays observable in slice mode while
// yaw and pitch are tracked for the orbit contract.
type camera3D struct {
	yaw      float32
	pitch    float32
	distance float32

	targetX, targetY, targetZ float32

	dragging     bool
	lastX, lastY float64

	rotateSpeed float32
	zoomSpeed   float32
	minDist     float32
	maxDist     float32
}

const (
	defaultYaw      = 45.0
	defaultPitch    = 30.0
	defaultDistance = 2.5
	minPitch        = -89.0
	maxPitch        = 89.0
)

func newCamera3D() *camera3D {
	c := &camera3D{
		rotateSpeed: 0.3,
		zoomSpeed:   0.1,
		minDist:     0.5,
		maxDist:     10.0,
	}
	c.reset()
	return c
}

// reset restores yaw, pitch, distance, and target to their defaults.
func (c *camera3D) reset() {
	c.yaw = defaultYaw
	c.pitch = defaultPitch
	c.distance = defaultDistance
	c.targetX, c.targetY, c.targetZ = 0.5, 0.5, 0.5
}

func (c *camera3D) onButton(pressed bool, x, y float64) {
	c.dragging = pressed
	if pressed {
		c.lastX, c.lastY = x, y
	}
}

func (c *camera3D) onPointerMove(x, y float64) {
	if c.dragging {
		dx := float32(x - c.lastX)
		dy := float32(y - c.lastY)
		c.yaw += dx * c.rotateSpeed
		c.pitch += dy * c.rotateSpeed
		c.pitch = clampF32(c.pitch, minPitch, maxPitch)
	}
	c.lastX, c.lastY = x, y
}

func (c *camera3D) onScroll(dy float64) {
	// Scroll up moves the camera closer.
	c.distance *= 1.0 - float32(dy)*c.zoomSpeed
	c.distance = clampF32(c.distance, c.minDist, c.maxDist)
}

func (c *camera3D) onKey(key ebiten.Key) {
	if key == ebiten.KeyR {
		c.reset()
	}
}

// magnification reports the display scale implied by the orbit distance.
func (c *camera3D) magnification() float32 {
	return defaultDistance / c.distance
}
