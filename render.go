package main

import "github.com/hajimehoshi/ebiten/v2"

// Background color for pixels whose view ray falls outside the grid.
const (
	bgR = 8
	bgG = 8
	bgB = 14
)

// sliceRenderer projects a 2D scalar field onto the screen: each pixel's UV
// coordinate is aspect-corrected, divided by the zoom, offset by the pan
// center, and sampled (nearest cell) from the field, then mapped through the
// diverging color ramp. It only ever reads the field.
type sliceRenderer struct {
	pixels []byte
}

func newSliceRenderer() *sliceRenderer {
	return &sliceRenderer{pixels: make([]byte, viewWidth*viewHeight*4)}
}

// draw fills the pixel buffer row-parallel and hands it to the screen.
func (r *sliceRenderer) draw(screen *ebiten.Image, field []float32, fw, fh int, centerX, centerY, zoom, fieldScale float32) {
	const aspect = float32(viewWidth) / float32(viewHeight)
	invZoom := 1.0 / zoom
	fwf := float32(fw)
	fhf := float32(fh)
	pixels := r.pixels

	parallelRange(0, viewHeight, func(py int) {
		// Flip vertically so grid y grows upward on screen.
		v := 1.0 - (float32(py)+0.5)/viewHeight
		sy := (v-0.5)*invZoom + 0.5 + centerY
		gy := int(sy * fhf)
		rowIn := sy >= 0 && sy < 1
		base := py * viewWidth * 4
		for px := 0; px < viewWidth; px++ {
			u := (float32(px) + 0.5) / viewWidth
			sx := (u-0.5)*aspect*invZoom + 0.5 + centerX
			o := base + px*4
			if !rowIn || sx < 0 || sx >= 1 {
				pixels[o] = bgR
				pixels[o+1] = bgG
				pixels[o+2] = bgB
				pixels[o+3] = 255
				continue
			}
			gx := int(sx * fwf)
			c := colorFor(field[gy*fw+gx] * fieldScale)
			pixels[o] = c.r
			pixels[o+1] = c.g
			pixels[o+2] = c.b
			pixels[o+3] = 255
		}
	})
	screen.WritePixels(pixels)
}
