package main

import "github.com/chewxy/math32"

// Diverging, sign-aware color ramp: negative field values map to blues,
// zero to near-black, positive to warm reds. Values are clamped to [-1, 1]
// after display scaling. A lookup table keeps the per-pixel cost to an index
// computation.

const colormapSteps = 512

var colormapLUT = buildColormapLUT()

type rgb struct{ r, g, b byte }

func buildColormapLUT() [2*colormapSteps + 1]rgb {
	var lut [2*colormapSteps + 1]rgb
	for i := range lut {
		v := float32(i-colormapSteps) / colormapSteps
		lut[i] = rampColor(v)
	}
	return lut
}

// rampColor evaluates the ramp directly; the LUT samples it.
func rampColor(v float32) rgb {
	m := math32.Abs(clampF32(v, -1, 1))
	primary := byte(m * 255)
	secondary := byte(0.55 * m * m * 255)
	if v >= 0 {
		return rgb{r: primary, g: secondary, b: 0}
	}
	return rgb{r: 0, g: secondary, b: primary}
}

// colorFor maps a scaled field value through the lookup table.
func colorFor(v float32) rgb {
	idx := int(clampF32(v, -1, 1)*colormapSteps) + colormapSteps
	return colormapLUT[idx]
}
