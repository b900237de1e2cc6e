package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// inputHandler receives pointer and key events each tick. View controllers
// implement it directly; the windowing layer never hands out raw state
// pointers.
type inputHandler interface {
	onButton(pressed bool, x, y float64)
	onPointerMove(x, y float64)
	onScroll(dy float64)
	onKey(key ebiten.Key)
}

// pollInput translates ebiten's polled device state into handler events.
// Keys outside the handler's bindings are delivered and ignored there.
func pollInput(h inputHandler) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.onButton(true, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.onButton(false, x, y)
	}
	h.onPointerMove(x, y)

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.onScroll(wy)
	}

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		h.onKey(key)
	}
}

// view3D bundles the orbit camera and slice selection so both receive the
// 3D control surface: drag to orbit, scroll to zoom, 1/2/3 slice axis,
// -/= (or [/]) slice step, C component cycle, R camera reset.
type view3D struct {
	cam *camera3D
	sel *sliceSelection
}

func (v *view3D) onButton(pressed bool, x, y float64) { v.cam.onButton(pressed, x, y) }

func (v *view3D) onPointerMove(x, y float64) { v.cam.onPointerMove(x, y) }

func (v *view3D) onScroll(dy float64) { v.cam.onScroll(dy) }

func (v *view3D) onKey(key ebiten.Key) {
	switch key {
	case ebiten.KeyR:
		v.cam.reset()
	case ebiten.KeyDigit1:
		v.sel.setAxis(axisXY)
	case ebiten.KeyDigit2:
		v.sel.setAxis(axisXZ)
	case ebiten.KeyDigit3:
		v.sel.setAxis(axisYZ)
	case ebiten.KeyEqual, ebiten.KeyBracketRight, ebiten.KeyNumpadAdd:
		v.sel.stepIndex(1)
	case ebiten.KeyMinus, ebiten.KeyBracketLeft, ebiten.KeyNumpadSubtract:
		v.sel.stepIndex(-1)
	case ebiten.KeyC:
		v.sel.cycleComponent()
	}
}
