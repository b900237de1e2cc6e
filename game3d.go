package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// game3D drives the 3D variant: leapfrog steps on the full vector field,
// then a single slice of the volume is extracted and displayed. The orbit
// camera's distance magnifies the slice; slice axis/index and the rendered
// component are keyboard-selected.
type game3D struct {
	cfg      simConfig
	solver   volumeStepper
	cam      *camera3D
	sel      *sliceSelection
	view     *view3D
	renderer *sliceRenderer

	slice    []float32
	timestep int

	frameCount    int
	lastTitleTime time.Time
}

func newGame3D(cfg simConfig) (*game3D, error) {
	var solver volumeStepper
	var err error
	if *cpuFlag {
		solver, err = newCPUVolumeSolver(&cfg)
	} else {
		solver, err = newOpenCLVolumeSolver(&cfg)
	}
	if err != nil {
		return nil, err
	}
	cam := newCamera3D()
	sel := newSliceSelection(cfg.nx, cfg.ny, cfg.nz)
	return &game3D{
		cfg:           cfg,
		solver:        solver,
		cam:           cam,
		sel:           sel,
		view:          &view3D{cam: cam, sel: sel},
		renderer:      newSliceRenderer(),
		slice:         make([]float32, maxSliceCells(cfg.nx, cfg.ny, cfg.nz)),
		lastTitleTime: time.Now(),
	}, nil
}

func (g *game3D) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	pollInput(g.view)

	for i := 0; i < g.cfg.stepsPerFrame; i++ {
		p := makeSimParams3D(&g.cfg, g.timestep, g.sel)
		if err := g.solver.Step(&p); err != nil {
			return err
		}
		g.timestep++
	}
	return nil
}

func (g *game3D) Draw(screen *ebiten.Image) {
	p := makeSimParams3D(&g.cfg, g.timestep, g.sel)
	if err := g.solver.ReadSlice(&p, g.slice); err != nil {
		return
	}
	w, h := g.sel.sliceDims()
	g.renderer.draw(screen, g.slice, w, h, 0, 0, g.cam.magnification(), g.cfg.fieldScale)

	if *debugFlag {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nStep: %d\n%s %s slice=%d\nDist: %.2f",
			ebiten.ActualFPS(), g.timestep,
			componentNames[g.sel.component], axisNames[g.sel.axis], g.sel.index,
			g.cam.distance))
	}

	g.frameCount++
	if now := time.Now(); now.Sub(g.lastTitleTime).Seconds() >= titleRefreshSeconds {
		ebiten.SetWindowTitle(fmt.Sprintf("EM Wave - 3D FDTD | %d fps | Step %d | %s %s slice=%d",
			g.frameCount, g.timestep,
			componentNames[g.sel.component], axisNames[g.sel.axis], g.sel.index))
		g.frameCount = 0
		g.lastTitleTime = now
	}
}

func (g *game3D) Layout(_, _ int) (int, int) { return viewWidth, viewHeight }
