package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// game2D drives the 2D variant: per displayed frame it runs stepsPerFrame
// full leapfrog steps, then renders the Ez plane through the pan/zoom view.
type game2D struct {
	cfg      simConfig
	solver   fieldStepper
	cam      *camera2D
	renderer *sliceRenderer

	field    []float32
	timestep int

	frameCount    int
	lastTitleTime time.Time
}

func newGame2D(cfg simConfig) (*game2D, error) {
	var solver fieldStepper
	var err error
	if *cpuFlag {
		solver, err = newCPUFieldSolver(&cfg)
	} else {
		solver, err = newOpenCLFieldSolver(&cfg)
	}
	if err != nil {
		return nil, err
	}
	return &game2D{
		cfg:           cfg,
		solver:        solver,
		cam:           newCamera2D(),
		renderer:      newSliceRenderer(),
		field:         make([]float32, cfg.nx*cfg.ny),
		lastTitleTime: time.Now(),
	}, nil
}

func (g *game2D) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	pollInput(g.cam)

	for i := 0; i < g.cfg.stepsPerFrame; i++ {
		p := makeSimParams(&g.cfg, g.timestep)
		if err := g.solver.Step(&p); err != nil {
			return err
		}
		g.timestep++
	}
	return nil
}

func (g *game2D) Draw(screen *ebiten.Image) {
	if err := g.solver.ReadEz(g.field); err != nil {
		// Drawing has no recoverable error path; keep the last frame.
		return
	}
	g.renderer.draw(screen, g.field, g.cfg.nx, g.cfg.ny,
		g.cam.centerX, g.cam.centerY, g.cam.zoom, g.cfg.fieldScale)

	if *debugFlag {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nStep: %d\nZoom: %.2f",
			ebiten.ActualFPS(), g.timestep, g.cam.zoom))
	}

	g.frameCount++
	if now := time.Now(); now.Sub(g.lastTitleTime).Seconds() >= titleRefreshSeconds {
		ebiten.SetWindowTitle(fmt.Sprintf("EM Wave - 2D FDTD | %d fps | Step %d",
			g.frameCount, g.timestep))
		g.frameCount = 0
		g.lastTitleTime = now
	}
}

func (g *game2D) Layout(_, _ int) (int, int) { return viewWidth, viewHeight }
