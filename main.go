package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	var cfg simConfig
	switch *modeFlag {
	case "2d":
		cfg = defaultConfig2D()
	case "3d":
		cfg = defaultConfig3D()
	default:
		log.Fatalf("unknown mode %q (want 2d or 3d)", *modeFlag)
	}
	if *configFlag != "" {
		if err := cfg.applyFile(*configFlag); err != nil {
			log.Fatalf("configuration failed: %v", err)
		}
	}
	// An explicit -field-scale wins over the config file.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "field-scale" {
			cfg.fieldScale = float32(*fieldScaleFlag)
		}
	})
	cfg.resolveSource()

	var game ebiten.Game
	var backend string
	switch *modeFlag {
	case "2d":
		g, err := newGame2D(cfg)
		if err != nil {
			log.Fatalf("solver initialization failed: %v", err)
		}
		defer g.solver.Close()
		backend = g.solver.BackendName()
		game = g
	case "3d":
		g, err := newGame3D(cfg)
		if err != nil {
			log.Fatalf("solver initialization failed: %v", err)
		}
		defer g.solver.Close()
		backend = g.solver.BackendName()
		game = g
	}
	log.Printf("solver backend: %s", backend)
	log.Printf("grid %dx%dx%d, source (%d,%d,%d) freq %.3f amp %.2f, %d steps/frame",
		cfg.nx, cfg.ny, cfg.nz, cfg.sourceX, cfg.sourceY, cfg.sourceZ,
		cfg.sourceFreq, cfg.sourceAmp, cfg.stepsPerFrame)

	ebiten.SetWindowSize(viewWidth, viewHeight)
	ebiten.SetWindowTitle("EM Wave - " + *modeFlag + " FDTD")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("run: %v", err)
	}
}
