package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// simConfig collects the per-run simulation settings. Defaults come from the
// constants in config.go; a TOML file may override any subset of them.
type simConfig struct {
	nx, ny, nz                int
	sourceX, sourceY, sourceZ int
	sourceFreq                float32
	sourceAmp                 float32
	stepsPerFrame             int
	fieldScale                float32
}

// fileConfig mirrors the TOML layout. Zero values mean "keep the default";
// source coordinates use -1 for "grid center".
type fileConfig struct {
	Grid struct {
		NX int `toml:"nx"`
		NY int `toml:"ny"`
		NZ int `toml:"nz"`
	} `toml:"grid"`
	Source struct {
		X    int     `toml:"x"`
		Y    int     `toml:"y"`
		Z    int     `toml:"z"`
		Freq float64 `toml:"freq"`
		Amp  float64 `toml:"amp"`
	} `toml:"source"`
	Sim struct {
		StepsPerFrame int     `toml:"steps_per_frame"`
		FieldScale    float64 `toml:"field_scale"`
	} `toml:"sim"`
}

// defaultConfig2D returns the stock 2D TMz configuration.
func defaultConfig2D() simConfig {
	return simConfig{
		nx: defaultNX2D, ny: defaultNY2D, nz: 1,
		sourceX: -1, sourceY: -1, sourceZ: 0,
		sourceFreq:    defaultSourceFreq2D,
		sourceAmp:     defaultSourceAmp,
		stepsPerFrame: defaultStepsPerFrame2D,
		fieldScale:    defaultFieldScale,
	}
}

// defaultConfig3D returns the stock 3D configuration.
func defaultConfig3D() simConfig {
	return simConfig{
		nx: defaultNX3D, ny: defaultNY3D, nz: defaultNZ3D,
		sourceX: -1, sourceY: -1, sourceZ: -1,
		sourceFreq:    defaultSourceFreq3D,
		sourceAmp:     defaultSourceAmp,
		stepsPerFrame: defaultStepsPerFrame3D,
		fieldScale:    defaultFieldScale,
	}
}

// applyFile overlays settings from a TOML file onto cfg.
func (cfg *simConfig) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	fc.Source.X, fc.Source.Y, fc.Source.Z = -1, -1, -1
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if fc.Grid.NX > 0 {
		cfg.nx = fc.Grid.NX
	}
	if fc.Grid.NY > 0 {
		cfg.ny = fc.Grid.NY
	}
	if fc.Grid.NZ > 0 {
		cfg.nz = fc.Grid.NZ
	}
	if fc.Source.X >= 0 {
		cfg.sourceX = fc.Source.X
	}
	if fc.Source.Y >= 0 {
		cfg.sourceY = fc.Source.Y
	}
	if fc.Source.Z >= 0 {
		cfg.sourceZ = fc.Source.Z
	}
	if fc.Source.Freq > 0 {
		cfg.sourceFreq = float32(fc.Source.Freq)
	}
	if fc.Source.Amp > 0 {
		cfg.sourceAmp = float32(fc.Source.Amp)
	}
	if fc.Sim.StepsPerFrame > 0 {
		cfg.stepsPerFrame = fc.Sim.StepsPerFrame
	}
	if fc.Sim.FieldScale > 0 {
		cfg.fieldScale = float32(fc.Sim.FieldScale)
	}
	return nil
}

// resolveSource replaces -1 source coordinates with the grid center and
// clamps the rest into the grid.
func (cfg *simConfig) resolveSource() {
	if cfg.sourceX < 0 {
		cfg.sourceX = cfg.nx / 2
	}
	if cfg.sourceY < 0 {
		cfg.sourceY = cfg.ny / 2
	}
	if cfg.sourceZ < 0 {
		cfg.sourceZ = cfg.nz / 2
	}
	cfg.sourceX = clampInt(cfg.sourceX, 0, cfg.nx-1)
	cfg.sourceY = clampInt(cfg.sourceY, 0, cfg.ny-1)
	cfg.sourceZ = clampInt(cfg.sourceZ, 0, cfg.nz-1)
}

// clampInt constrains v to lie within the inclusive [min, max] range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
