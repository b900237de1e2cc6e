package main

import "flag"

// Command-line flags controlling the simulation mode and runtime behavior.
var (
	// modeFlag selects the 2D TMz solver or the full 3D vector solver.
	modeFlag = flag.String("mode", "2d", "simulation mode: 2d or 3d")

	// cpuFlag forces the CPU worker-pool solver instead of OpenCL.
	cpuFlag = flag.Bool("cpu", false, "run the solver on the CPU instead of OpenCL")

	// configFlag points at an optional TOML file overriding grid and source settings.
	configFlag = flag.String("config", "", "path to a TOML configuration file")

	// debugFlag enables the FPS and step-rate overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")

	// fieldScaleFlag adjusts the display amplification of field values.
	fieldScaleFlag = flag.Float64("field-scale", defaultFieldScale, "visual amplification of field values")
)
