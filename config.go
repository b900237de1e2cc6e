package main

// Simulation and rendering configuration constants. All field arithmetic
// runs in normalized units: c = dx = eps0 = mu0 = 1, so dt is the Courant
// factor directly. dt = 0.5 is stable in 2D (bound 1/sqrt(2)) and in 3D
// (bound 1/sqrt(3) ~ 0.577).
const (
	viewWidth  = 1280
	viewHeight = 720

	defaultNX2D = 512
	defaultNY2D = 512

	defaultNX3D = 128
	defaultNY3D = 128
	defaultNZ3D = 128

	normDX = 1.0
	normDT = 0.5

	// Continuous point source. Frequencies are normalized (cycles per unit
	// time); 0.04 gives a wavelength of ~25 cells in 2D, 0.06 ~17 cells in 3D.
	defaultSourceFreq2D = 0.04
	defaultSourceFreq3D = 0.06
	defaultSourceAmp    = 1.0

	defaultStepsPerFrame2D = 4
	defaultStepsPerFrame3D = 1

	// Display amplification applied when mapping field values to colors.
	defaultFieldScale = 15.0

	// One-way-wave relaxation factor for the absorbing boundary, c*dt/dx.
	boundaryRelax = float32(normDT / normDX)

	twoPi = 6.283185307179586

	// Tile shapes for kernel dispatch. Remainder workers guard-exit, so
	// grid dimensions need not be multiples of the tile size.
	tileSize2D = 16
	tileSize3D = 8

	titleRefreshSeconds = 1.0
)

// Render component selectors, in cycling order.
const (
	componentEx = iota
	componentEy
	componentEz
	componentEMag
	componentHx
	componentHy
	componentHz
	componentCount
)

// Slice axes. XY fixes z, XZ fixes y, YZ fixes x.
const (
	axisXY = iota
	axisXZ
	axisYZ
	axisCount
)

var componentNames = [componentCount]string{"Ex", "Ey", "Ez", "|E|", "Hx", "Hy", "Hz"}

var axisNames = [axisCount]string{"XY", "XZ", "YZ"}
