package main

import (
	"encoding/binary"
	"math"
)

// simParams is the per-step parameter block for the 2D solver. The field
// order and 4-byte scalar widths match the kernel-side struct exactly; the
// block is re-marshalled and re-uploaded before every step because time and
// timestep advance.
type simParams struct {
	nx, ny           int32
	sourceX, sourceY int32
	dx, dt           float32
	time             float32
	sourceFreq       float32
	sourceAmp        float32
	fieldScale       float32
	timestep         int32
	pad              int32
}

// simParams3D is the per-step parameter block for the 3D solver, extended
// with the visualization selectors consumed by the slice extraction kernel.
type simParams3D struct {
	nx, ny, nz                int32
	sourceX, sourceY, sourceZ int32
	dx, dt                    float32
	time                      float32
	sourceFreq                float32
	sourceAmp                 float32
	fieldScale                float32
	timestep                  int32
	renderComponent           int32
	sliceAxis                 int32
	sliceIndex                int32
}

const (
	simParamsSize   = 48
	simParams3DSize = 64
)

// makeSimParams builds the 2D block for the given timestep.
func makeSimParams(cfg *simConfig, timestep int) simParams {
	return simParams{
		nx:         int32(cfg.nx),
		ny:         int32(cfg.ny),
		sourceX:    int32(cfg.sourceX),
		sourceY:    int32(cfg.sourceY),
		dx:         normDX,
		dt:         normDT,
		time:       float32(timestep) * normDT,
		sourceFreq: cfg.sourceFreq,
		sourceAmp:  cfg.sourceAmp,
		fieldScale: cfg.fieldScale,
		timestep:   int32(timestep),
	}
}

// makeSimParams3D builds the 3D block for the given timestep and the active
// visualization selection.
func makeSimParams3D(cfg *simConfig, timestep int, sel *sliceSelection) simParams3D {
	return simParams3D{
		nx:              int32(cfg.nx),
		ny:              int32(cfg.ny),
		nz:              int32(cfg.nz),
		sourceX:         int32(cfg.sourceX),
		sourceY:         int32(cfg.sourceY),
		sourceZ:         int32(cfg.sourceZ),
		dx:              normDX,
		dt:              normDT,
		time:            float32(timestep) * normDT,
		sourceFreq:      cfg.sourceFreq,
		sourceAmp:       cfg.sourceAmp,
		fieldScale:      cfg.fieldScale,
		timestep:        int32(timestep),
		renderComponent: int32(sel.component),
		sliceAxis:       int32(sel.axis),
		sliceIndex:      int32(sel.index),
	}
}

// marshal writes the block into dst (at least simParamsSize bytes) in the
// fixed little-endian layout shared with the device-side struct.
func (p *simParams) marshal(dst []byte) {
	_ = dst[simParamsSize-1]
	putI32(dst[0:], p.nx)
	putI32(dst[4:], p.ny)
	putI32(dst[8:], p.sourceX)
	putI32(dst[12:], p.sourceY)
	putF32(dst[16:], p.dx)
	putF32(dst[20:], p.dt)
	putF32(dst[24:], p.time)
	putF32(dst[28:], p.sourceFreq)
	putF32(dst[32:], p.sourceAmp)
	putF32(dst[36:], p.fieldScale)
	putI32(dst[40:], p.timestep)
	putI32(dst[44:], p.pad)
}

// marshal writes the block into dst (at least simParams3DSize bytes).
func (p *simParams3D) marshal(dst []byte) {
	_ = dst[simParams3DSize-1]
	putI32(dst[0:], p.nx)
	putI32(dst[4:], p.ny)
	putI32(dst[8:], p.nz)
	putI32(dst[12:], p.sourceX)
	putI32(dst[16:], p.sourceY)
	putI32(dst[20:], p.sourceZ)
	putF32(dst[24:], p.dx)
	putF32(dst[28:], p.dt)
	putF32(dst[32:], p.time)
	putF32(dst[36:], p.sourceFreq)
	putF32(dst[40:], p.sourceAmp)
	putF32(dst[44:], p.fieldScale)
	putI32(dst[48:], p.timestep)
	putI32(dst[52:], p.renderComponent)
	putI32(dst[56:], p.sliceAxis)
	putI32(dst[60:], p.sliceIndex)
}

func putI32(dst []byte, v int32) {
	binary.LittleEndian.PutUint32(dst, uint32(v))
}

func putF32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}
