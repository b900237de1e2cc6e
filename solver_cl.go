package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// clRuntime bundles the OpenCL device, context, in-order command queue, and
// built program. The queue is created without the out-of-order property, so
// kernels execute in enqueue order; that ordering is the inter-phase barrier
// the two-phase update relies on.
type clRuntime struct {
	device  *cl.Device
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
}

func newCLRuntime(source string) (*clRuntime, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	var device *cl.Device
	for _, p := range platforms {
		devices, derr := p.GetDevices(cl.DeviceTypeGPU)
		if derr != nil && derr != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			device = devices[0]
			break
		}
	}
	if device == nil {
		for _, p := range platforms {
			devices, derr := p.GetDevices(cl.DeviceTypeCPU)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{source})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	return &clRuntime{device: device, context: context, queue: queue, program: program}, nil
}

func (r *clRuntime) release() {
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.context != nil {
		r.context.Release()
		r.context = nil
	}
}

// bufferTable maps field component names to device buffers with an explicit
// create/release lifecycle; a component's buffer is looked up by name, never
// by implicit binding-slot reuse.
type bufferTable struct {
	names []string
	bufs  map[string]*cl.MemObject
}

// newBufferTable allocates and zero-fills one device buffer per component.
// Creation is all-or-none: any failure releases what was already allocated.
func newBufferTable(r *clRuntime, names []string, cells int) (*bufferTable, error) {
	t := &bufferTable{names: names, bufs: make(map[string]*cl.MemObject, len(names))}
	zeros := make([]float32, cells)
	byteSize := cells * int(unsafe.Sizeof(float32(0)))
	for _, name := range names {
		buf, err := r.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
		if err != nil {
			t.release()
			return nil, fmt.Errorf("allocating %s buffer: %w", name, err)
		}
		t.bufs[name] = buf
		if _, err := r.queue.EnqueueWriteBufferFloat32(buf, true, 0, zeros, nil); err != nil {
			t.release()
			return nil, fmt.Errorf("zeroing %s buffer: %w", name, err)
		}
	}
	return t, nil
}

func (t *bufferTable) get(name string) *cl.MemObject {
	return t.bufs[name]
}

func (t *bufferTable) release() {
	for name, buf := range t.bufs {
		buf.Release()
		delete(t.bufs, name)
	}
}

// openCLFieldSolver dispatches the 2D update passes as 16x16-tiled kernels.
type openCLFieldSolver struct {
	rt     *clRuntime
	fields *bufferTable

	paramsBuf  *cl.MemObject
	updateH    *cl.Kernel
	updateE    *cl.Kernel
	absorbRows *cl.Kernel
	absorbCols *cl.Kernel

	nx, ny  int
	global  []int
	local   []int
	scratch [simParamsSize]byte
}

func newOpenCLFieldSolver(cfg *simConfig) (*openCLFieldSolver, error) {
	rt, err := newCLRuntime(kernelSource2D)
	if err != nil {
		return nil, err
	}
	s := &openCLFieldSolver{
		rt: rt,
		nx: cfg.nx, ny: cfg.ny,
		global: []int{roundUpTile(cfg.nx, tileSize2D), roundUpTile(cfg.ny, tileSize2D)},
		local:  []int{tileSize2D, tileSize2D},
	}
	s.fields, err = newBufferTable(rt, componentNames2D, cfg.nx*cfg.ny)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.paramsBuf, err = rt.context.CreateEmptyBuffer(cl.MemReadOnly, simParamsSize)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("allocating parameter buffer: %w", err)
	}
	for _, k := range []struct {
		name string
		dst  **cl.Kernel
	}{
		{"update_h", &s.updateH},
		{"update_e", &s.updateE},
		{"absorb_rows", &s.absorbRows},
		{"absorb_cols", &s.absorbCols},
	} {
		kernel, kerr := rt.program.CreateKernel(k.name)
		if kerr != nil {
			s.Close()
			return nil, fmt.Errorf("creating %s kernel: %w", k.name, kerr)
		}
		*k.dst = kernel
	}
	ez := s.fields.get("Ez")
	hx := s.fields.get("Hx")
	hy := s.fields.get("Hy")
	if err := s.updateH.SetArgs(s.paramsBuf, ez, hx, hy); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting H kernel arguments: %w", err)
	}
	if err := s.updateE.SetArgs(s.paramsBuf, ez, hx, hy); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting E kernel arguments: %w", err)
	}
	if err := s.absorbRows.SetArgs(s.paramsBuf, ez); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting boundary row kernel arguments: %w", err)
	}
	if err := s.absorbCols.SetArgs(s.paramsBuf, ez); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting boundary column kernel arguments: %w", err)
	}
	return s, nil
}

func (s *openCLFieldSolver) Step(p *simParams) error {
	p.marshal(s.scratch[:])
	if _, err := s.rt.queue.EnqueueWriteBuffer(s.paramsBuf, true, 0, simParamsSize, unsafe.Pointer(&s.scratch[0]), nil); err != nil {
		return fmt.Errorf("uploading parameter block: %w", err)
	}
	// Phase H, then Phase E, then the boundary passes; the in-order queue
	// makes each enqueue wait for the previous pass's writes.
	if _, err := s.rt.queue.EnqueueNDRangeKernel(s.updateH, nil, s.global, s.local, nil); err != nil {
		return fmt.Errorf("enqueueing H update: %w", err)
	}
	if _, err := s.rt.queue.EnqueueNDRangeKernel(s.updateE, nil, s.global, s.local, nil); err != nil {
		return fmt.Errorf("enqueueing E update: %w", err)
	}
	if _, err := s.rt.queue.EnqueueNDRangeKernel(s.absorbRows, nil, []int{roundUpTile(s.nx, tileSize2D)}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing boundary rows: %w", err)
	}
	if s.ny > 2 {
		if _, err := s.rt.queue.EnqueueNDRangeKernel(s.absorbCols, nil, []int{roundUpTile(s.ny-2, tileSize2D)}, nil, nil); err != nil {
			return fmt.Errorf("enqueueing boundary columns: %w", err)
		}
	}
	return nil
}

func (s *openCLFieldSolver) ReadEz(dst []float32) error {
	// Blocking read; doubles as the end-of-frame visibility barrier before
	// the renderer consumes the field.
	if _, err := s.rt.queue.EnqueueReadBufferFloat32(s.fields.get("Ez"), true, 0, dst, nil); err != nil {
		return fmt.Errorf("reading Ez buffer: %w", err)
	}
	return nil
}

func (s *openCLFieldSolver) Close() {
	for _, k := range []**cl.Kernel{&s.updateH, &s.updateE, &s.absorbRows, &s.absorbCols} {
		if *k != nil {
			(*k).Release()
			*k = nil
		}
	}
	if s.paramsBuf != nil {
		s.paramsBuf.Release()
		s.paramsBuf = nil
	}
	if s.fields != nil {
		s.fields.release()
		s.fields = nil
	}
	if s.rt != nil {
		s.rt.release()
		s.rt = nil
	}
}

func (s *openCLFieldSolver) BackendName() string {
	return "OpenCL (" + s.rt.device.Name() + ")"
}

// openCLVolumeSolver dispatches the 3D update passes as 8x8x8-tiled kernels
// and extracts display slices on the device so only one plane crosses back
// to the host per frame.
type openCLVolumeSolver struct {
	rt     *clRuntime
	fields *bufferTable

	paramsBuf *cl.MemObject
	sliceBuf  *cl.MemObject
	updateH   *cl.Kernel
	updateE   *cl.Kernel
	absorb    *cl.Kernel
	extract   *cl.Kernel

	nx, ny, nz int
	global     []int
	local      []int
	scratch    [simParams3DSize]byte
}

func newOpenCLVolumeSolver(cfg *simConfig) (*openCLVolumeSolver, error) {
	rt, err := newCLRuntime(kernelSource3D)
	if err != nil {
		return nil, err
	}
	s := &openCLVolumeSolver{
		rt: rt,
		nx: cfg.nx, ny: cfg.ny, nz: cfg.nz,
		global: []int{
			roundUpTile(cfg.nx, tileSize3D),
			roundUpTile(cfg.ny, tileSize3D),
			roundUpTile(cfg.nz, tileSize3D),
		},
		local: []int{tileSize3D, tileSize3D, tileSize3D},
	}
	s.fields, err = newBufferTable(rt, componentNames3D, cfg.nx*cfg.ny*cfg.nz)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.paramsBuf, err = rt.context.CreateEmptyBuffer(cl.MemReadOnly, simParams3DSize)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("allocating parameter buffer: %w", err)
	}
	sliceCells := maxSliceCells(cfg.nx, cfg.ny, cfg.nz)
	s.sliceBuf, err = rt.context.CreateEmptyBuffer(cl.MemWriteOnly, sliceCells*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("allocating slice buffer: %w", err)
	}
	for _, k := range []struct {
		name string
		dst  **cl.Kernel
	}{
		{"update_h3d", &s.updateH},
		{"update_e3d", &s.updateE},
		{"absorb3d", &s.absorb},
		{"extract_slice", &s.extract},
	} {
		kernel, kerr := rt.program.CreateKernel(k.name)
		if kerr != nil {
			s.Close()
			return nil, fmt.Errorf("creating %s kernel: %w", k.name, kerr)
		}
		*k.dst = kernel
	}
	ex := s.fields.get("Ex")
	ey := s.fields.get("Ey")
	ez := s.fields.get("Ez")
	hx := s.fields.get("Hx")
	hy := s.fields.get("Hy")
	hz := s.fields.get("Hz")
	if err := s.updateH.SetArgs(s.paramsBuf, ex, ey, ez, hx, hy, hz); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting H kernel arguments: %w", err)
	}
	if err := s.updateE.SetArgs(s.paramsBuf, ex, ey, ez, hx, hy, hz); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting E kernel arguments: %w", err)
	}
	if err := s.absorb.SetArgs(s.paramsBuf, ex, ey, ez); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting boundary kernel arguments: %w", err)
	}
	if err := s.extract.SetArgs(s.paramsBuf, ex, ey, ez, hx, hy, hz, s.sliceBuf); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting slice kernel arguments: %w", err)
	}
	return s, nil
}

func (s *openCLVolumeSolver) uploadParams(p *simParams3D) error {
	p.marshal(s.scratch[:])
	if _, err := s.rt.queue.EnqueueWriteBuffer(s.paramsBuf, true, 0, simParams3DSize, unsafe.Pointer(&s.scratch[0]), nil); err != nil {
		return fmt.Errorf("uploading parameter block: %w", err)
	}
	return nil
}

func (s *openCLVolumeSolver) Step(p *simParams3D) error {
	if err := s.uploadParams(p); err != nil {
		return err
	}
	if _, err := s.rt.queue.EnqueueNDRangeKernel(s.updateH, nil, s.global, s.local, nil); err != nil {
		return fmt.Errorf("enqueueing H update: %w", err)
	}
	if _, err := s.rt.queue.EnqueueNDRangeKernel(s.updateE, nil, s.global, s.local, nil); err != nil {
		return fmt.Errorf("enqueueing E update: %w", err)
	}
	if _, err := s.rt.queue.EnqueueNDRangeKernel(s.absorb, nil, s.global, s.local, nil); err != nil {
		return fmt.Errorf("enqueueing boundary pass: %w", err)
	}
	return nil
}

func (s *openCLVolumeSolver) ReadSlice(p *simParams3D, dst []float32) error {
	// Selectors may have changed since the last Step; re-upload so the
	// extraction sees the current component/axis/index.
	if err := s.uploadParams(p); err != nil {
		return err
	}
	w, h := sliceDimsFor(p)
	global := []int{roundUpTile(w, tileSize2D), roundUpTile(h, tileSize2D)}
	if _, err := s.rt.queue.EnqueueNDRangeKernel(s.extract, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing slice extraction: %w", err)
	}
	if _, err := s.rt.queue.EnqueueReadBufferFloat32(s.sliceBuf, true, 0, dst[:w*h], nil); err != nil {
		return fmt.Errorf("reading slice buffer: %w", err)
	}
	return nil
}

func (s *openCLVolumeSolver) Close() {
	for _, k := range []**cl.Kernel{&s.updateH, &s.updateE, &s.absorb, &s.extract} {
		if *k != nil {
			(*k).Release()
			*k = nil
		}
	}
	if s.sliceBuf != nil {
		s.sliceBuf.Release()
		s.sliceBuf = nil
	}
	if s.paramsBuf != nil {
		s.paramsBuf.Release()
		s.paramsBuf = nil
	}
	if s.fields != nil {
		s.fields.release()
		s.fields = nil
	}
	if s.rt != nil {
		s.rt.release()
		s.rt = nil
	}
}

func (s *openCLVolumeSolver) BackendName() string {
	return "OpenCL (" + s.rt.device.Name() + ")"
}

// sliceDimsFor reports the slice width and height selected by the block.
func sliceDimsFor(p *simParams3D) (int, int) {
	switch int(p.sliceAxis) {
	case axisXY:
		return int(p.nx), int(p.ny)
	case axisXZ:
		return int(p.nx), int(p.nz)
	default:
		return int(p.ny), int(p.nz)
	}
}

func maxSliceCells(nx, ny, nz int) int {
	cells := nx * ny
	if nx*nz > cells {
		cells = nx * nz
	}
	if ny*nz > cells {
		cells = ny * nz
	}
	return cells
}
