package main

// OpenCL C sources for the FDTD update passes. The SimParams structs mirror
// the Go-side marshalled layouts byte for byte (4-byte scalars, no implicit
// padding). Kernels are dispatched on an in-order command queue, so enqueue
// order is the visibility barrier between the H and E phases.

const kernelSource2D = `
typedef struct {
    int   nx;
    int   ny;
    int   source_x;
    int   source_y;
    float dx;
    float dt;
    float time;
    float source_freq;
    float source_amp;
    float field_scale;
    int   timestep;
    int   pad;
} SimParams;

/* Phase H: magnetic field from the forward-difference curl of Ez. */
__kernel void update_h(
    __constant SimParams* p,
    __global const float* ez,
    __global float* hx,
    __global float* hy)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= p->nx || y >= p->ny) {
        return;
    }
    int i = y * p->nx + x;
    float cf = p->dt / p->dx;
    if (y < p->ny - 1) {
        hx[i] -= cf * (ez[i + p->nx] - ez[i]);
    }
    if (x < p->nx - 1) {
        hy[i] += cf * (ez[i + 1] - ez[i]);
    }
}

/* Phase E: Ez from the backward-difference curl of the fresh H, plus the
   continuous point source at the source cell. Interior cells only; the
   outer shell is handled by the absorb kernels. */
__kernel void update_e(
    __constant SimParams* p,
    __global float* ez,
    __global const float* hx,
    __global const float* hy)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x < 1 || x >= p->nx - 1 || y < 1 || y >= p->ny - 1) {
        return;
    }
    int i = y * p->nx + x;
    float cf = p->dt / p->dx;
    ez[i] += cf * ((hy[i] - hy[i - 1]) - (hx[i] - hx[i - p->nx]));
    if (x == p->source_x && y == p->source_y) {
        ez[i] += p->source_amp * sin(6.2831853f * p->source_freq * p->time);
    }
}

/* First-order one-way-wave absorber: each edge cell relaxes toward its
   interior neighbor's fresh value by c*dt/dx. Runs after update_e so the
   neighbor values are settled. */
__kernel void absorb_rows(__constant SimParams* p, __global float* ez)
{
    int x = get_global_id(0);
    if (x >= p->nx) {
        return;
    }
    float k = p->dt / p->dx;
    int last = (p->ny - 1) * p->nx;
    ez[x] += k * (ez[x + p->nx] - ez[x]);
    ez[last + x] += k * (ez[last - p->nx + x] - ez[last + x]);
}

__kernel void absorb_cols(__constant SimParams* p, __global float* ez)
{
    int y = get_global_id(0) + 1;
    if (y >= p->ny - 1) {
        return;
    }
    int base = y * p->nx;
    int right = base + p->nx - 1;
    float k = p->dt / p->dx;
    ez[base] += k * (ez[base + 1] - ez[base]);
    ez[right] += k * (ez[right - 1] - ez[right]);
}`

const kernelSource3D = `
typedef struct {
    int   nx;
    int   ny;
    int   nz;
    int   source_x;
    int   source_y;
    int   source_z;
    float dx;
    float dt;
    float time;
    float source_freq;
    float source_amp;
    float field_scale;
    int   timestep;
    int   render_component;
    int   slice_axis;
    int   slice_index;
} SimParams3D;

/* Phase H: forward-difference curls of E, one guard per component. */
__kernel void update_h3d(
    __constant SimParams3D* p,
    __global const float* ex,
    __global const float* ey,
    __global const float* ez,
    __global float* hx,
    __global float* hy,
    __global float* hz)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    int z = get_global_id(2);
    if (x >= p->nx || y >= p->ny || z >= p->nz) {
        return;
    }
    int plane = p->nx * p->ny;
    int i = z * plane + y * p->nx + x;
    float cf = p->dt / p->dx;
    int x_ok = x < p->nx - 1;
    int y_ok = y < p->ny - 1;
    int z_ok = z < p->nz - 1;
    if (y_ok && z_ok) {
        hx[i] -= cf * ((ez[i + p->nx] - ez[i]) - (ey[i + plane] - ey[i]));
    }
    if (z_ok && x_ok) {
        hy[i] -= cf * ((ex[i + plane] - ex[i]) - (ez[i + 1] - ez[i]));
    }
    if (x_ok && y_ok) {
        hz[i] -= cf * ((ey[i + 1] - ey[i]) - (ex[i + p->nx] - ex[i]));
    }
}

/* Phase E: backward-difference curls of the fresh H, interior cells only,
   plus the point source on Ez. */
__kernel void update_e3d(
    __constant SimParams3D* p,
    __global float* ex,
    __global float* ey,
    __global float* ez,
    __global const float* hx,
    __global const float* hy,
    __global const float* hz)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    int z = get_global_id(2);
    if (x < 1 || x >= p->nx - 1 ||
        y < 1 || y >= p->ny - 1 ||
        z < 1 || z >= p->nz - 1) {
        return;
    }
    int plane = p->nx * p->ny;
    int i = z * plane + y * p->nx + x;
    float cf = p->dt / p->dx;
    ex[i] += cf * ((hz[i] - hz[i - p->nx]) - (hy[i] - hy[i - plane]));
    ey[i] += cf * ((hx[i] - hx[i - plane]) - (hz[i] - hz[i - 1]));
    ez[i] += cf * ((hy[i] - hy[i - 1]) - (hx[i] - hx[i - p->nx]));
    if (x == p->source_x && y == p->source_y && z == p->source_z) {
        ez[i] += p->source_amp * sin(6.2831853f * p->source_freq * p->time);
    }
}

/* Outer-shell absorber: relax each shell E cell toward its nearest interior
   neighbor. Only shell cells write, so the pass is race-free. */
__kernel void absorb3d(
    __constant SimParams3D* p,
    __global float* ex,
    __global float* ey,
    __global float* ez)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    int z = get_global_id(2);
    if (x >= p->nx || y >= p->ny || z >= p->nz) {
        return;
    }
    if (x > 0 && x < p->nx - 1 &&
        y > 0 && y < p->ny - 1 &&
        z > 0 && z < p->nz - 1) {
        return;
    }
    int plane = p->nx * p->ny;
    int i = z * plane + y * p->nx + x;
    int j = clamp(z, 1, p->nz - 2) * plane
          + clamp(y, 1, p->ny - 2) * p->nx
          + clamp(x, 1, p->nx - 2);
    float k = p->dt / p->dx;
    ex[i] += k * (ex[j] - ex[i]);
    ey[i] += k * (ey[j] - ey[i]);
    ez[i] += k * (ez[j] - ez[i]);
}

/* Writes the selected component of the selected axis/index slice into the
   compact output buffer read back for display. Read-only on the fields. */
__kernel void extract_slice(
    __constant SimParams3D* p,
    __global const float* ex,
    __global const float* ey,
    __global const float* ez,
    __global const float* hx,
    __global const float* hy,
    __global const float* hz,
    __global float* out)
{
    int u = get_global_id(0);
    int v = get_global_id(1);
    int w, h;
    if (p->slice_axis == 0) {
        w = p->nx; h = p->ny;
    } else if (p->slice_axis == 1) {
        w = p->nx; h = p->nz;
    } else {
        w = p->ny; h = p->nz;
    }
    if (u >= w || v >= h) {
        return;
    }
    int x, y, z;
    if (p->slice_axis == 0) {
        x = u; y = v; z = p->slice_index;
    } else if (p->slice_axis == 1) {
        x = u; y = p->slice_index; z = v;
    } else {
        x = p->slice_index; y = u; z = v;
    }
    int i = z * p->nx * p->ny + y * p->nx + x;
    float val;
    switch (p->render_component) {
    case 0: val = ex[i]; break;
    case 1: val = ey[i]; break;
    case 2: val = ez[i]; break;
    case 3: val = sqrt(ex[i] * ex[i] + ey[i] * ey[i] + ez[i] * ez[i]); break;
    case 4: val = hx[i]; break;
    case 5: val = hy[i]; break;
    default: val = hz[i]; break;
    }
    out[v * w + u] = val;
}`
