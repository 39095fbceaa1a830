//go:build windows

package webgpu

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// segmentSumShader computes one output element per invocation by scanning
// every row of x for a matching segment id. Negative ids never match.
//
// x is [n_rows, inner], result is [num_segments, inner].
const segmentSumShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> ids: array<i32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    n_rows: u32,
    inner: u32,
    num_segments: u32,
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
    let seg = i32(idx / params.inner);
    let col = idx % params.inner;
    var acc: f32 = 0.0;
    for (var r: u32 = 0u; r < params.n_rows; r = r + 1u) {
        if (ids[r] == seg) {
            acc = acc + x[r * params.inner + col];
        }
    }
    result[idx] = acc;
}
`

// gatherShader copies whole slices of x along one axis.
//
// x is viewed as [outer, dim, inner], result as [outer, k, inner] with
// result[o, j, c] = x[o, indices[j], c].
const gatherShader = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> indices: array<i32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    dim: u32,
    inner: u32,
    k: u32,
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
    let block = params.k * params.inner;
    let o = idx / block;
    let rem = idx % block;
    let j = rem / params.inner;
    let c = rem % params.inner;
    let src = (o * params.dim + u32(indices[j])) * params.inner + c;
    result[idx] = x[src];
}
`
