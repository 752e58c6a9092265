package gfx

import (
	"testing"
)

const testShader = `
struct Uniforms {
    color: vec4<f32>,
    matrix: mat3x3<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;

@vertex
fn vs_main(@location(0) position: vec2<f32>) -> @builtin(position) vec4<f32> {
    let p = u.matrix * vec3<f32>(position, 1.0);
    return vec4<f32>(p.xy, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return u.color;
}
`

const texturedShader = `
@group(0) @binding(0) var tex: texture_2d<f32>;
@group(0) @binding(1) var samp: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@location(0) position: vec2<f32>, @location(1) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(position, 0.0, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(tex, samp, in.uv);
}
`

var testLayout = MustUniformLayout(
	UniformField{Name: "color", Type: UniformVec4},
	UniformField{Name: "matrix", Type: UniformMat3},
)

// openNoop opens a device on the noop backend and closes it when the test
// ends.
func openNoop(t *testing.T) *Device {
	t.Helper()
	dev, err := Open(OpenOptions{Backend: BackendNoop})
	if err != nil {
		t.Fatalf("Open(noop): %v", err)
	}
	t.Cleanup(dev.Close)
	return dev
}

func newTestProgram(t *testing.T, dev *Device) *Program {
	t.Helper()
	p, err := dev.NewProgram(ProgramDesc{
		Label:      "test",
		Source:     testShader,
		Attributes: []Attribute{{Name: "position", Components: 2}},
		Uniforms:   testLayout,
	})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	t.Cleanup(p.Release)
	return p
}
