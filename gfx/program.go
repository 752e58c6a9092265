package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fundamentals/internal/cache"
)

// Formats of the attachments every pipeline renders to.
const (
	ColorFormat = gputypes.TextureFormatRGBA8Unorm
	DepthFormat = gputypes.TextureFormatDepth24Plus
)

// Default shader entry points.
const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// Attribute is one per-vertex input. Each attribute is fed from its own
// vertex buffer; the shader location is the attribute's index.
type Attribute struct {
	Name       string
	Components int
}

// ProgramDesc describes a Program.
type ProgramDesc struct {
	// Label names the program in logs and errors.
	Label string

	// Source is the WGSL source containing both entry points.
	Source string

	// VertexEntry and FragmentEntry default to vs_main and fs_main.
	VertexEntry   string
	FragmentEntry string

	// Attributes lists the vertex inputs in location order.
	Attributes []Attribute

	// Uniforms is the layout of the uniform block at group 0, binding 0.
	// Nil means the program reads no uniforms.
	Uniforms *UniformLayout

	// Textured adds a texture and a filtering sampler in the next group.
	Textured bool

	// DepthTest enables depth testing with depth writes. Without it the
	// depth attachment is ignored.
	DepthTest bool

	// CullBack discards back faces (counter-clockwise front).
	CullBack bool

	// Blend enables straight alpha blending.
	Blend bool
}

// Program is a compiled vertex and fragment shader pair with its render
// pipeline.
type Program struct {
	dev      *Device
	label    string
	attrs    []Attribute
	uniforms *UniformLayout
	textured bool

	module         hal.ShaderModule
	uniformBGL     hal.BindGroupLayout
	textureBGL     hal.BindGroupLayout
	textureGroup   uint32
	pipelineLayout hal.PipelineLayout
	pipeline       hal.RenderPipeline
}

// NewProgram validates the WGSL source and builds the render pipeline.
// A compile or link failure is logged and returned wrapped in
// ErrShaderCompile.
func (d *Device) NewProgram(desc ProgramDesc) (*Program, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	p, err := d.buildProgram(desc)
	if err != nil {
		d.stats.shaderErrors.Add(1)
		logger().Warn("gfx: program build failed", "label", desc.Label, "err", err)
		return nil, err
	}
	d.stats.shaderCompiles.Add(1)
	logger().Debug("gfx: program created", "label", desc.Label, "attributes", len(desc.Attributes))
	return p, nil
}

func (d *Device) buildProgram(desc ProgramDesc) (*Program, error) {
	vsEntry := desc.VertexEntry
	if vsEntry == "" {
		vsEntry = DefaultVertexEntry
	}
	fsEntry := desc.FragmentEntry
	if fsEntry == "" {
		fsEntry = DefaultFragmentEntry
	}
	if err := validateCached(desc.Source, vsEntry, fsEntry); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, desc.Label, err)
	}

	buffers := make([]gputypes.VertexBufferLayout, len(desc.Attributes))
	for i, a := range desc.Attributes {
		format, err := vertexFormat(a.Components)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", desc.Label, a.Name, err)
		}
		buffers[i] = gputypes.VertexBufferLayout{
			ArrayStride: uint64(a.Components * 4),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: format, Offset: 0, ShaderLocation: uint32(i)},
			},
		}
	}

	p := &Program{
		dev:      d,
		label:    desc.Label,
		attrs:    append([]Attribute(nil), desc.Attributes...),
		uniforms: desc.Uniforms,
		textured: desc.Textured,
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{WGSL: desc.Source},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: create shader module: %w", ErrShaderCompile, desc.Label, err)
	}
	p.module = module

	var groups []hal.BindGroupLayout
	if desc.Uniforms != nil && desc.Uniforms.Size() > 0 {
		p.uniformBGL, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: desc.Label + "_uniform_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
				},
			},
		})
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("gfx: %s: create uniform layout: %w", desc.Label, err)
		}
		groups = append(groups, p.uniformBGL)
	} else {
		p.uniforms = nil
	}
	if desc.Textured {
		p.textureBGL, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: desc.Label + "_texture_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageFragment,
					Texture: &gputypes.TextureBindingLayout{
						SampleType:    gputypes.TextureSampleTypeFloat,
						ViewDimension: gputypes.TextureViewDimension2D,
					},
				},
				{
					Binding:    1,
					Visibility: gputypes.ShaderStageFragment,
					Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
				},
			},
		})
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("gfx: %s: create texture layout: %w", desc.Label, err)
		}
		p.textureGroup = uint32(len(groups))
		groups = append(groups, p.textureBGL)
	}

	p.pipelineLayout, err = d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipeline_layout",
		BindGroupLayouts: groups,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("gfx: %s: create pipeline layout: %w", desc.Label, err)
	}

	target := gputypes.ColorTargetState{
		Format:    ColorFormat,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
	if desc.Blend {
		blend := gputypes.BlendStateAlpha()
		target.Blend = &blend
	}

	cull := gputypes.CullModeNone
	if desc.CullBack {
		cull = gputypes.CullModeBack
	}

	p.pipeline, err = d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.pipelineLayout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: vsEntry,
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: fsEntry,
			Targets:    []gputypes.ColorTargetState{target},
		},
		DepthStencil: depthState(desc.DepthTest),
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  cull,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%w: %s: link pipeline: %w", ErrShaderCompile, desc.Label, err)
	}
	return p, nil
}

func depthState(test bool) *hal.DepthStencilState {
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	s := &hal.DepthStencilState{
		Format:       DepthFormat,
		DepthCompare: gputypes.CompareFunctionAlways,
		StencilFront: keep,
		StencilBack:  keep,
	}
	if test {
		s.DepthWriteEnabled = true
		s.DepthCompare = gputypes.CompareFunctionLess
	}
	return s
}

// shaderKey identifies one validation of a source with its entry points.
type shaderKey struct {
	source, vsEntry, fsEntry string
}

// validated remembers validation results. Front-end errors are
// deterministic, so failures are cached too.
var validated = cache.New[shaderKey, error](64)

func validateCached(src, vsEntry, fsEntry string) error {
	key := shaderKey{src, vsEntry, fsEntry}
	if err, ok := validated.Get(key); ok {
		return err
	}
	err := validateWGSL(src, vsEntry, fsEntry)
	validated.Put(key, err)
	return err
}

// validateWGSL parses and lowers src and checks that both entry points
// exist with the right stages.
func validateWGSL(src, vsEntry, fsEntry string) error {
	ast, err := naga.Parse(src)
	if err != nil {
		return err
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return err
	}
	var haveVS, haveFS bool
	for _, ep := range module.EntryPoints {
		switch {
		case ep.Name == vsEntry && ep.Stage == ir.StageVertex:
			haveVS = true
		case ep.Name == fsEntry && ep.Stage == ir.StageFragment:
			haveFS = true
		}
	}
	if !haveVS {
		return fmt.Errorf("missing @vertex entry point %q", vsEntry)
	}
	if !haveFS {
		return fmt.Errorf("missing @fragment entry point %q", fsEntry)
	}
	return nil
}

// Label returns the program label.
func (p *Program) Label() string { return p.label }

// Attributes returns the vertex inputs in location order.
func (p *Program) Attributes() []Attribute {
	return append([]Attribute(nil), p.attrs...)
}

// UniformLayout returns the uniform block layout, or nil.
func (p *Program) UniformLayout() *UniformLayout { return p.uniforms }

// Textured reports whether the program samples a texture.
func (p *Program) Textured() bool { return p.textured }

// Release destroys the pipeline and its layouts in reverse creation order.
func (p *Program) Release() {
	d := p.dev.device
	if p.pipeline != nil {
		d.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipelineLayout != nil {
		d.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	if p.textureBGL != nil {
		d.DestroyBindGroupLayout(p.textureBGL)
		p.textureBGL = nil
	}
	if p.uniformBGL != nil {
		d.DestroyBindGroupLayout(p.uniformBGL)
		p.uniformBGL = nil
	}
	if p.module != nil {
		d.DestroyShaderModule(p.module)
		p.module = nil
	}
}
