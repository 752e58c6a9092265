// Package translation moves a 100x100 square across the target, bouncing
// off the edges. The square's vertices are rewritten every frame.
package translation

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "translation"

// Side is the square size in pixels.
const Side = 100

//go:embed shaders/translation.wgsl
var shader string

var layout = gfx.MustUniformLayout(
	gfx.UniformField{Name: "resolution", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "color", Type: gfx.UniformVec4},
)

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the translation demo.
type Demo struct {
	env      *demo.Env
	prog     *gfx.Program
	uniforms *gfx.Uniforms
	square   *gfx.VertexBuffer
	bounce   *fundamentals.Bounce
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "a bouncing square, moved by rewriting its vertices" }

// Init implements demo.Demo.
func (d *Demo) Init(env *demo.Env) error {
	d.env = env
	src, err := env.Shader(shader)
	if err != nil {
		return err
	}
	d.prog, err = env.Device.NewProgram(gfx.ProgramDesc{
		Label:      Name,
		Source:     src,
		Attributes: []gfx.Attribute{{Name: "position", Components: 2}},
		Uniforms:   layout,
	})
	if err != nil {
		return err
	}
	if d.uniforms, err = env.Device.NewUniforms(d.prog, 1); err != nil {
		return err
	}
	d.bounce = fundamentals.NewBounce(env.Rand, env.Bounds(), [2]float32{Side, Side})
	d.square, err = env.Device.NewVertexBuffer(Name+"_positions", 2, d.vertices())
	return err
}

func (d *Demo) vertices() []float32 {
	return fundamentals.Rectangle(d.bounce.Pos[0], d.bounce.Pos[1], Side, Side)
}

// Render implements demo.Demo.
func (d *Demo) Render(f *gfx.Frame, _ loop.Tick) error {
	bounds := d.env.Bounds()
	if err := d.uniforms.Set(0, "resolution", bounds); err != nil {
		return err
	}
	if err := d.uniforms.Set(0, "color", d.bounce.Color); err != nil {
		return err
	}
	if err := d.square.Update(d.vertices()); err != nil {
		return err
	}
	err := f.Draw(gfx.DrawCall{
		Program:  d.prog,
		Uniforms: d.uniforms,
		Buffers:  []*gfx.VertexBuffer{d.square},
		Count:    fundamentals.RectangleVertices,
	})
	if err != nil {
		return err
	}
	d.bounce.Step(bounds, d.env.Rand)
	return nil
}

// Release implements demo.Demo.
func (d *Demo) Release() {
	if d.square != nil {
		d.square.Release()
	}
	if d.uniforms != nil {
		d.uniforms.Release()
	}
	if d.prog != nil {
		d.prog.Release()
	}
}
