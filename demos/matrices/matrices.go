// Package matrices draws the bouncing, spinning letter F with a single 3x3
// matrix built on the CPU.
package matrices

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "matrices"

const (
	startAngle = 20
	angleStep  = 2

	// origin moves the F so it rotates about its center.
	originX = -50
	originY = -75
)

var box = [2]float32{100, 100}

//go:embed shaders/matrices.wgsl
var shader string

var layout = gfx.MustUniformLayout(
	gfx.UniformField{Name: "matrix", Type: gfx.UniformMat3},
	gfx.UniformField{Name: "color", Type: gfx.UniformVec4},
)

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the matrices demo.
type Demo struct {
	env      *demo.Env
	prog     *gfx.Program
	uniforms *gfx.Uniforms
	shape    *gfx.VertexBuffer
	state    *fundamentals.Bounce
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "the letter F placed by projection, translation, rotation and scale matrices" }

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
	d.state = fundamentals.NewBounce(env.Rand, env.Bounds(), box)
	d.state.Angle = startAngle
	d.state.AngleStep = angleStep
	d.shape, err = env.Device.NewVertexBuffer(Name+"_positions", 2, fundamentals.LetterF(0, 0))
	return err
}

// Matrix returns the transform for the given state on a target of the
// given size.
func Matrix(s *fundamentals.Bounce, bounds [2]float32) fundamentals.Mat3 {
	return fundamentals.Projection(bounds[0], bounds[1]).
		Translate(s.Pos[0], s.Pos[1]).
		Rotate(fundamentals.DegToRad(s.Angle)).
		Scale(s.Scale[0], s.Scale[1]).
		Translate(originX, originY)
}

// Render implements demo.Demo.
func (d *Demo) Render(f *gfx.Frame, _ loop.Tick) error {
	bounds := d.env.Bounds()
	if err := d.uniforms.Set(0, "matrix", Matrix(d.state, bounds)); err != nil {
		return err
	}
	if err := d.uniforms.Set(0, "color", d.state.Color); err != nil {
		return err
	}
	err := f.Draw(gfx.DrawCall{
		Program:  d.prog,
		Uniforms: d.uniforms,
		Buffers:  []*gfx.VertexBuffer{d.shape},
		Count:    fundamentals.LetterFVertices,
	})
	if err != nil {
		return err
	}
	d.state.Step(bounds, d.env.Rand)
	return nil
}

// Release implements demo.Demo.
func (d *Demo) Release() {
	if d.shape != nil {
		d.shape.Release()
	}
	if d.uniforms != nil {
		d.uniforms.Release()
	}
	if d.prog != nil {
		d.prog.Release()
	}
}
