// Package rotation scales, spins and bounces a letter F centered on its
// own origin.
package rotation

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "rotation"

const (
	startAngle = 20
	angleStep  = 2
)

// box is the collision size used for bouncing.
var box = [2]float32{100, 100}

//go:embed shaders/rotation.wgsl
var shader string

var layout = gfx.MustUniformLayout(
	gfx.UniformField{Name: "resolution", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "translation", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "rotation", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "scale", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "color", Type: gfx.UniformVec4},
)

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the rotation demo.
type Demo struct {
	env      *demo.Env
	prog     *gfx.Program
	uniforms *gfx.Uniforms
	shape    *gfx.VertexBuffer
	state    *fundamentals.Bounce
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "a scaled letter F spinning about its center" }

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
	d.state.Scale = [2]float32{1, 0.75}
	d.shape, err = env.Device.NewVertexBuffer(Name+"_positions", 2, fundamentals.CenteredLetterF())
	return err
}

// Render implements demo.Demo.
func (d *Demo) Render(f *gfx.Frame, _ loop.Tick) error {
	bounds := d.env.Bounds()
	s := d.state
	u := d.uniforms
	if err := u.Set(0, "resolution", bounds); err != nil {
		return err
	}
	if err := u.Set(0, "translation", s.Pos); err != nil {
		return err
	}
	if err := u.Set(0, "rotation", fundamentals.AngleToRotation(s.Angle)); err != nil {
		return err
	}
	if err := u.Set(0, "scale", s.Scale); err != nil {
		return err
	}
	if err := u.Set(0, "color", s.Color); err != nil {
		return err
	}
	err := f.Draw(gfx.DrawCall{
		Program:  d.prog,
		Uniforms: u,
		Buffers:  []*gfx.VertexBuffer{d.shape},
		Count:    fundamentals.LetterFVertices,
	})
	if err != nil {
		return err
	}
	s.Step(bounds, d.env.Rand)
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
