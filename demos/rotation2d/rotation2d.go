// Package rotation2d spins a bouncing square around its top-left corner.
// Rotation and translation are applied in the vertex shader.
package rotation2d

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "rotation2d"

const (
	side       = 100
	startAngle = 20
	angleStep  = 2
)

//go:embed shaders/rotation2d.wgsl
var shader string

var layout = gfx.MustUniformLayout(
	gfx.UniformField{Name: "resolution", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "translation", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "rotation", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "color", Type: gfx.UniformVec4},
)

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the rotation2d demo.
type Demo struct {
	env      *demo.Env
	prog     *gfx.Program
	uniforms *gfx.Uniforms
	square   *gfx.VertexBuffer
	bounce   *fundamentals.Bounce
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "a bouncing square rotated by a (sin, cos) uniform" }

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
	d.bounce = fundamentals.NewBounce(env.Rand, env.Bounds(), [2]float32{side, side})
	d.bounce.AngleStep = angleStep
	// The angle advances before the first draw.
	d.bounce.Angle = startAngle + angleStep
	d.square, err = env.Device.NewVertexBuffer(Name+"_positions", 2, fundamentals.Rectangle(0, 0, side, side))
	return err
}

// Render implements demo.Demo.
func (d *Demo) Render(f *gfx.Frame, _ loop.Tick) error {
	bounds := d.env.Bounds()
	u := d.uniforms
	for _, set := range []struct {
		name  string
		value any
	}{
		{"resolution", bounds},
		{"translation", d.bounce.Pos},
		{"rotation", fundamentals.AngleToRotation(d.bounce.Angle)},
		{"color", d.bounce.Color},
	} {
		if err := u.Set(0, set.name, set.value); err != nil {
			return err
		}
	}
	err := f.Draw(gfx.DrawCall{
		Program:  d.prog,
		Uniforms: u,
		Buffers:  []*gfx.VertexBuffer{d.square},
		Count:    d.square.Count(),
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
