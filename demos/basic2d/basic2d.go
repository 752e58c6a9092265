// Package basic2d draws a single constant-color triangle once.
package basic2d

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "basic2d"

//go:embed shaders/basic2d.wgsl
var shader string

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the basic2d demo.
type Demo struct {
	prog      *gfx.Program
	positions *gfx.VertexBuffer
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "one triangle in clip space, drawn once" }

// Init implements demo.Demo.
func (d *Demo) Init(env *demo.Env) error {
	src, err := env.Shader(shader)
	if err != nil {
		return err
	}
	d.prog, err = env.Device.NewProgram(gfx.ProgramDesc{
		Label:      Name,
		Source:     src,
		Attributes: []gfx.Attribute{{Name: "position", Components: 2}},
	})
	if err != nil {
		return err
	}
	d.positions, err = env.Device.NewVertexBuffer(Name+"_positions", 2, fundamentals.BasicTriangle())
	return err
}

// NeedsRedraw implements demo.Redrawer. The triangle only changes when the
// target is recreated.
func (*Demo) NeedsRedraw(resized bool) bool { return resized }

// Render implements demo.Demo.
func (d *Demo) Render(f *gfx.Frame, _ loop.Tick) error {
	return f.Draw(gfx.DrawCall{
		Program: d.prog,
		Buffers: []*gfx.VertexBuffer{d.positions},
		Count:   d.positions.Count(),
	})
}

// Release implements demo.Demo.
func (d *Demo) Release() {
	if d.positions != nil {
		d.positions.Release()
	}
	if d.prog != nil {
		d.prog.Release()
	}
}
