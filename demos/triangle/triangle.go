// Package triangle draws a triangle with a color per vertex, every frame.
package triangle

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "triangle"

//go:embed shaders/triangle.wgsl
var shader string

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the triangle demo.
type Demo struct {
	prog      *gfx.Program
	positions *gfx.VertexBuffer
	colors    *gfx.VertexBuffer
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "a triangle with interpolated vertex colors" }

// Init implements demo.Demo.
func (d *Demo) Init(env *demo.Env) error {
	src, err := env.Shader(shader)
	if err != nil {
		return err
	}
	d.prog, err = env.Device.NewProgram(gfx.ProgramDesc{
		Label:  Name,
		Source: src,
		Attributes: []gfx.Attribute{
			{Name: "position", Components: 2},
			{Name: "color", Components: 4},
		},
	})
	if err != nil {
		return err
	}
	if d.positions, err = env.Device.NewVertexBuffer(Name+"_positions", 2, fundamentals.TriangleClip()); err != nil {
		return err
	}
	d.colors, err = env.Device.NewVertexBuffer(Name+"_colors", 4, fundamentals.TriangleColors())
	return err
}

// Render implements demo.Demo.
func (d *Demo) Render(f *gfx.Frame, _ loop.Tick) error {
	return f.Draw(gfx.DrawCall{
		Program: d.prog,
		Buffers: []*gfx.VertexBuffer{d.positions, d.colors},
		Count:   fundamentals.TriangleVertices,
	})
}

// Release implements demo.Demo.
func (d *Demo) Release() {
	for _, b := range []*gfx.VertexBuffer{d.colors, d.positions} {
		if b != nil {
			b.Release()
		}
	}
	if d.prog != nil {
		d.prog.Release()
	}
}
