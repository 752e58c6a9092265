// Package rectangles draws 50 random rectangles in random colors. The
// picture is regenerated only when the target size changes.
package rectangles

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "rectangles"

const (
	// Count is the number of rectangles per picture.
	Count = 50

	// maxSide bounds the random width and height.
	maxSide = 300
)

//go:embed shaders/rectangles.wgsl
var shader string

var layout = gfx.MustUniformLayout(
	gfx.UniformField{Name: "resolution", Type: gfx.UniformVec2},
	gfx.UniformField{Name: "color", Type: gfx.UniformVec4},
)

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the rectangles demo. All rectangles share one vertex buffer; each
// is drawn with its own uniform slot.
type Demo struct {
	env      *demo.Env
	prog     *gfx.Program
	uniforms *gfx.Uniforms
	rects    *gfx.VertexBuffer
	verts    []float32
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "50 random rectangles, redrawn on resize" }

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
	if d.uniforms, err = env.Device.NewUniforms(d.prog, Count); err != nil {
		return err
	}
	d.verts = make([]float32, 0, Count*fundamentals.RectangleVertices*2)
	d.rects, err = env.Device.NewVertexBuffer(Name+"_positions", 2, nil)
	return err
}

// NeedsRedraw implements demo.Redrawer.
func (*Demo) NeedsRedraw(resized bool) bool { return resized }

// Render implements demo.Demo. Every call picks new rectangles.
func (d *Demo) Render(f *gfx.Frame, _ loop.Tick) error {
	w, h := f.Size()
	r := d.env.Rand
	resolution := [2]float32{float32(w), float32(h)}

	d.verts = d.verts[:0]
	for i := 0; i < Count; i++ {
		rw := fundamentals.RandomInt(r, maxSide)
		rh := fundamentals.RandomInt(r, maxSide)
		x := fundamentals.RandomInt(r, w-rw)
		y := fundamentals.RandomInt(r, h-rh)
		d.verts = fundamentals.AppendRectangle(d.verts, float32(x), float32(y), float32(rw), float32(rh))

		if err := d.uniforms.Set(i, "resolution", resolution); err != nil {
			return err
		}
		if err := d.uniforms.Set(i, "color", fundamentals.RandomColor(r)); err != nil {
			return err
		}
	}
	if err := d.rects.Update(d.verts); err != nil {
		return err
	}

	for i := 0; i < Count; i++ {
		err := f.Draw(gfx.DrawCall{
			Program:  d.prog,
			Uniforms: d.uniforms,
			Slot:     i,
			Buffers:  []*gfx.VertexBuffer{d.rects},
			First:    i * fundamentals.RectangleVertices,
			Count:    fundamentals.RectangleVertices,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Release implements demo.Demo.
func (d *Demo) Release() {
	if d.rects != nil {
		d.rects.Release()
	}
	if d.uniforms != nil {
		d.uniforms.Release()
	}
	if d.prog != nil {
		d.prog.Release()
	}
}
