// Package cube draws a textured unit cube tumbling in front of a
// perspective camera.
//
// The texture starts as a 1x1 blue placeholder. When a texture path is
// configured the image is decoded in the background and swapped in on the
// first frame after it arrives.
package cube

import (
	_ "embed"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Name is the registry name.
const Name = "cube"

// Camera and animation parameters.
const (
	FieldOfView = 60 // degrees
	Near        = 1
	Far         = 2000

	// Rotation speeds in radians per second.
	SpeedX = -0.4
	SpeedY = -0.7
)

var (
	cameraPosition = fundamentals.Vec3{0, 0, 2}
	cameraTarget   = fundamentals.Vec3{0, 0, 0}
	cameraUp       = fundamentals.Vec3{0, 1, 0}
)

//go:embed shaders/cube.wgsl
var shader string

var layout = gfx.MustUniformLayout(
	gfx.UniformField{Name: "matrix", Type: gfx.UniformMat4},
)

func init() {
	demo.Register(Name, func() demo.Demo { return &Demo{} })
}

// Demo is the cube demo.
type Demo struct {
	env       *demo.Env
	prog      *gfx.Program
	uniforms  *gfx.Uniforms
	positions *gfx.VertexBuffer
	texcoords *gfx.VertexBuffer
	texture   *gfx.Texture
	pending   <-chan gfx.ImageResult

	rotX, rotY float32
}

// Description implements demo.Describer.
func (*Demo) Description() string { return "a textured cube with depth testing and back-face culling" }

// Init implements demo.Demo.
func (d *Demo) Init(env *demo.Env) error {
	d.env = env
	src, err := env.Shader(shader)
	if err != nil {
		return err
	}
	d.prog, err = env.Device.NewProgram(gfx.ProgramDesc{
		Label:  Name,
		Source: src,
		Attributes: []gfx.Attribute{
			{Name: "position", Components: 3},
			{Name: "texcoord", Components: 2},
		},
		Uniforms:  layout,
		Textured:  true,
		DepthTest: true,
		CullBack:  true,
	})
	if err != nil {
		return err
	}
	if d.uniforms, err = env.Device.NewUniforms(d.prog, 1); err != nil {
		return err
	}
	if d.positions, err = env.Device.NewVertexBuffer(Name+"_positions", 3, fundamentals.Cube()); err != nil {
		return err
	}
	if d.texcoords, err = env.Device.NewVertexBuffer(Name+"_texcoords", 2, fundamentals.CubeTexcoords()); err != nil {
		return err
	}
	if d.texture, err = env.Device.NewSolidTexture(Name+"_texture", fundamentals.Blue); err != nil {
		return err
	}
	if env.TexturePath != "" {
		d.pending = gfx.LoadImageAsync(env.TexturePath)
	}
	return nil
}

// Matrix returns the model-view-projection matrix for the given rotation
// and aspect ratio.
func Matrix(rotX, rotY, aspect float32) fundamentals.Mat4 {
	projection := fundamentals.Perspective(fundamentals.DegToRad(FieldOfView), aspect, Near, Far)
	camera := fundamentals.LookAt(cameraPosition, cameraTarget, cameraUp)
	viewProjection := projection.Multiply(camera.Inverse())
	return viewProjection.XRotate(rotX).YRotate(rotY)
}

// Render implements demo.Demo.
func (d *Demo) Render(f *gfx.Frame, t loop.Tick) error {
	d.pollTexture()

	dt := t.Seconds()
	d.rotY += SpeedY * dt
	d.rotX += SpeedX * dt

	w, h := f.Size()
	if err := d.uniforms.Set(0, "matrix", Matrix(d.rotX, d.rotY, float32(w)/float32(h))); err != nil {
		return err
	}
	return f.Draw(gfx.DrawCall{
		Program:  d.prog,
		Uniforms: d.uniforms,
		Buffers:  []*gfx.VertexBuffer{d.positions, d.texcoords},
		Texture:  d.texture,
		Count:    fundamentals.CubeVertices,
	})
}

// pollTexture swaps in the loaded image once it is ready. A failed load is
// logged and the placeholder stays.
func (d *Demo) pollTexture() {
	if d.pending == nil {
		return
	}
	select {
	case res := <-d.pending:
		d.pending = nil
		if res.Err != nil {
			d.env.Log.Warn("cube: texture load failed", "path", res.Path, "err", res.Err)
			return
		}
		if err := d.texture.Replace(res.Image); err != nil {
			d.env.Log.Warn("cube: texture upload failed", "path", res.Path, "err", err)
			return
		}
		w, h := d.texture.Size()
		d.env.Log.Info("cube: texture loaded", "path", res.Path, "format", res.Format, "width", w, "height", h)
	default:
	}
}

// Release implements demo.Demo.
func (d *Demo) Release() {
	if d.texture != nil {
		d.texture.Release()
	}
	for _, b := range []*gfx.VertexBuffer{d.texcoords, d.positions} {
		if b != nil {
			b.Release()
		}
	}
	if d.uniforms != nil {
		d.uniforms.Release()
	}
	if d.prog != nil {
		d.prog.Release()
	}
}
