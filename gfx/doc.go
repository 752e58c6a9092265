// Package gfx is the thin graphics context the demos draw through.
//
// It wraps one hal.Device and hal.Queue from github.com/gogpu/wgpu and
// exposes the handful of objects a small demo needs: a Program (shader
// module plus render pipeline), a VertexBuffer, a Uniforms block, a Texture,
// and a Target with its per-frame Frame.
//
// # Usage
//
//	dev, err := gfx.Open(gfx.OpenOptions{Backend: gfx.BackendVulkan})
//	if err != nil {
//		return err
//	}
//	defer dev.Close()
//
//	prog, err := dev.NewProgram(gfx.ProgramDesc{
//		Label:      "triangle",
//		Source:     src,
//		Attributes: []gfx.Attribute{{Name: "position", Components: 2}},
//	})
//	buf, err := dev.NewVertexBuffer("triangle", 2, vertices)
//
//	target, err := dev.NewTarget(640, 480)
//	frame, err := target.Begin(fundamentals.Black)
//	err = frame.Draw(gfx.DrawCall{Program: prog, Buffers: []*gfx.VertexBuffer{buf}, Count: buf.Count()})
//	img, err := frame.End(true)
//
// Every pipeline renders to an RGBA8 color attachment with a Depth24Plus
// depth attachment, so any Program can draw into any Target.
//
// # Shaders
//
// Sources are WGSL. NewProgram parses and lowers them with
// github.com/gogpu/naga first, so a syntax error is reported with the
// program label instead of surfacing as a backend pipeline failure.
//
// # Bind groups
//
// Group 0 holds the uniform block at binding 0. A textured program uses the
// next group for the texture (binding 0) and its sampler (binding 1).
package gfx
