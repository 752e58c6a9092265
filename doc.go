// Package fundamentals holds the small amount of code shared by the
// graphics demos: 3x3 and 4x4 matrices, angle helpers, colors, the bounce
// animation state and the fixed vertex data of each shape.
//
// # Overview
//
// Every demo is a self-contained program that compiles its own WGSL shader,
// uploads a small vertex buffer, sets a few uniforms and issues one draw call
// per frame. The demos live under demos/ and register themselves with the
// demo package; the GPU plumbing lives in gfx.
//
//	import (
//		"github.com/gogpu/fundamentals/demo"
//		_ "github.com/gogpu/fundamentals/demos/all"
//	)
//
//	d, err := demo.New("matrices")
//
// # Matrices
//
// Mat3 and Mat4 are column-major, the layout a mat3x3<f32> or mat4x4<f32>
// uniform expects. Multiply(a, b) follows the usual convention: applied to a
// point, b acts first. A 2D transform is built right to left:
//
//	m := fundamentals.Projection(w, h).
//		Translate(x, y).
//		Rotate(fundamentals.DegToRad(angle)).
//		Scale(1, 1).
//		Translate(-50, -75)
//
// # Logging
//
// The package is silent by default. Use SetLogger to enable diagnostics;
// the gfx, demo and loop packages share the same logger.
package fundamentals
