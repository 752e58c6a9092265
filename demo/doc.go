// Package demo defines the Demo interface, the registry the demo packages
// add themselves to, and the Runner that drives one demo frame by frame.
//
// Demo packages register in init:
//
//	func init() {
//		demo.Register("triangle", func() demo.Demo { return &Triangle{} })
//	}
//
// and a host selects one by name:
//
//	import _ "github.com/gogpu/fundamentals/demos/all"
//
//	r, err := demo.NewRunner(dev, "triangle", 640, 480, demo.Options{})
//	img, err := r.Frame(tick, 640, 480)
package demo
