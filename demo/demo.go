package demo

import (
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Demo is one self-contained example. Init builds its GPU resources, Render
// records one frame and advances the animation, Release frees everything
// Init created and must be safe to call after a failed Init.
type Demo interface {
	Init(env *Env) error
	Render(f *gfx.Frame, t loop.Tick) error
	Release()
}

// Redrawer is implemented by demos that draw a still image and only need
// to render again in some cases, typically after a resize. The Runner
// always renders the first frame.
type Redrawer interface {
	NeedsRedraw(resized bool) bool
}

// Describer is implemented by demos that carry a one-line description.
type Describer interface {
	Description() string
}

// Description returns the description of the named demo, or "".
func Description(name string) string {
	d, err := New(name)
	if err != nil {
		return ""
	}
	if ds, ok := d.(Describer); ok {
		return ds.Description()
	}
	return ""
}
