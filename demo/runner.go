package demo

import (
	"fmt"
	"image"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// Options configures a Runner.
type Options struct {
	// Clear is the clear color of every frame. The zero value is
	// transparent black; NewRunner uses opaque black instead.
	Clear fundamentals.Color

	// Seed seeds the demo's random source.
	Seed uint64

	// TexturePath is passed to the demo through Env.
	TexturePath string

	// Shaders overrides embedded shader sources when set.
	Shaders ShaderLoader
}

// Runner binds one demo to a device and an offscreen target.
type Runner struct {
	name    string
	factory Factory
	dev     *gfx.Device
	target  *gfx.Target
	env     *Env
	clear   fundamentals.Color

	demo  Demo
	drawn bool
	last  *image.RGBA
}

// NewRunner creates a target of the given size and initializes the named
// demo on it.
func NewRunner(dev *gfx.Device, name string, width, height int, opts Options) (*Runner, error) {
	factory, err := lookup(name)
	if err != nil {
		return nil, err
	}
	target, err := dev.NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	clear := opts.Clear
	if clear == (fundamentals.Color{}) {
		clear = fundamentals.Black
	}
	r := &Runner{
		name:    name,
		factory: factory,
		dev:     dev,
		target:  target,
		env:     newEnv(name, dev, target, opts),
		clear:   clear,
	}
	d := factory()
	if err := d.Init(r.env); err != nil {
		d.Release()
		target.Release()
		return nil, fmt.Errorf("demo: init %s: %w", name, err)
	}
	r.demo = d
	r.env.Log.Info("demo: initialized", "width", width, "height", height)
	return r, nil
}

// Name returns the demo name.
func (r *Runner) Name() string { return r.name }

// Env returns the environment shared with the demo.
func (r *Runner) Env() *Env { return r.env }

// Frame resizes the target to width x height if needed, renders one frame
// and returns the pixels.
//
// A Redrawer that reports no redraw is not rendered; Frame then returns the
// previous image.
func (r *Runner) Frame(t loop.Tick, width, height int) (*image.RGBA, error) {
	return r.render(t, width, height, true)
}

// Step is like Frame without reading the pixels back.
func (r *Runner) Step(t loop.Tick, width, height int) error {
	_, err := r.render(t, width, height, false)
	return err
}

func (r *Runner) render(t loop.Tick, width, height int, readback bool) (*image.RGBA, error) {
	resized, err := r.target.Resize(width, height)
	if err != nil {
		return nil, err
	}
	if rd, ok := r.demo.(Redrawer); ok && r.drawn && !rd.NeedsRedraw(resized) {
		if !readback {
			return nil, nil
		}
		if r.last != nil {
			return r.last, nil
		}
	}

	f, err := r.target.Begin(r.clear)
	if err != nil {
		return nil, err
	}
	if err := r.demo.Render(f, t); err != nil {
		if _, endErr := f.End(false); endErr != nil {
			r.env.Log.Warn("demo: end after render error", "err", endErr)
		}
		return nil, fmt.Errorf("demo: render %s: %w", r.name, err)
	}
	img, err := f.End(readback)
	if err != nil {
		return nil, err
	}
	r.drawn = true
	if readback {
		r.last = img
	}
	return img, nil
}

// Reload replaces the running demo with a fresh instance, picking up the
// current shader sources. When the new instance fails to initialize the
// error is logged and returned and the previous instance keeps running.
func (r *Runner) Reload() error {
	d := r.factory()
	if err := d.Init(r.env); err != nil {
		d.Release()
		r.env.Log.Warn("demo: reload failed, keeping previous instance", "err", err)
		return fmt.Errorf("demo: reload %s: %w", r.name, err)
	}
	r.demo.Release()
	r.demo = d
	r.drawn = false
	r.env.Log.Info("demo: reloaded")
	return nil
}

// Stats returns the device counters.
func (r *Runner) Stats() gfx.Stats { return r.dev.Stats() }

// Close releases the demo and the target. It does not close the device.
func (r *Runner) Close() {
	if r.demo != nil {
		r.demo.Release()
		r.demo = nil
	}
	r.target.Release()
}
