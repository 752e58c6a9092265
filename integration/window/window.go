package window

import (
	"errors"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

// ErrNoProvider is returned when the window has no GPU context provider.
var ErrNoProvider = errors.New("window: no GPU context provider")

// Options configures Run.
type Options struct {
	Title  string
	Width  int
	Height int

	// Changed signals shader edits. The demo is reloaded before the next
	// frame after a signal.
	Changed <-chan struct{}
}

// StartFunc creates the demo runner once the window's device exists.
type StartFunc func(dev *gfx.Device, width, height int) (*demo.Runner, error)

// Run opens a window, renders the demo created by start into it on every
// frame and blocks until the window is closed. The demo shares the
// window's GPU device.
//
// Errors while drawing are logged; the first one is returned after the
// window closes.
func Run(opts Options, start StartFunc) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(opts.Title).
		WithSize(opts.Width, opts.Height).
		WithContinuousRender(true))

	s := newSession(start, opts.Changed, func() (*gfx.Device, error) {
		provider := app.GPUContextProvider()
		if provider == nil {
			return nil, ErrNoProvider
		}
		return gfx.Wrap(provider)
	})

	app.OnDraw(func(dc *gogpu.Context) {
		s.draw(dc.AsTextureDrawer(), dc.Width(), dc.Height())
	})
	app.OnClose(s.close)

	if err := app.Run(); err != nil {
		return err
	}
	return s.err
}

// session is the per-window render state driven by draw callbacks.
type session struct {
	start   StartFunc
	open    func() (*gfx.Device, error)
	changed <-chan struct{}

	dev       *gfx.Device
	runner    *demo.Runner
	presenter *Presenter

	frame   uint64
	started time.Time
	last    time.Time
	err     error
	failed  bool
}

func newSession(start StartFunc, changed <-chan struct{}, open func() (*gfx.Device, error)) *session {
	return &session{
		start:     start,
		open:      open,
		changed:   changed,
		presenter: NewPresenter(),
	}
}

// draw renders and presents one frame. After a startup failure it does
// nothing.
func (s *session) draw(dc gpucontext.TextureDrawer, width, height int) {
	if s.failed || width <= 0 || height <= 0 {
		return
	}
	if s.runner == nil {
		if err := s.init(width, height); err != nil {
			s.failed = true
			s.record(err)
			return
		}
	}

	select {
	case <-s.changed:
		// Reload logs its own failure and keeps the previous instance.
		_ = s.runner.Reload()
	default:
	}

	img, err := s.runner.Frame(s.tick(), width, height)
	if err != nil {
		s.record(err)
		return
	}
	if err := s.presenter.Present(dc, img); err != nil {
		s.record(err)
	}
}

func (s *session) init(width, height int) error {
	dev, err := s.open()
	if err != nil {
		return err
	}
	runner, err := s.start(dev, width, height)
	if err != nil {
		dev.Close()
		return err
	}
	s.dev, s.runner = dev, runner
	return nil
}

func (s *session) tick() loop.Tick {
	now := time.Now()
	t := loop.Tick{Frame: s.frame}
	if s.frame == 0 {
		s.started = now
	} else {
		t.Time = now.Sub(s.started)
		t.Delta = now.Sub(s.last)
	}
	s.last = now
	s.frame++
	return t
}

func (s *session) record(err error) {
	fundamentals.Logger().Error("window: frame failed", "frame", s.frame, "err", err)
	if s.err == nil {
		s.err = err
	}
}

func (s *session) close() {
	s.presenter.Close()
	if s.runner != nil {
		s.runner.Close()
		s.runner = nil
	}
	if s.dev != nil {
		s.dev.Close()
		s.dev = nil
	}
}
