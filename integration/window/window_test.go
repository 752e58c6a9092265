package window

import (
	"errors"
	"testing"

	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/demos/triangle"
	"github.com/gogpu/fundamentals/gfx"
)

func openNoop() (*gfx.Device, error) {
	return gfx.Open(gfx.OpenOptions{Backend: gfx.BackendNoop})
}

func startTriangle(dev *gfx.Device, w, h int) (*demo.Runner, error) {
	return demo.NewRunner(dev, triangle.Name, w, h, demo.Options{Seed: 1})
}

func TestSessionDrawsFrames(t *testing.T) {
	changed := make(chan struct{}, 1)
	s := newSession(startTriangle, changed, openNoop)
	t.Cleanup(s.close)
	dc := newFakeDrawer()

	s.draw(dc, 32, 24)
	s.draw(dc, 32, 24)
	changed <- struct{}{}
	s.draw(dc, 40, 24)

	if s.err != nil {
		t.Fatalf("session error: %v", s.err)
	}
	if s.frame != 3 {
		t.Errorf("frames = %d, want 3", s.frame)
	}
	if got := s.presenter.Uploads(); got != 3 {
		t.Errorf("uploads = %d, want 3", got)
	}
	if w, h := s.presenter.Size(); w != 40 || h != 24 {
		t.Errorf("presented size = %dx%d, want 40x24", w, h)
	}
	if st := s.runner.Stats(); st.ShaderCompiles != 2 {
		t.Errorf("ShaderCompiles = %d, want 2 after reload", st.ShaderCompiles)
	}
	if len(changed) != 0 {
		t.Error("change signal not consumed")
	}
}

func TestSessionSkipsEmptyWindow(t *testing.T) {
	s := newSession(startTriangle, nil, openNoop)
	t.Cleanup(s.close)

	s.draw(newFakeDrawer(), 0, 24)
	if s.runner != nil || s.frame != 0 {
		t.Error("zero-sized window started the demo")
	}
}

func TestSessionStartFailure(t *testing.T) {
	boom := errors.New("boom")
	opens := 0
	s := newSession(startTriangle, nil, func() (*gfx.Device, error) {
		opens++
		return nil, boom
	})
	t.Cleanup(s.close)
	dc := newFakeDrawer()

	s.draw(dc, 32, 24)
	s.draw(dc, 32, 24)

	if !errors.Is(s.err, boom) {
		t.Errorf("err = %v, want %v", s.err, boom)
	}
	if opens != 1 {
		t.Errorf("opens = %d, want 1", opens)
	}
	if len(dc.drawn) != 0 {
		t.Errorf("drew %d frames after failure", len(dc.drawn))
	}
}

func TestSessionTick(t *testing.T) {
	s := newSession(startTriangle, nil, openNoop)
	first := s.tick()
	second := s.tick()
	if first.Frame != 0 || first.Delta != 0 || first.Time != 0 {
		t.Errorf("first tick = %+v, want zero times", first)
	}
	if second.Frame != 1 || second.Delta < 0 {
		t.Errorf("second tick = %+v", second)
	}
}
