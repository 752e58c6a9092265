package cube

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/demo"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/loop"
)

func TestMatrixCentersCube(t *testing.T) {
	m := Matrix(0, 0, 1)
	p := m.TransformPoint(fundamentals.Vec3{0, 0, 0})
	if abs(p[0]) > 1e-5 || abs(p[1]) > 1e-5 {
		t.Errorf("origin maps to %v, want the center of clip space", p)
	}
	if p[2] <= 0 || p[2] >= 1 {
		t.Errorf("origin depth %v outside (0, 1)", p[2])
	}

	// The front face is nearer than the back face.
	front := m.TransformPoint(fundamentals.Vec3{0, 0, 0.5})
	back := m.TransformPoint(fundamentals.Vec3{0, 0, -0.5})
	if front[2] >= back[2] {
		t.Errorf("front depth %v >= back depth %v", front[2], back[2])
	}
}

func TestMatrixRotationKeepsCenter(t *testing.T) {
	for _, rot := range [][2]float32{{0.3, 0}, {0, -1.2}, {-2, 2.5}} {
		p := Matrix(rot[0], rot[1], 1.5).TransformPoint(fundamentals.Vec3{})
		if abs(p[0]) > 1e-5 || abs(p[1]) > 1e-5 {
			t.Errorf("rotation %v moved the cube center to %v", rot, p)
		}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestRotationFollowsDelta(t *testing.T) {
	dev, err := gfx.Open(gfx.OpenOptions{Backend: gfx.BackendNoop})
	if err != nil {
		t.Fatalf("gfx.Open: %v", err)
	}
	t.Cleanup(dev.Close)
	r, err := demo.NewRunner(dev, Name, 64, 64, demo.Options{})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	ticks := []loop.Tick{
		{Frame: 0},
		{Frame: 1, Delta: time.Second},
		{Frame: 2, Delta: 500 * time.Millisecond},
	}
	d := &Demo{}
	if err := d.Init(r.Env()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer d.Release()
	target, err := dev.NewTarget(64, 64)
	if err != nil {
		t.Fatalf("NewTarget: %v", err)
	}
	defer target.Release()
	for _, tk := range ticks {
		f, err := target.Begin(fundamentals.Black)
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		if err := d.Render(f, tk); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if _, err := f.End(false); err != nil {
			t.Fatalf("End: %v", err)
		}
	}
	if want := float32(SpeedY * 1.5); abs(d.rotY-want) > 1e-5 {
		t.Errorf("rotY = %v, want %v", d.rotY, want)
	}
	if want := float32(SpeedX * 1.5); abs(d.rotX-want) > 1e-5 {
		t.Errorf("rotX = %v, want %v", d.rotX, want)
	}
}

func TestTextureLoadedAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hardhat.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 8, 4))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	dev, err := gfx.Open(gfx.OpenOptions{Backend: gfx.BackendNoop})
	if err != nil {
		t.Fatalf("gfx.Open: %v", err)
	}
	t.Cleanup(dev.Close)
	r, err := demo.NewRunner(dev, Name, 32, 32, demo.Options{TexturePath: path})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	d := &Demo{}
	if err := d.Init(r.Env()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer d.Release()
	if w, h := d.texture.Size(); w != 1 || h != 1 {
		t.Fatalf("placeholder size = %dx%d", w, h)
	}

	deadline := time.Now().Add(5 * time.Second)
	for d.pending != nil && time.Now().Before(deadline) {
		d.pollTexture()
		time.Sleep(time.Millisecond)
	}
	if w, h := d.texture.Size(); w != 8 || h != 4 {
		t.Errorf("texture size after load = %dx%d, want 8x4", w, h)
	}
}

func TestTextureLoadFailureKeepsPlaceholder(t *testing.T) {
	dev, err := gfx.Open(gfx.OpenOptions{Backend: gfx.BackendNoop})
	if err != nil {
		t.Fatalf("gfx.Open: %v", err)
	}
	t.Cleanup(dev.Close)
	r, err := demo.NewRunner(dev, Name, 32, 32, demo.Options{TexturePath: filepath.Join(t.TempDir(), "missing.png")})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer r.Close()

	for i := 0; i < 50; i++ {
		if err := r.Step(loop.Tick{Frame: uint64(i)}, 32, 32); err != nil {
			t.Fatalf("Step: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}
