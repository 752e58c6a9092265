package gfx

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fundamentals"
)

func TestNewSolidTexture(t *testing.T) {
	dev := openNoop(t)
	tex, err := dev.NewSolidTexture("placeholder", fundamentals.Blue)
	if err != nil {
		t.Fatalf("NewSolidTexture: %v", err)
	}
	defer tex.Release()
	if w, h := tex.Size(); w != 1 || h != 1 {
		t.Errorf("Size() = %dx%d, want 1x1", w, h)
	}
}

func TestTextureReplace(t *testing.T) {
	dev := openNoop(t)
	tex, err := dev.NewTexture("photo", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	defer tex.Release()

	p, err := dev.NewProgram(ProgramDesc{
		Label:      "textured",
		Source:     texturedShader,
		Attributes: []Attribute{{"position", 2}, {"uv", 2}},
		Textured:   true,
	})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	defer p.Release()
	if _, err := tex.bindGroup(p); err != nil {
		t.Fatalf("bindGroup: %v", err)
	}

	same := tex.tex
	if err := tex.Replace(image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Replace same size: %v", err)
	}
	if tex.tex != same {
		t.Error("same-size Replace reallocated the texture")
	}
	if len(tex.groups) != 1 {
		t.Errorf("same-size Replace dropped bind groups: %d", len(tex.groups))
	}

	if err := tex.Replace(image.NewRGBA(image.Rect(0, 0, 16, 8))); err != nil {
		t.Fatalf("Replace new size: %v", err)
	}
	if w, h := tex.Size(); w != 16 || h != 8 {
		t.Errorf("Size() = %dx%d, want 16x8", w, h)
	}
	if len(tex.groups) != 0 {
		t.Error("resize kept stale bind groups")
	}

	if err := tex.Replace(image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Replace(empty) error = %v, want ErrInvalidSize", err)
	}
}

var errOutOfMemory = errors.New("out of device memory")

// allocFailDevice fails texture or view creation and passes every other
// call through.
type allocFailDevice struct {
	hal.Device
	failTexture bool
	failView    bool
}

func (d *allocFailDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTexture {
		return nil, errOutOfMemory
	}
	return d.Device.CreateTexture(desc)
}

func (d *allocFailDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if d.failView {
		return nil, errOutOfMemory
	}
	return d.Device.CreateTextureView(tex, desc)
}

// A Replace that cannot allocate the new size keeps the previous texture
// usable for drawing.
func TestTextureReplaceAllocFailureKeepsTexture(t *testing.T) {
	tests := []struct {
		name        string
		failTexture bool
		failView    bool
	}{
		{"texture", true, false},
		{"view", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := openNoop(t)
			target, err := dev.NewTarget(8, 8)
			if err != nil {
				t.Fatalf("NewTarget: %v", err)
			}
			defer target.Release()
			p, err := dev.NewProgram(ProgramDesc{
				Label:      "textured",
				Source:     texturedShader,
				Attributes: []Attribute{{"position", 2}, {"uv", 2}},
				Textured:   true,
			})
			if err != nil {
				t.Fatalf("NewProgram: %v", err)
			}
			defer p.Release()
			pos, _ := dev.NewVertexBuffer("pos", 2, fundamentals.Rectangle(0, 0, 1, 1))
			uv, _ := dev.NewVertexBuffer("uv", 2, fundamentals.Rectangle(0, 0, 1, 1))
			tex, err := dev.NewSolidTexture("tex", fundamentals.Blue)
			if err != nil {
				t.Fatalf("NewSolidTexture: %v", err)
			}
			defer tex.Release()

			orig := dev.device
			dev.device = &allocFailDevice{Device: orig, failTexture: tt.failTexture, failView: tt.failView}
			t.Cleanup(func() { dev.device = orig })

			if err := tex.Replace(image.NewRGBA(image.Rect(0, 0, 4, 4))); !errors.Is(err, errOutOfMemory) {
				t.Fatalf("Replace error = %v, want %v", err, errOutOfMemory)
			}
			if w, h := tex.Size(); w != 1 || h != 1 {
				t.Errorf("Size() after failed Replace = %dx%d, want 1x1", w, h)
			}
			if tex.tex == nil || tex.view == nil {
				t.Fatal("failed Replace released the previous texture")
			}

			f, err := target.Begin(fundamentals.Black)
			if err != nil {
				t.Fatalf("Begin: %v", err)
			}
			dc := DrawCall{Program: p, Buffers: []*VertexBuffer{pos, uv}, Texture: tex, Count: 6}
			if err := f.Draw(dc); err != nil {
				t.Errorf("Draw after failed Replace: %v", err)
			}
			if _, err := f.End(false); err != nil {
				t.Fatalf("End: %v", err)
			}
		})
	}
}

func TestReleasedTextureBindGroup(t *testing.T) {
	dev := openNoop(t)
	p, err := dev.NewProgram(ProgramDesc{
		Label:      "textured",
		Source:     texturedShader,
		Attributes: []Attribute{{"position", 2}, {"uv", 2}},
		Textured:   true,
	})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	defer p.Release()
	tex, err := dev.NewSolidTexture("tex", fundamentals.Blue)
	if err != nil {
		t.Fatalf("NewSolidTexture: %v", err)
	}
	tex.Release()
	if _, err := tex.bindGroup(p); !errors.Is(err, ErrBinding) {
		t.Errorf("bindGroup after Release = %v, want ErrBinding", err)
	}
}

func TestToNRGBA(t *testing.T) {
	t.Run("tight NRGBA passes through", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
		if got := toNRGBA(src, 64); got != src {
			t.Error("toNRGBA copied a tight NRGBA image")
		}
	})

	t.Run("offset origin is normalized", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(10, 10, 12, 11))
		src.Set(10, 10, color.RGBA{R: 255, A: 255})
		got := toNRGBA(src, 64)
		if got.Rect != image.Rect(0, 0, 2, 1) {
			t.Fatalf("Rect = %v", got.Rect)
		}
		if c := got.NRGBAAt(0, 0); c.R != 255 || c.A != 255 {
			t.Errorf("pixel (0,0) = %v", c)
		}
	})

	t.Run("oversized is scaled to fit", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 200, 50))
		got := toNRGBA(src, 100)
		if got.Rect.Dx() != 100 || got.Rect.Dy() != 25 {
			t.Errorf("scaled size = %v, want 100x25", got.Rect.Size())
		}
	})
}
