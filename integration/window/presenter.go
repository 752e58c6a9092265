package window

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
)

// Presenter errors.
var (
	// ErrClosed is returned when a closed Presenter is used.
	ErrClosed = errors.New("window: presenter is closed")

	// ErrNoTextureCreator is returned when the drawer has no texture creator.
	ErrNoTextureCreator = errors.New("window: drawer has no texture creator")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// Presenter uploads rendered frames to a window texture and draws it.
//
// The texture is created lazily on the first Present and updated in place
// while the frame size stays the same. After a resize the old texture is
// kept until its replacement has been created, because in-flight command
// buffers may still sample it.
//
// Presenter is not safe for concurrent use.
type Presenter struct {
	texture gpucontext.Texture
	old     gpucontext.Texture
	width   int
	height  int
	uploads int
	closed  bool
}

// NewPresenter returns an empty Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Size returns the size of the current texture, or zeros before the first
// Present.
func (p *Presenter) Size() (width, height int) { return p.width, p.height }

// Uploads returns how many frames have been uploaded.
func (p *Presenter) Uploads() int { return p.uploads }

// Present uploads img and draws it at the top-left corner of dc. A nil img
// redraws the last uploaded frame.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, img *image.RGBA) error {
	if p.closed {
		return ErrClosed
	}
	if img != nil {
		if err := p.upload(dc, img); err != nil {
			return err
		}
	}
	if p.texture == nil {
		return nil
	}
	return dc.DrawTexture(p.texture, 0, 0)
}

func (p *Presenter) upload(dc gpucontext.TextureDrawer, img *image.RGBA) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	data := packed(img)

	if p.texture != nil && (w != p.width || h != p.height) {
		destroy(p.old)
		p.old = p.texture
		p.texture = nil
	}

	if p.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(w, h, data)
		if err != nil {
			return fmt.Errorf("window: create texture %dx%d: %w", w, h, err)
		}
		// Creation waits for the GPU, so the previous texture is idle now.
		destroy(p.old)
		p.old = nil
		p.texture = tex
		p.width, p.height = w, h
		p.uploads++
		return nil
	}

	if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return fmt.Errorf("window: update texture: %w", err)
		}
	}
	p.uploads++
	return nil
}

// Close destroys the textures. Close is idempotent.
func (p *Presenter) Close() {
	if p.closed {
		return
	}
	p.closed = true
	destroy(p.old)
	destroy(p.texture)
	p.old, p.texture = nil, nil
}

func destroy(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// packed returns the pixels of img as tightly packed rows.
func packed(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	row := 4 * w
	if img.Stride == row && img.Rect.Min == (image.Point{}) {
		return img.Pix[:row*h]
	}
	out := make([]byte, row*h)
	for y := 0; y < h; y++ {
		start := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(out[y*row:], img.Pix[start:start+row])
	}
	return out
}
