package gfx

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"

	"github.com/gogpu/fundamentals"
)

// Texture is a sampled 2D RGBA8 texture with a linear clamp-to-edge
// sampler.
type Texture struct {
	dev    *Device
	label  string
	width  int
	height int

	tex     hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	// bind groups keyed by program, rebuilt after Replace.
	groups map[*Program]hal.BindGroup
}

// NewTexture uploads img as a new texture.
func (d *Device) NewTexture(label string, img image.Image) (*Texture, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	sampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: create sampler %s: %w", label, err)
	}
	t := &Texture{
		dev:     d,
		label:   label,
		sampler: sampler,
		groups:  make(map[*Program]hal.BindGroup),
	}
	if err := t.Replace(img); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// NewSolidTexture creates a 1x1 texture of a single color, used as a
// placeholder until an image is loaded.
func (d *Device) NewSolidTexture(label string, c fundamentals.Color) (*Texture, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c.RGBA8())
	return d.NewTexture(label, img)
}

// Size returns the texture size in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Replace uploads img, recreating the GPU texture when the size changes.
// Images larger than the device limit are scaled down to fit.
func (t *Texture) Replace(img image.Image) error {
	if err := t.dev.checkOpen(); err != nil {
		return err
	}
	rgba := toNRGBA(img, int(gputypes.DefaultLimits().MaxTextureDimension2D))
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: texture %s is %dx%d", ErrInvalidSize, t.label, w, h)
	}

	if t.tex == nil || w != t.width || h != t.height {
		if err := t.allocate(w, h); err != nil {
			return err
		}
	}

	err := t.dev.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		rgba.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(rgba.Stride), RowsPerImage: uint32(h)},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("gfx: upload texture %s: %w", t.label, err)
	}
	logger().Debug("gfx: texture uploaded", "label", t.label, "width", w, "height", h)
	return nil
}

// allocate replaces the GPU texture with one of size w x h. On failure the
// current texture, view and bind groups are left untouched.
func (t *Texture) allocate(w, h int) error {
	tex, err := t.dev.device.CreateTexture(&hal.TextureDescriptor{
		Label:         t.label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gfx: create texture %s: %w", t.label, err)
	}
	view, err := t.dev.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         t.label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.dev.device.DestroyTexture(tex)
		return fmt.Errorf("gfx: create texture view %s: %w", t.label, err)
	}
	t.releaseImage()
	t.tex, t.view = tex, view
	t.width, t.height = w, h
	return nil
}

// bindGroup returns the texture bind group for p, creating it on first use.
func (t *Texture) bindGroup(p *Program) (hal.BindGroup, error) {
	if bg, ok := t.groups[p]; ok {
		return bg, nil
	}
	if t.view == nil {
		return nil, fmt.Errorf("%w: texture %s is released", ErrBinding, t.label)
	}
	bg, err := t.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  t.label + "_" + p.label,
		Layout: p.textureBGL,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: t.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: create texture bind group %s: %w", t.label, err)
	}
	t.groups[p] = bg
	return bg, nil
}

func (t *Texture) releaseImage() {
	for p, bg := range t.groups {
		t.dev.device.DestroyBindGroup(bg)
		delete(t.groups, p)
	}
	if t.view != nil {
		t.dev.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.dev.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// Release destroys the texture, its view, its sampler and any bind groups.
func (t *Texture) Release() {
	t.releaseImage()
	if t.sampler != nil {
		t.dev.device.DestroySampler(t.sampler)
		t.sampler = nil
	}
}

// toNRGBA converts img to tightly packed non-premultiplied RGBA with its
// origin at (0, 0), scaling it down if either side exceeds maxSize.
func toNRGBA(img image.Image, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxSize || h > maxSize {
		scale := float64(maxSize) / float64(max(w, h))
		dst := image.NewNRGBA(image.Rect(0, 0, max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*w {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
