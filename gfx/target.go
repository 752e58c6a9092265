package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fundamentals"
)

// Target is an offscreen RGBA8 color attachment with a matching depth
// attachment. Frames render into it and may read it back.
type Target struct {
	dev    *Device
	width  int
	height int

	color     hal.Texture
	colorView hal.TextureView
	depth     hal.Texture
	depthView hal.TextureView

	// active is the frame currently recording, if any.
	active *Frame
}

// NewTarget creates a render target of the given size.
func (d *Device) NewTarget(width, height int) (*Target, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	t := &Target{dev: d}
	if err := t.allocate(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Size returns the target size in pixels.
func (t *Target) Size() (width, height int) { return t.width, t.height }

// Resize recreates the attachments when the size changes. It reports
// whether anything changed.
func (t *Target) Resize(width, height int) (bool, error) {
	if width == t.width && height == t.height && t.color != nil {
		return false, nil
	}
	if t.active != nil {
		return false, fmt.Errorf("gfx: resize during frame")
	}
	if err := t.allocate(width, height); err != nil {
		return false, err
	}
	logger().Debug("gfx: target resized", "width", width, "height", height)
	return true, nil
}

func (t *Target) allocate(width, height int) error {
	if err := t.dev.checkOpen(); err != nil {
		return err
	}
	limit := int(gputypes.DefaultLimits().MaxTextureDimension2D)
	if width <= 0 || height <= 0 || width > limit || height > limit {
		return fmt.Errorf("%w: target %dx%d", ErrInvalidSize, width, height)
	}
	t.Release()

	d := t.dev.device
	size := hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	color, err := d.CreateTexture(&hal.TextureDescriptor{
		Label:         "target_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        ColorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("gfx: create color attachment: %w", err)
	}
	t.color = color
	t.colorView, err = d.CreateTextureView(color, &hal.TextureViewDescriptor{
		Label:         "target_color_view",
		Format:        ColorFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Release()
		return fmt.Errorf("gfx: create color view: %w", err)
	}

	t.depth, err = d.CreateTexture(&hal.TextureDescriptor{
		Label:         "target_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Release()
		return fmt.Errorf("gfx: create depth attachment: %w", err)
	}
	t.depthView, err = d.CreateTextureView(t.depth, &hal.TextureViewDescriptor{
		Label:         "target_depth_view",
		Format:        DepthFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectDepthOnly,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Release()
		return fmt.Errorf("gfx: create depth view: %w", err)
	}

	t.width, t.height = width, height
	return nil
}

// Begin starts a frame that clears color to clear and depth to 1. Only one
// frame may be recording on a target at a time.
func (t *Target) Begin(clear fundamentals.Color) (*Frame, error) {
	if err := t.dev.checkOpen(); err != nil {
		return nil, err
	}
	if t.color == nil {
		return nil, fmt.Errorf("%w: target released", ErrInvalidSize)
	}
	if t.active != nil {
		return nil, fmt.Errorf("gfx: frame already in progress")
	}

	encoder, err := t.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "frame"})
	if err != nil {
		return nil, fmt.Errorf("gfx: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("frame"); err != nil {
		return nil, fmt.Errorf("gfx: begin encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "frame",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    t.colorView,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear[0]),
				G: float64(clear[1]),
				B: float64(clear[2]),
				A: float64(clear[3]),
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            t.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 1,
			StencilReadOnly: true,
		},
	})
	pass.SetViewport(0, 0, float32(t.width), float32(t.height), 0, 1)

	f := &Frame{target: t, encoder: encoder, pass: pass}
	t.active = f
	return f, nil
}

// Release destroys both attachments. A released target can be brought
// back with Resize.
func (t *Target) Release() {
	d := t.dev.device
	if t.depthView != nil {
		d.DestroyTextureView(t.depthView)
		t.depthView = nil
	}
	if t.depth != nil {
		d.DestroyTexture(t.depth)
		t.depth = nil
	}
	if t.colorView != nil {
		d.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.color != nil {
		d.DestroyTexture(t.color)
		t.color = nil
	}
}
