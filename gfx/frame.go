package gfx

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyRowAlign is the required bytes-per-row alignment of texture to buffer
// copies.
const copyRowAlign = 256

// DrawCall is one draw of a program.
type DrawCall struct {
	Program *Program

	// Uniforms and Slot select the uniform values. Required when the
	// program has a uniform block.
	Uniforms *Uniforms
	Slot     int

	// Buffers feed the program attributes in location order.
	Buffers []*VertexBuffer

	// Texture is required when the program is textured.
	Texture *Texture

	// First is the first vertex to draw. Count is the number of vertices;
	// zero draws nothing.
	First int
	Count int
}

// Frame records draw calls into one render pass on a Target.
type Frame struct {
	target  *Target
	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder
	ended   bool

	vertices uint64
}

// Size returns the size of the target being rendered.
func (f *Frame) Size() (width, height int) { return f.target.Size() }

// Draw validates dc against its program and records it.
func (f *Frame) Draw(dc DrawCall) error {
	if f.ended {
		return ErrFrameEnded
	}
	p := dc.Program
	if p == nil || p.pipeline == nil {
		return fmt.Errorf("%w: no program", ErrBinding)
	}
	if dc.Count == 0 {
		return nil
	}
	if dc.Count < 0 || dc.First < 0 {
		return fmt.Errorf("%w: first %d count %d", ErrVertexRange, dc.First, dc.Count)
	}
	if len(dc.Buffers) != len(p.attrs) {
		return fmt.Errorf("%w: %s wants %d vertex buffers, got %d", ErrBinding, p.label, len(p.attrs), len(dc.Buffers))
	}

	available := -1
	for i, b := range dc.Buffers {
		a := p.attrs[i]
		if b == nil {
			return fmt.Errorf("%w: %s: attribute %q has no buffer", ErrBinding, p.label, a.Name)
		}
		if b.components != a.Components {
			return fmt.Errorf("%w: %s: attribute %q wants %d components, buffer has %d",
				ErrBinding, p.label, a.Name, a.Components, b.components)
		}
		if available < 0 || b.count < available {
			available = b.count
		}
	}
	if available < 0 {
		available = 0
	}
	if dc.First+dc.Count > available {
		return fmt.Errorf("%w: %s: vertices [%d, %d) of %d",
			ErrVertexRange, p.label, dc.First, dc.First+dc.Count, available)
	}

	if p.uniformBGL != nil {
		if dc.Uniforms == nil || dc.Uniforms.layout != p.uniforms {
			return fmt.Errorf("%w: %s: uniforms missing or built for another program", ErrBinding, p.label)
		}
		if dc.Slot < 0 || dc.Slot >= dc.Uniforms.Slots() {
			return fmt.Errorf("%w: %d of %d", ErrUniformSlot, dc.Slot, dc.Uniforms.Slots())
		}
	}
	var texGroup hal.BindGroup
	if p.textured {
		if dc.Texture == nil {
			return fmt.Errorf("%w: %s: texture missing", ErrBinding, p.label)
		}
		bg, err := dc.Texture.bindGroup(p)
		if err != nil {
			return err
		}
		texGroup = bg
	}

	if p.uniformBGL != nil {
		if err := dc.Uniforms.flush(dc.Slot); err != nil {
			return err
		}
	}

	f.pass.SetPipeline(p.pipeline)
	if p.uniformBGL != nil {
		f.pass.SetBindGroup(0, dc.Uniforms.groups[dc.Slot], nil)
	}
	if texGroup != nil {
		f.pass.SetBindGroup(p.textureGroup, texGroup, nil)
	}
	for i, b := range dc.Buffers {
		f.pass.SetVertexBuffer(uint32(i), b.buf, 0)
	}
	f.pass.Draw(uint32(dc.Count), 1, uint32(dc.First), 0)

	n := uint64(dc.Count)
	f.vertices += n
	st := &f.target.dev.stats
	st.drawCalls.Add(1)
	st.vertices.Add(n)
	return nil
}

// End finishes the pass, submits it and waits for the GPU. With readback
// the color attachment is copied back and returned.
func (f *Frame) End(readback bool) (*image.RGBA, error) {
	if f.ended {
		return nil, ErrFrameEnded
	}
	f.ended = true
	t := f.target
	dev := t.dev
	defer func() { t.active = nil }()

	f.pass.End()

	var (
		staging     hal.Buffer
		paddedRow   uint32
		width       = uint32(t.width)
		height      = uint32(t.height)
		tightRow    = width * 4
		stagingSize uint64
	)
	if readback {
		paddedRow = uint32(alignUp(int(tightRow), copyRowAlign))
		stagingSize = uint64(paddedRow) * uint64(height)
		var err error
		staging, err = dev.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "readback",
			Size:  stagingSize,
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			f.encoder.DiscardEncoding()
			return nil, fmt.Errorf("gfx: create readback buffer: %w", err)
		}
		defer dev.device.DestroyBuffer(staging)

		f.encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: t.color,
			Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		f.encoder.CopyTextureToBuffer(t.color, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{BytesPerRow: paddedRow, RowsPerImage: height},
			TextureBase: hal.ImageCopyTexture{
				Texture: t.color,
				Aspect:  gputypes.TextureAspectAll,
			},
			Size: hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		}})
	}

	cmdBuf, err := f.encoder.EndEncoding()
	if err != nil {
		f.encoder.DiscardEncoding()
		return nil, fmt.Errorf("gfx: end encoding: %w", err)
	}
	err = dev.submit(cmdBuf)
	dev.device.FreeCommandBuffer(cmdBuf)
	if err != nil {
		return nil, err
	}

	dev.stats.frames.Add(1)
	dev.stats.lastFrameVertices.Store(f.vertices)

	if !readback {
		return nil, nil
	}
	return readPixels(dev.device, staging, stagingSize, int(width), int(height), int(paddedRow))
}

// readPixels maps the staging buffer and strips the row padding.
func readPixels(d hal.Device, buf hal.Buffer, size uint64, width, height, paddedRow int) (*image.RGBA, error) {
	mapping, err := d.MapBuffer(buf, 0, size)
	if err != nil {
		return nil, fmt.Errorf("gfx: map readback buffer: %w", err)
	}
	src := unsafe.Slice((*byte)(mapping.Ptr), size)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+width*4], src[y*paddedRow:])
	}
	if err := d.UnmapBuffer(buf); err != nil {
		return nil, fmt.Errorf("gfx: unmap readback buffer: %w", err)
	}
	return img, nil
}
