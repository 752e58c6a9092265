package gfx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// VertexBuffer is a GPU buffer of float32 vertex attributes with a fixed
// number of components per vertex.
type VertexBuffer struct {
	dev        *Device
	label      string
	buf        hal.Buffer
	capacity   uint64
	components int
	count      int
}

// NewVertexBuffer uploads data once. components is the number of float32
// values per vertex and must be 2, 3 or 4.
func (d *Device) NewVertexBuffer(label string, components int, data []float32) (*VertexBuffer, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	if err := checkVertexData(components, data); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	b := &VertexBuffer{dev: d, label: label, components: components}
	if err := b.upload(data); err != nil {
		return nil, err
	}
	logger().Debug("gfx: vertex buffer created", "label", label, "vertices", b.count)
	return b, nil
}

func checkVertexData(components int, data []float32) error {
	if _, err := vertexFormat(components); err != nil {
		return err
	}
	if len(data)%components != 0 {
		return fmt.Errorf("%w: %d floats is not a multiple of %d components", ErrVertexData, len(data), components)
	}
	return nil
}

func vertexFormat(components int) (gputypes.VertexFormat, error) {
	switch components {
	case 2:
		return gputypes.VertexFormatFloat32x2, nil
	case 3:
		return gputypes.VertexFormatFloat32x3, nil
	case 4:
		return gputypes.VertexFormatFloat32x4, nil
	default:
		return 0, fmt.Errorf("%w: %d components per vertex", ErrVertexData, components)
	}
}

// Count returns the number of vertices in the buffer.
func (b *VertexBuffer) Count() int { return b.count }

// Components returns the number of float32 values per vertex.
func (b *VertexBuffer) Components() int { return b.components }

// Update replaces the buffer contents. The GPU buffer is reallocated only
// when data no longer fits.
func (b *VertexBuffer) Update(data []float32) error {
	if err := b.dev.checkOpen(); err != nil {
		return err
	}
	if err := checkVertexData(b.components, data); err != nil {
		return fmt.Errorf("%s: %w", b.label, err)
	}
	return b.upload(data)
}

func (b *VertexBuffer) upload(data []float32) error {
	bytes := floatBytes(data)
	size := uint64(len(bytes))
	if size == 0 {
		b.count = 0
		return nil
	}

	if b.buf == nil || size > b.capacity {
		if b.buf != nil {
			b.dev.device.DestroyBuffer(b.buf)
			b.buf = nil
		}
		buf, err := b.dev.device.CreateBuffer(&hal.BufferDescriptor{
			Label: b.label,
			Size:  size,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("gfx: create vertex buffer %s: %w", b.label, err)
		}
		b.buf = buf
		b.capacity = size
	}

	if err := b.dev.queue.WriteBuffer(b.buf, 0, bytes); err != nil {
		return fmt.Errorf("gfx: write vertex buffer %s: %w", b.label, err)
	}
	b.count = len(data) / b.components
	return nil
}

// Release destroys the GPU buffer.
func (b *VertexBuffer) Release() {
	if b.buf != nil {
		b.dev.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
	b.count = 0
}

func floatBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}
