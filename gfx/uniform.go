package gfx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fundamentals"
)

// UniformType is the WGSL type of a uniform block member.
type UniformType uint8

// Supported uniform types.
const (
	UniformFloat UniformType = iota + 1 // f32
	UniformVec2                         // vec2<f32>
	UniformVec3                         // vec3<f32>
	UniformVec4                         // vec4<f32>
	UniformMat3                         // mat3x3<f32>
	UniformMat4                         // mat4x4<f32>
)

// String returns the WGSL spelling of the type.
func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "f32"
	case UniformVec2:
		return "vec2<f32>"
	case UniformVec3:
		return "vec3<f32>"
	case UniformVec4:
		return "vec4<f32>"
	case UniformMat3:
		return "mat3x3<f32>"
	case UniformMat4:
		return "mat4x4<f32>"
	default:
		return fmt.Sprintf("UniformType(%d)", uint8(t))
	}
}

// sizeAlign returns the size and alignment of t in the uniform address
// space.
func (t UniformType) sizeAlign() (size, align int) {
	switch t {
	case UniformFloat:
		return 4, 4
	case UniformVec2:
		return 8, 8
	case UniformVec3:
		return 12, 16
	case UniformVec4:
		return 16, 16
	case UniformMat3:
		return 48, 16
	case UniformMat4:
		return 64, 16
	default:
		return 0, 0
	}
}

// UniformField is one member of a uniform block, in declaration order.
type UniformField struct {
	Name string
	Type UniformType
}

// UniformLayout is the memory layout of a WGSL uniform struct.
type UniformLayout struct {
	fields  []UniformField
	offsets map[string]int
	types   map[string]UniformType
	size    int
}

// NewUniformLayout computes member offsets for a uniform struct declared
// with the given fields in order. The struct size is rounded up to 16 bytes.
func NewUniformLayout(fields ...UniformField) (*UniformLayout, error) {
	l := &UniformLayout{
		fields:  append([]UniformField(nil), fields...),
		offsets: make(map[string]int, len(fields)),
		types:   make(map[string]UniformType, len(fields)),
	}
	offset := 0
	for _, f := range fields {
		size, align := f.Type.sizeAlign()
		if size == 0 {
			return nil, fmt.Errorf("gfx: uniform %q: unsupported type %v", f.Name, f.Type)
		}
		if _, dup := l.offsets[f.Name]; dup {
			return nil, fmt.Errorf("gfx: uniform %q declared twice", f.Name)
		}
		offset = alignUp(offset, align)
		l.offsets[f.Name] = offset
		l.types[f.Name] = f.Type
		offset += size
	}
	l.size = alignUp(offset, 16)
	return l, nil
}

// MustUniformLayout is like NewUniformLayout but panics on error.
// Use only with fixed field lists.
func MustUniformLayout(fields ...UniformField) *UniformLayout {
	l, err := NewUniformLayout(fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Size returns the struct size in bytes.
func (l *UniformLayout) Size() int { return l.size }

// Offset returns the byte offset of the named member.
func (l *UniformLayout) Offset(name string) (int, bool) {
	off, ok := l.offsets[name]
	return off, ok
}

// Fields returns the members in declaration order.
func (l *UniformLayout) Fields() []UniformField {
	return append([]UniformField(nil), l.fields...)
}

func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}

// uniformSlotAlign is the minimum uniform buffer offset alignment.
const uniformSlotAlign = 256

// Uniforms holds slots independent copies of a program's uniform block in
// one buffer, with one bind group per slot. Draw calls in the same frame
// that need different values use different slots.
//
// Values are staged on the CPU by Set and written to the GPU when a draw
// call uses the slot.
type Uniforms struct {
	dev    *Device
	layout *UniformLayout
	stride int
	data   []byte
	dirty  []bool
	buf    hal.Buffer
	groups []hal.BindGroup
}

// NewUniforms allocates uniform storage for p with the given number of
// slots.
func (d *Device) NewUniforms(p *Program, slots int) (*Uniforms, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	if p == nil || p.uniforms == nil || p.uniformBGL == nil {
		return nil, fmt.Errorf("%w: program has no uniform block", ErrBinding)
	}
	if slots <= 0 {
		return nil, fmt.Errorf("%w: %d slots", ErrUniformSlot, slots)
	}

	layout := p.uniforms
	stride := alignUp(layout.Size(), uniformSlotAlign)
	total := uint64(stride * slots)

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: p.label + "_uniforms",
		Size:  total,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: create uniform buffer: %w", err)
	}

	u := &Uniforms{
		dev:    d,
		layout: layout,
		stride: stride,
		data:   make([]byte, total),
		dirty:  make([]bool, slots),
		buf:    buf,
		groups: make([]hal.BindGroup, 0, slots),
	}
	for i := 0; i < slots; i++ {
		bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("%s_uniforms_%d", p.label, i),
			Layout: p.uniformBGL,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(),
					Offset: uint64(i * stride),
					Size:   uint64(layout.Size()),
				}},
			},
		})
		if err != nil {
			u.Release()
			return nil, fmt.Errorf("gfx: create uniform bind group %d: %w", i, err)
		}
		u.groups = append(u.groups, bg)
	}
	logger().Debug("gfx: uniforms created", "program", p.label, "slots", slots, "stride", stride)
	return u, nil
}

// Slots returns the number of slots.
func (u *Uniforms) Slots() int { return len(u.dirty) }

// Layout returns the block layout.
func (u *Uniforms) Layout() *UniformLayout { return u.layout }

// Set stages a value for the named member in a slot. Accepted Go types are
// float32, [2]float32, [3]float32, [4]float32, fundamentals.Color,
// fundamentals.Mat3 and fundamentals.Mat4.
func (u *Uniforms) Set(slot int, name string, value any) error {
	if slot < 0 || slot >= len(u.dirty) {
		return fmt.Errorf("%w: %d of %d", ErrUniformSlot, slot, len(u.dirty))
	}
	off, ok := u.layout.offsets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	want := u.layout.types[name]

	dst := u.data[slot*u.stride+off:]
	switch v := value.(type) {
	case float32:
		if want != UniformFloat {
			return typeMismatch(name, want, value)
		}
		putFloats(dst, v)
	case [2]float32:
		if want != UniformVec2 {
			return typeMismatch(name, want, value)
		}
		putFloats(dst, v[:]...)
	case [3]float32:
		if want != UniformVec3 {
			return typeMismatch(name, want, value)
		}
		putFloats(dst, v[:]...)
	case [4]float32:
		if want != UniformVec4 {
			return typeMismatch(name, want, value)
		}
		putFloats(dst, v[:]...)
	case fundamentals.Color:
		if want != UniformVec4 {
			return typeMismatch(name, want, value)
		}
		putFloats(dst, v[:]...)
	case fundamentals.Mat3:
		if want != UniformMat3 {
			return typeMismatch(name, want, value)
		}
		// mat3x3 columns are vec3 with a 16-byte stride.
		for col := 0; col < 3; col++ {
			putFloats(dst[col*16:], v[col*3], v[col*3+1], v[col*3+2], 0)
		}
	case fundamentals.Mat4:
		if want != UniformMat4 {
			return typeMismatch(name, want, value)
		}
		putFloats(dst, v[:]...)
	default:
		return typeMismatch(name, want, value)
	}
	u.dirty[slot] = true
	return nil
}

// Staged returns a copy of the bytes staged for a slot.
func (u *Uniforms) Staged(slot int) []byte {
	if slot < 0 || slot >= len(u.dirty) {
		return nil
	}
	start := slot * u.stride
	return append([]byte(nil), u.data[start:start+u.layout.Size()]...)
}

func typeMismatch(name string, want UniformType, value any) error {
	return fmt.Errorf("%w: %q is %v, got %T", ErrUniformType, name, want, value)
}

func putFloats(dst []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

// flush writes a dirty slot to the GPU.
func (u *Uniforms) flush(slot int) error {
	if !u.dirty[slot] {
		return nil
	}
	start := slot * u.stride
	if err := u.dev.queue.WriteBuffer(u.buf, uint64(start), u.data[start:start+u.layout.Size()]); err != nil {
		return fmt.Errorf("gfx: write uniforms: %w", err)
	}
	u.dirty[slot] = false
	return nil
}

// Release destroys the bind groups and the buffer.
func (u *Uniforms) Release() {
	for _, bg := range u.groups {
		u.dev.device.DestroyBindGroup(bg)
	}
	u.groups = nil
	if u.buf != nil {
		u.dev.device.DestroyBuffer(u.buf)
		u.buf = nil
	}
}
