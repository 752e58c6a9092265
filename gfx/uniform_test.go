package gfx

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/fundamentals"
)

func TestUniformLayoutOffsets(t *testing.T) {
	tests := []struct {
		name    string
		fields  []UniformField
		offsets map[string]int
		size    int
	}{
		{
			name:    "color only",
			fields:  []UniformField{{"color", UniformVec4}},
			offsets: map[string]int{"color": 0},
			size:    16,
		},
		{
			name:    "vec2 then vec4",
			fields:  []UniformField{{"resolution", UniformVec2}, {"color", UniformVec4}},
			offsets: map[string]int{"resolution": 0, "color": 16},
			size:    32,
		},
		{
			name:    "color and mat3",
			fields:  []UniformField{{"color", UniformVec4}, {"matrix", UniformMat3}},
			offsets: map[string]int{"color": 0, "matrix": 16},
			size:    64,
		},
		{
			name:    "float packs after vec3",
			fields:  []UniformField{{"dir", UniformVec3}, {"t", UniformFloat}},
			offsets: map[string]int{"dir": 0, "t": 12},
			size:    16,
		},
		{
			name:    "mat4",
			fields:  []UniformField{{"t", UniformFloat}, {"matrix", UniformMat4}},
			offsets: map[string]int{"t": 0, "matrix": 16},
			size:    80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewUniformLayout(tt.fields...)
			if err != nil {
				t.Fatalf("NewUniformLayout: %v", err)
			}
			for name, want := range tt.offsets {
				got, ok := l.Offset(name)
				if !ok || got != want {
					t.Errorf("Offset(%q) = %d, %v; want %d", name, got, ok, want)
				}
			}
			if l.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", l.Size(), tt.size)
			}
		})
	}
}

func TestUniformLayoutErrors(t *testing.T) {
	if _, err := NewUniformLayout(UniformField{"a", UniformType(99)}); err == nil {
		t.Error("unsupported type accepted")
	}
	if _, err := NewUniformLayout(UniformField{"a", UniformFloat}, UniformField{"a", UniformVec2}); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestMustUniformLayoutPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustUniformLayout did not panic")
		}
	}()
	MustUniformLayout(UniformField{"a", 0})
}

func TestUniformTypeString(t *testing.T) {
	if got := UniformMat3.String(); got != "mat3x3<f32>" {
		t.Errorf("UniformMat3.String() = %q", got)
	}
	if got := UniformType(42).String(); got != "UniformType(42)" {
		t.Errorf("UniformType(42).String() = %q", got)
	}
}

func floatAt(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func TestUniformsSet(t *testing.T) {
	dev := openNoop(t)
	p := newTestProgram(t, dev)

	u, err := dev.NewUniforms(p, 2)
	if err != nil {
		t.Fatalf("NewUniforms: %v", err)
	}
	defer u.Release()

	if u.Slots() != 2 {
		t.Errorf("Slots() = %d, want 2", u.Slots())
	}
	if err := u.Set(1, "color", fundamentals.RGB(0.25, 0.5, 0.75)); err != nil {
		t.Fatalf("Set color: %v", err)
	}
	m := fundamentals.Translation(10, 20)
	if err := u.Set(1, "matrix", m); err != nil {
		t.Fatalf("Set matrix: %v", err)
	}

	b := u.Staged(1)
	if len(b) != testLayout.Size() {
		t.Fatalf("Staged len = %d, want %d", len(b), testLayout.Size())
	}
	wantColor := []float32{0.25, 0.5, 0.75, 1}
	for i, w := range wantColor {
		if got := floatAt(b, i); got != w {
			t.Errorf("color[%d] = %v, want %v", i, got, w)
		}
	}
	// Columns start at 16, 32, 48 and carry one float of padding each.
	for col := 0; col < 3; col++ {
		base := 4 + col*4
		for row := 0; row < 3; row++ {
			if got, want := floatAt(b, base+row), m[col*3+row]; got != want {
				t.Errorf("matrix col %d row %d = %v, want %v", col, row, got, want)
			}
		}
		if pad := floatAt(b, base+3); pad != 0 {
			t.Errorf("matrix col %d padding = %v, want 0", col, pad)
		}
	}

	for _, v := range u.Staged(0) {
		if v != 0 {
			t.Fatal("slot 0 modified by writes to slot 1")
		}
	}
}

func TestUniformsSetErrors(t *testing.T) {
	dev := openNoop(t)
	p := newTestProgram(t, dev)
	u, err := dev.NewUniforms(p, 1)
	if err != nil {
		t.Fatalf("NewUniforms: %v", err)
	}
	defer u.Release()

	tests := []struct {
		name  string
		slot  int
		field string
		value any
		want  error
	}{
		{"bad slot", 1, "color", fundamentals.Black, ErrUniformSlot},
		{"negative slot", -1, "color", fundamentals.Black, ErrUniformSlot},
		{"unknown field", 0, "colour", fundamentals.Black, ErrUnknownUniform},
		{"mat4 for mat3", 0, "matrix", fundamentals.Identity4(), ErrUniformType},
		{"float for vec4", 0, "color", float32(1), ErrUniformType},
		{"float64", 0, "color", 1.0, ErrUniformType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := u.Set(tt.slot, tt.field, tt.value); !errors.Is(err, tt.want) {
				t.Errorf("Set error = %v, want %v", err, tt.want)
			}
		})
	}
	if u.Staged(5) != nil {
		t.Error("Staged(5) should be nil")
	}
}

func TestNewUniformsErrors(t *testing.T) {
	dev := openNoop(t)
	p := newTestProgram(t, dev)
	if _, err := dev.NewUniforms(p, 0); !errors.Is(err, ErrUniformSlot) {
		t.Errorf("NewUniforms(0 slots) error = %v, want ErrUniformSlot", err)
	}

	plain, err := dev.NewProgram(ProgramDesc{
		Label:      "plain",
		Source:     texturedShader,
		Attributes: []Attribute{{"position", 2}, {"uv", 2}},
		Textured:   true,
	})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	defer plain.Release()
	if _, err := dev.NewUniforms(plain, 1); !errors.Is(err, ErrBinding) {
		t.Errorf("NewUniforms(no block) error = %v, want ErrBinding", err)
	}
}
