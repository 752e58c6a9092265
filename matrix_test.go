package fundamentals

import (
	"math"
	"testing"
)

const eps = 1e-5

func TestMat3IdentityConstructors(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
	}{
		{"identity", Identity3()},
		{"zero translation", Translation(0, 0)},
		{"zero rotation", Rotation(0)},
		{"unit scale", Scaling(1, 1)},
		{"identity product", Identity3().Multiply(Identity3())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.m.ApproxEqual(Identity3(), eps) {
				t.Errorf("%s = %v, want identity", tt.name, tt.m)
			}
		})
	}
}

func TestMat3TranslationInverse(t *testing.T) {
	tests := []struct{ tx, ty float32 }{
		{0, 0},
		{10, 20},
		{-5, 3.5},
		{1e4, -1e4},
	}
	for _, tt := range tests {
		got := Translation(tt.tx, tt.ty).Multiply(Translation(-tt.tx, -tt.ty))
		if !got.ApproxEqual(Identity3(), eps) {
			t.Errorf("Translation(%v, %v) * Translation(-tx, -ty) = %v, want identity", tt.tx, tt.ty, got)
		}
	}
}

func TestMat3MultiplyOrder(t *testing.T) {
	// Translate after scaling: the point is scaled first.
	m := Translation(10, 0).Multiply(Scaling(2, 2))
	x, y := m.TransformPoint(1, 1)
	if x != 12 || y != 2 {
		t.Errorf("TransformPoint(1, 1) = (%v, %v), want (12, 2)", x, y)
	}

	m = Scaling(2, 2).Multiply(Translation(10, 0))
	x, y = m.TransformPoint(1, 1)
	if x != 22 || y != 2 {
		t.Errorf("TransformPoint(1, 1) = (%v, %v), want (22, 2)", x, y)
	}
}

func TestMat3ChainedHelpers(t *testing.T) {
	want := Translation(5, 6).Multiply(Rotation(0.3)).Multiply(Scaling(2, 3))
	got := Identity3().Translate(5, 6).Rotate(0.3).Scale(2, 3)
	if !got.ApproxEqual(want, eps) {
		t.Errorf("chained = %v, want %v", got, want)
	}
}

func TestProjectionCorners(t *testing.T) {
	p := Projection(400, 300)
	tests := []struct {
		name       string
		x, y       float32
		wantX, wantY float32
	}{
		{"top left", 0, 0, -1, 1},
		{"bottom right", 400, 300, 1, -1},
		{"center", 200, 150, 0, 0},
		{"bottom left", 0, 300, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := p.TransformPoint(tt.x, tt.y)
			if math.Abs(float64(x-tt.wantX)) > eps || math.Abs(float64(y-tt.wantY)) > eps {
				t.Errorf("TransformPoint(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRotationQuarterTurn(t *testing.T) {
	x, y := Rotation(math.Pi/2).TransformPoint(1, 0)
	if math.Abs(float64(x)) > eps || math.Abs(float64(y+1)) > eps {
		t.Errorf("Rotation(pi/2) * (1, 0) = (%v, %v), want (0, -1)", x, y)
	}
}

func TestMat3IsIdentity(t *testing.T) {
	if !Identity3().IsIdentity() {
		t.Error("Identity3().IsIdentity() = false")
	}
	if Translation(1, 0).IsIdentity() {
		t.Error("Translation(1, 0).IsIdentity() = true")
	}
}

func TestLetterFTransform(t *testing.T) {
	// The F rotates around its center: translating by (-50, -75) and back
	// leaves the origin corner where it started.
	m := Translation(50, 75).Multiply(Rotation(0)).Multiply(Translation(-50, -75))
	x, y := m.TransformPoint(0, 0)
	if x != 0 || y != 0 {
		t.Errorf("TransformPoint(0, 0) = (%v, %v), want (0, 0)", x, y)
	}
}

func BenchmarkMat3Multiply(b *testing.B) {
	m := Projection(800, 600).Translate(100, 100).Rotate(0.5)
	s := Scaling(1, 0.75)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m = m.Multiply(s)
	}
	_ = m
}
