package fundamentals

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix stored in column-major order, the layout a
// mat3x3<f32> uniform expects:
//
//	| m[0] m[3] m[6] |
//	| m[1] m[4] m[7] |
//	| m[2] m[5] m[8] |
//
// The 2D affine helpers below keep the translation in m[6] and m[7], so a
// point is transformed as
//
//	x' = m[0]*x + m[3]*y + m[6]
//	y' = m[1]*x + m[4]*y + m[7]
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Projection returns a matrix that maps pixel coordinates in a
// width x height area to clip space. The Y axis is flipped so that 0 is at
// the top.
func Projection(width, height float32) Mat3 {
	return Mat3{
		2 / width, 0, 0,
		0, -2 / height, 0,
		-1, 1, 1,
	}
}

// Translation creates a translation matrix.
func Translation(tx, ty float32) Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		tx, ty, 1,
	}
}

// Rotation creates a rotation matrix (angle in radians).
func Rotation(angle float32) Mat3 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Scaling creates a scaling matrix.
func Scaling(sx, sy float32) Mat3 {
	return Mat3{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// Multiply returns m * b. Applied to a point, b acts first.
func (m Mat3) Multiply(b Mat3) Mat3 {
	a00, a01, a02 := m[0], m[1], m[2]
	a10, a11, a12 := m[3], m[4], m[5]
	a20, a21, a22 := m[6], m[7], m[8]
	b00, b01, b02 := b[0], b[1], b[2]
	b10, b11, b12 := b[3], b[4], b[5]
	b20, b21, b22 := b[6], b[7], b[8]

	return Mat3{
		b00*a00 + b01*a10 + b02*a20,
		b00*a01 + b01*a11 + b02*a21,
		b00*a02 + b01*a12 + b02*a22,
		b10*a00 + b11*a10 + b12*a20,
		b10*a01 + b11*a11 + b12*a21,
		b10*a02 + b11*a12 + b12*a22,
		b20*a00 + b21*a10 + b22*a20,
		b20*a01 + b21*a11 + b22*a21,
		b20*a02 + b21*a12 + b22*a22,
	}
}

// Translate returns m * Translation(tx, ty).
func (m Mat3) Translate(tx, ty float32) Mat3 {
	return m.Multiply(Translation(tx, ty))
}

// Rotate returns m * Rotation(angle).
func (m Mat3) Rotate(angle float32) Mat3 {
	return m.Multiply(Rotation(angle))
}

// Scale returns m * Scaling(sx, sy).
func (m Mat3) Scale(sx, sy float32) Mat3 {
	return m.Multiply(Scaling(sx, sy))
}

// TransformPoint applies the transformation to the point (x, y, 1).
func (m Mat3) TransformPoint(x, y float32) (float32, float32) {
	return m[0]*x + m[3]*y + m[6], m[1]*x + m[4]*y + m[7]
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Mat3) IsIdentity() bool {
	return m == Identity3()
}

// ApproxEqual reports whether every element of m is within eps of the
// corresponding element of b.
func (m Mat3) ApproxEqual(b Mat3, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
