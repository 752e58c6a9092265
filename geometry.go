package fundamentals

// Vertex counts of the fixed shapes, as passed to the draw call.
const (
	TriangleVertices  = 3
	RectangleVertices = 6
	LetterFVertices   = 18
	CubeVertices      = 36
)

// Dimensions of the letter F.
const (
	letterFWidth     = 100
	letterFHeight    = 150
	letterFThickness = 30
)

// BasicTriangle returns three 2D clip-space points of a right triangle.
func BasicTriangle() []float32 {
	return []float32{
		0, 0,
		0, 0.5,
		0.7, 0,
	}
}

// TriangleClip returns three 2D clip-space points of a centered triangle.
func TriangleClip() []float32 {
	return []float32{
		-0.5, -0.5,
		0.5, -0.5,
		0, 0.5,
	}
}

// TriangleColors returns one RGBA color per TriangleClip vertex.
func TriangleColors() []float32 {
	return []float32{
		1, 0, 0, 1,
		0, 1, 0, 1,
		0, 0, 1, 1,
	}
}

// Rectangle returns two triangles covering the rectangle at (x, y) with
// the given size.
func Rectangle(x, y, width, height float32) []float32 {
	x1, x2 := x, x+width
	y1, y2 := y, y+height
	return []float32{
		x1, y1,
		x2, y1,
		x1, y2,
		x1, y2,
		x2, y1,
		x2, y2,
	}
}

// AppendRectangle appends the Rectangle vertices to dst.
func AppendRectangle(dst []float32, x, y, width, height float32) []float32 {
	return append(dst, Rectangle(x, y, width, height)...)
}

// LetterF returns the 2D triangles of a 100x150 letter F whose top-left
// corner is at (x, y).
func LetterF(x, y float32) []float32 {
	const (
		w = letterFWidth
		h = letterFHeight
		t = letterFThickness
		m = w * 2.0 / 3
	)
	return []float32{
		// left column
		x, y,
		x + t, y,
		x, y + h,
		x, y + h,
		x + t, y,
		x + t, y + h,

		// top rung
		x + t, y,
		x + w, y,
		x + t, y + t,
		x + t, y + t,
		x + w, y,
		x + w, y + t,

		// middle rung
		x + t, y + t*2,
		x + m, y + t*2,
		x + t, y + t*3,
		x + t, y + t*3,
		x + m, y + t*2,
		x + m, y + t*3,
	}
}

// CenteredLetterF returns LetterF centered on the origin, so rotation and
// scaling happen around its middle.
func CenteredLetterF() []float32 {
	return LetterF(-letterFWidth/2, -letterFHeight/2)
}

// Cube returns the 3D positions of a unit cube centered on the origin,
// two counter-clockwise triangles per face.
func Cube() []float32 {
	return []float32{
		-0.5, -0.5, -0.5,
		-0.5, 0.5, -0.5,
		0.5, -0.5, -0.5,
		-0.5, 0.5, -0.5,
		0.5, 0.5, -0.5,
		0.5, -0.5, -0.5,

		-0.5, -0.5, 0.5,
		0.5, -0.5, 0.5,
		-0.5, 0.5, 0.5,
		-0.5, 0.5, 0.5,
		0.5, -0.5, 0.5,
		0.5, 0.5, 0.5,

		-0.5, 0.5, -0.5,
		-0.5, 0.5, 0.5,
		0.5, 0.5, -0.5,
		-0.5, 0.5, 0.5,
		0.5, 0.5, 0.5,
		0.5, 0.5, -0.5,

		-0.5, -0.5, -0.5,
		0.5, -0.5, -0.5,
		-0.5, -0.5, 0.5,
		-0.5, -0.5, 0.5,
		0.5, -0.5, -0.5,
		0.5, -0.5, 0.5,

		-0.5, -0.5, -0.5,
		-0.5, -0.5, 0.5,
		-0.5, 0.5, -0.5,
		-0.5, -0.5, 0.5,
		-0.5, 0.5, 0.5,
		-0.5, 0.5, -0.5,

		0.5, -0.5, -0.5,
		0.5, 0.5, -0.5,
		0.5, -0.5, 0.5,
		0.5, -0.5, 0.5,
		0.5, 0.5, -0.5,
		0.5, 0.5, 0.5,
	}
}

// CubeTexcoords returns texture coordinates for Cube. The texture is a
// 4x2 grid of images; each face selects one cell.
func CubeTexcoords() []float32 {
	return []float32{
		// bottom left image
		0, 0,
		0, 0.5,
		0.25, 0,
		0, 0.5,
		0.25, 0.5,
		0.25, 0,
		// bottom middle image
		0.25, 0,
		0.5, 0,
		0.25, 0.5,
		0.25, 0.5,
		0.5, 0,
		0.5, 0.5,
		// bottom right image
		0.5, 0,
		0.5, 0.5,
		0.75, 0,
		0.5, 0.5,
		0.75, 0.5,
		0.75, 0,
		// top left image
		0, 0.5,
		0.25, 0.5,
		0, 1,
		0, 1,
		0.25, 0.5,
		0.25, 1,
		// top middle image
		0.25, 0.5,
		0.25, 1,
		0.5, 0.5,
		0.25, 1,
		0.5, 1,
		0.5, 0.5,
		// top right image
		0.5, 0.5,
		0.75, 0.5,
		0.5, 1,
		0.5, 1,
		0.75, 0.5,
		0.75, 1,
	}
}
