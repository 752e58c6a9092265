package fundamentals

import (
	"image/color"
	"math/rand/v2"
)

// Color is an RGBA color with each component in [0, 1], laid out as a
// vec4<f32> uniform.
type Color [4]float32

// Common colors.
var (
	Black = Color{0, 0, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// RandomColor returns an opaque color with random RGB components.
func RandomColor(r *rand.Rand) Color {
	return Color{r.Float32(), r.Float32(), r.Float32(), 1}
}

// RGBA8 converts c to an 8-bit non-premultiplied color.
func (c Color) RGBA8() color.NRGBA {
	return color.NRGBA{
		R: to255(c[0]),
		G: to255(c[1]),
		B: to255(c[2]),
		A: to255(c[3]),
	}
}

func to255(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// RandomInt returns a random integer in [0, n). It returns 0 when n <= 0,
// which keeps a box larger than its bounds pinned at the origin.
func RandomInt(r *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return r.IntN(n)
}
