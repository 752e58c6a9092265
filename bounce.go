package fundamentals

import "math/rand/v2"

// Bounce is the animation state of a box that travels diagonally one pixel
// per frame and bounces off the edges of its bounds. A new random color is
// picked every time the box changes direction.
type Bounce struct {
	// Pos is the top-left corner of the box in pixels.
	Pos [2]float32

	// Size is the bounding box used for wall collision.
	Size [2]float32

	// Angle is the rotation in degrees, advanced by AngleStep each frame.
	Angle     float32
	AngleStep float32

	// Scale is applied to the shape before rotation.
	Scale [2]float32

	Color Color

	// XRight and YDown are the current movement directions.
	XRight bool
	YDown  bool
}

// NewBounce places a box of the given size at a random position inside
// bounds, moving right and down.
func NewBounce(r *rand.Rand, bounds, size [2]float32) *Bounce {
	return &Bounce{
		Pos: [2]float32{
			float32(RandomInt(r, int(bounds[0]-size[0]))),
			float32(RandomInt(r, int(bounds[1]-size[1]))),
		},
		Size:   size,
		Scale:  [2]float32{1, 1},
		Color:  RandomColor(r),
		XRight: true,
		YDown:  true,
	}
}

// Step advances the animation by one frame and reports whether the box
// changed direction on either axis.
//
// The box moves first, then each axis is checked: a position at or below 0
// sends it right (down), a far edge at or beyond the bound sends it left
// (up).
func (b *Bounce) Step(bounds [2]float32, r *rand.Rand) bool {
	b.Angle += b.AngleStep

	if b.XRight {
		b.Pos[0]++
	} else {
		b.Pos[0]--
	}
	if b.YDown {
		b.Pos[1]++
	} else {
		b.Pos[1]--
	}

	flipped := false
	if b.Pos[0] <= 0 && !b.XRight {
		b.XRight = true
		flipped = true
	}
	if b.Pos[0]+b.Size[0] >= bounds[0] && b.XRight {
		b.XRight = false
		flipped = true
	}
	if b.Pos[1] <= 0 && !b.YDown {
		b.YDown = true
		flipped = true
	}
	if b.Pos[1]+b.Size[1] >= bounds[1] && b.YDown {
		b.YDown = false
		flipped = true
	}

	if flipped {
		b.Color = RandomColor(r)
	}
	return flipped
}
