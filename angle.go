package fundamentals

import "github.com/chewxy/math32"

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// AngleToRotation returns the unit vector (sin, cos) for an angle in
// degrees. The 2D rotation shaders consume it as a vec2 uniform.
func AngleToRotation(deg float32) [2]float32 {
	rad := DegToRad(deg)
	return [2]float32{math32.Sin(rad), math32.Cos(rad)}
}
