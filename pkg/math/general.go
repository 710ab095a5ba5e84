package math

import "math"

// TwoPi is a full turn in radians.
const TwoPi = math.Pi * 2

// Average returns the midpoint of a and b.
func Average(a, b Vec3) Vec3 {
	return Vec3{(a.X + b.X) / 2, (a.Y + b.Y) / 2, (a.Z + b.Z) / 2}
}

// Centroid returns the mean of three points.
func Centroid(a, b, c Vec3) Vec3 {
	return Vec3{
		(a.X + b.X + c.X) / 3,
		(a.Y + b.Y + c.Y) / 3,
		(a.Z + b.Z + c.Z) / 3,
	}
}

// PitchBetween returns the pitch angle from a to b: the vertical delta over
// the horizontal distance.
func PitchBetween(a, b Vec3) float64 {
	return math.Atan2(b.Y-a.Y, a.Distance2D(b))
}

// MinAngleDifference returns the signed smallest rotation from a1 to a2,
// in (-Pi, Pi].
func MinAngleDifference(a1, a2 float64) float64 {
	return math.Atan2(math.Sin(a2-a1), math.Cos(a2-a1))
}
