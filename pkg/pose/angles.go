package pose

import (
	"github.com/chewxy/math32"
)

// Vectors shorter than this are considered degenerate for angle purposes.
const minVectorNorm = 1e-6

// Angle3pt returns the angle at vertex b of the triangle (a,b,c), in
// degrees. The result is always in [0,180]. Returns false if any of the
// three points is the invalid sentinel, or if either of the vectors a-b,
// c-b is degenerate. It never produces NaN.
func Angle3pt(a, b, c Point) (float32, bool) {
	if !a.Valid() || !b.Valid() || !c.Valid() {
		return 0, false
	}
	v1x := a.X - b.X
	v1y := a.Y - b.Y
	v2x := c.X - b.X
	v2y := c.Y - b.Y
	n1 := math32.Sqrt(v1x*v1x + v1y*v1y)
	n2 := math32.Sqrt(v2x*v2x + v2y*v2y)
	if n1 < minVectorNorm || n2 < minVectorNorm {
		return 0, false
	}
	cosx := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cosx = min(1, max(-1, cosx))
	return math32.Acos(cosx) * 180 / math32.Pi, true
}

// KneeAngle returns the hip-knee-ankle angle of one leg.
func KneeAngle(lm *Landmarks, side Side) (float32, bool) {
	if side == SideLeft {
		return Angle3pt(lm[LeftHip], lm[LeftKnee], lm[LeftAnkle])
	}
	return Angle3pt(lm[RightHip], lm[RightKnee], lm[RightAnkle])
}

// HipAngle returns the shoulder-hip-ankle angle of one side of the body.
func HipAngle(lm *Landmarks, side Side) (float32, bool) {
	if side == SideLeft {
		return Angle3pt(lm[LeftShoulder], lm[LeftHip], lm[LeftAnkle])
	}
	return Angle3pt(lm[RightShoulder], lm[RightHip], lm[RightAnkle])
}
