package exercise

import (
	"github.com/chewxy/math32"

	"github.com/posecare/posecare/pkg/gen"
	"github.com/posecare/posecare/pkg/pose"
)

// Form quality maps the current joint angles onto 0..100. The value stored
// on the machine is sticky: a frame that yields no score leaves the
// previous value in place.

// quality computes this frame's score, or false if it is not measurable.
func (m *Machine) quality(lm *pose.Landmarks) (int, bool) {
	switch m.exercise {
	case Squat:
		return kneeQuality(lm, depthScore)
	case SitToStand:
		return kneeQuality(lm, extensionScore)
	case LegRaise:
		return legRaiseQuality(lm)
	}
	return 0, false
}

// depthScore rewards a deep bend: 100% at 90 degrees, 0% at 180.
func depthScore(angle float32) float32 {
	return gen.Clamp((180-angle)/90, 0, 1)
}

// extensionScore rewards full extension: 0% at 120 degrees, 100% at 180.
func extensionScore(angle float32) float32 {
	return gen.Clamp((angle-120)/60, 0, 1)
}

// kneeQuality averages a per-knee score over both knees. Both knee angles
// must be measurable.
func kneeQuality(lm *pose.Landmarks, score func(float32) float32) (int, bool) {
	left, okL := pose.KneeAngle(lm, pose.SideLeft)
	right, okR := pose.KneeAngle(lm, pose.SideRight)
	if !okL || !okR {
		return 0, false
	}
	q := (score(left) + score(right)) / 2
	return int(math32.Round(100 * q)), true
}

// legRaiseQuality averages the raise score over whichever hip angles are
// available (one side is enough).
func legRaiseQuality(lm *pose.Landmarks) (int, bool) {
	total := float32(0)
	n := 0
	for _, side := range []pose.Side{pose.SideLeft, pose.SideRight} {
		if angle, ok := pose.HipAngle(lm, side); ok {
			total += depthScore(angle)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return int(math32.Round(100 * total / float32(n))), true
}
