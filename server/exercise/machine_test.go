package exercise

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"github.com/posecare/posecare/pkg/pose"
)

func invalidLandmarks() pose.Landmarks {
	var lm pose.Landmarks
	for i := range lm {
		lm[i] = pose.InvalidPoint
	}
	return lm
}

// placeLeg writes hip/knee/ankle landmarks for one leg such that the knee
// angle equals kneeDeg. The thigh points straight up from the knee.
func placeLeg(lm *pose.Landmarks, side pose.Side, kneeDeg float32) {
	hip, knee, ankle := pose.LeftHip, pose.LeftKnee, pose.LeftAnkle
	offset := float32(0)
	if side == pose.SideRight {
		hip, knee, ankle = pose.RightHip, pose.RightKnee, pose.RightAnkle
		offset = 200
	}
	rad := kneeDeg * math32.Pi / 180
	lm[hip] = pose.Point{X: 100 + offset, Y: 100}
	lm[knee] = pose.Point{X: 100 + offset, Y: 200}
	lm[ankle] = pose.Point{
		X: 100 + offset + 100*math32.Sin(rad),
		Y: 200 - 100*math32.Cos(rad),
	}
}

// legPose returns landmarks where both knees measure kneeDeg.
func legPose(kneeDeg float32) pose.Landmarks {
	lm := invalidLandmarks()
	placeLeg(&lm, pose.SideLeft, kneeDeg)
	placeLeg(&lm, pose.SideRight, kneeDeg)
	return lm
}

// placeHip writes shoulder/hip/ankle landmarks for one side such that the
// hip angle equals hipDeg. The torso points straight up from the hip.
func placeHip(lm *pose.Landmarks, side pose.Side, hipDeg float32) {
	shoulder, hip, ankle := pose.LeftShoulder, pose.LeftHip, pose.LeftAnkle
	offset := float32(0)
	if side == pose.SideRight {
		shoulder, hip, ankle = pose.RightShoulder, pose.RightHip, pose.RightAnkle
		offset = 200
	}
	rad := hipDeg * math32.Pi / 180
	lm[shoulder] = pose.Point{X: 100 + offset, Y: 20}
	lm[hip] = pose.Point{X: 100 + offset, Y: 120}
	lm[ankle] = pose.Point{
		X: 100 + offset + 100*math32.Sin(rad),
		Y: 120 - 100*math32.Cos(rad),
	}
}

func advanceN(m *Machine, lm pose.Landmarks, n int) {
	for i := 0; i < n; i++ {
		m.Advance(&lm)
	}
}

func TestSquatCountsOneRep(t *testing.T) {
	m := NewMachine(Squat, DefaultConfig())

	// 170,170,170,100,100,100,170,170,170 => exactly one rep, ends "up"
	advanceN(m, legPose(170), 3)
	require.Equal(t, PhaseUp, m.Phase())
	require.Equal(t, 0, m.Reps())

	advanceN(m, legPose(100), 3)
	require.Equal(t, PhaseDown, m.Phase())
	require.Equal(t, 0, m.Reps())

	advanceN(m, legPose(170), 3)
	require.Equal(t, PhaseUp, m.Phase())
	require.Equal(t, 1, m.Reps())
}

func TestSquatBriefDipDoesNotCount(t *testing.T) {
	m := NewMachine(Squat, DefaultConfig())

	advanceN(m, legPose(170), 3)
	// Only 2 frames below the flex threshold: dwell never reaches 3
	advanceN(m, legPose(100), 2)
	advanceN(m, legPose(170), 5)
	require.Equal(t, 0, m.Reps())
	require.Equal(t, PhaseUp, m.Phase())
}

func TestSquatDwellResetsOnConditionFailure(t *testing.T) {
	m := NewMachine(Squat, DefaultConfig())

	advanceN(m, legPose(170), 1) // init to "up"
	// Interleave a condition failure: dwell must restart from zero
	advanceN(m, legPose(100), 2)
	advanceN(m, legPose(170), 1)
	advanceN(m, legPose(100), 2)
	require.Equal(t, PhaseUp, m.Phase())
	advanceN(m, legPose(100), 1)
	require.Equal(t, PhaseDown, m.Phase())
}

func TestMissingMeasurementIsNoOp(t *testing.T) {
	m := NewMachine(Squat, DefaultConfig())

	advanceN(m, legPose(170), 1) // init to "up"
	advanceN(m, legPose(100), 2) // dwell = 2

	// Occluded frames mutate nothing; in particular they do NOT reset
	// dwell the way a failed condition does.
	occluded := invalidLandmarks()
	advanceN(m, occluded, 4)
	require.Equal(t, PhaseUp, m.Phase())

	// One more flexed frame completes the dwell
	advanceN(m, legPose(100), 1)
	require.Equal(t, PhaseDown, m.Phase())
}

func TestSquatRequiresBothKnees(t *testing.T) {
	m := NewMachine(Squat, DefaultConfig())

	oneLeg := invalidLandmarks()
	placeLeg(&oneLeg, pose.SideLeft, 100)
	advanceN(m, oneLeg, 10)
	// Never initialized: one knee is not a valid squat measurement
	require.Equal(t, PhaseNone, m.Phase())
	require.Equal(t, 0, m.Reps())
}

func TestSitToStandCountsOnlyOnStand(t *testing.T) {
	m := NewMachine(SitToStand, DefaultConfig())

	advanceN(m, legPose(170), 1) // init to "sit"
	require.Equal(t, PhaseSit, m.Phase())

	advanceN(m, legPose(170), 3) // sit -> stand counts
	require.Equal(t, PhaseStand, m.Phase())
	require.Equal(t, 1, m.Reps())

	advanceN(m, legPose(100), 3) // stand -> sit does not count
	require.Equal(t, PhaseSit, m.Phase())
	require.Equal(t, 1, m.Reps())

	advanceN(m, legPose(170), 3)
	require.Equal(t, PhaseStand, m.Phase())
	require.Equal(t, 2, m.Reps())
}

func TestLegRaiseCountsOnLower(t *testing.T) {
	m := NewMachine(LegRaise, DefaultConfig())

	down := invalidLandmarks()
	placeHip(&down, pose.SideLeft, 175)
	placeHip(&down, pose.SideRight, 175)
	raised := invalidLandmarks()
	placeHip(&raised, pose.SideLeft, 100)
	placeHip(&raised, pose.SideRight, 175)

	advanceN(m, down, 1) // init to "down"
	require.Equal(t, PhaseDown, m.Phase())

	// One raised leg is enough to enter "up" (no rep yet)
	advanceN(m, raised, 3)
	require.Equal(t, PhaseUp, m.Phase())
	require.Equal(t, 0, m.Reps())

	// Both legs down completes the rep
	advanceN(m, down, 3)
	require.Equal(t, PhaseDown, m.Phase())
	require.Equal(t, 1, m.Reps())
}

func TestLegRaiseSingleSideAsymmetry(t *testing.T) {
	// With only one measurable side, that side alone decides: a raised
	// single leg reads as "up", a lowered single leg reads as "down"
	// (the unmeasured side vacuously satisfies the down condition).
	m := NewMachine(LegRaise, DefaultConfig())

	soloDown := invalidLandmarks()
	placeHip(&soloDown, pose.SideLeft, 175)
	soloRaised := invalidLandmarks()
	placeHip(&soloRaised, pose.SideLeft, 100)

	advanceN(m, soloDown, 1)
	require.Equal(t, PhaseDown, m.Phase())

	advanceN(m, soloRaised, 3)
	require.Equal(t, PhaseUp, m.Phase())

	advanceN(m, soloDown, 3)
	require.Equal(t, PhaseDown, m.Phase())
	require.Equal(t, 1, m.Reps())
}

func TestReset(t *testing.T) {
	m := NewMachine(Squat, DefaultConfig())
	advanceN(m, legPose(170), 3)
	advanceN(m, legPose(100), 3)
	advanceN(m, legPose(170), 3)
	require.Equal(t, 1, m.Reps())
	require.NotZero(t, m.FormPct())

	m.Reset(SitToStand)
	require.Equal(t, SitToStand, m.Exercise())
	require.Equal(t, 0, m.Reps())
	require.Equal(t, PhaseNone, m.Phase())
	require.Equal(t, 0, m.FormPct())

	snap := m.Snapshot()
	require.Equal(t, "sit_to_stand", snap.Exercise)
	require.Equal(t, "Sit to Stand", snap.DisplayName)
	require.Equal(t, 0, snap.Reps)
}

func TestParseExercise(t *testing.T) {
	ex, ok := ParseExercise("squat")
	require.True(t, ok)
	require.Equal(t, Squat, ex)

	ex, ok = ParseExercise("sts")
	require.True(t, ok)
	require.Equal(t, SitToStand, ex)

	ex, ok = ParseExercise("sit_to_stand")
	require.True(t, ok)
	require.Equal(t, SitToStand, ex)

	ex, ok = ParseExercise("leg_raise")
	require.True(t, ok)
	require.Equal(t, LegRaise, ex)

	_, ok = ParseExercise("jumping_jack")
	require.False(t, ok)
}
