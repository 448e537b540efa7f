package track

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posecare/posecare/pkg/pose"
)

func makeKeypoints(base float32) []pose.Point {
	kp := make([]pose.Point, pose.NumJoints)
	for i := range kp {
		kp[i] = pose.Point{X: base + float32(i), Y: base + float32(i)*2}
	}
	return kp
}

func makeConf(c float32) []float32 {
	conf := make([]float32, pose.NumJoints)
	for i := range conf {
		conf[i] = c
	}
	return conf
}

func TestStabilizerShapeGate(t *testing.T) {
	s := NewStabilizer(DefaultStabilizerConfig())

	_, ok := s.Update(nil, nil)
	require.False(t, ok)
	_, ok = s.Update(makeKeypoints(10)[:16], makeConf(0.9))
	require.False(t, ok)
	_, ok = s.Update(makeKeypoints(10), makeConf(0.9)[:16])
	require.False(t, ok)

	// A malformed update must not have created any state: the next good
	// update is still the "first" one and returns its input unchanged.
	kp := makeKeypoints(10)
	out, ok := s.Update(kp, makeConf(0.9))
	require.True(t, ok)
	for i := 0; i < pose.NumJoints; i++ {
		require.Equal(t, kp[i], out[i])
	}
}

func TestStabilizerFirstUpdateIsIdentity(t *testing.T) {
	s := NewStabilizer(DefaultStabilizerConfig())
	kp := makeKeypoints(100)

	out, ok := s.Update(kp, makeConf(0.8))
	require.True(t, ok)
	for i := 0; i < pose.NumJoints; i++ {
		require.Equal(t, kp[i], out[i])
	}

	// A second identical update is a fixed point
	out2, ok := s.Update(kp, makeConf(0.8))
	require.True(t, ok)
	require.Equal(t, out, out2)
}

func TestStabilizerConfidenceMask(t *testing.T) {
	s := NewStabilizer(DefaultStabilizerConfig())
	kp := makeKeypoints(100)

	_, ok := s.Update(kp, makeConf(0.8))
	require.True(t, ok)

	// Drop one joint below the confidence floor: it must output the
	// sentinel on this and every following frame while masked.
	conf := makeConf(0.8)
	conf[pose.LeftKnee] = 0.34
	for frame := 0; frame < 3; frame++ {
		out, ok := s.Update(kp, conf)
		require.True(t, ok)
		require.Equal(t, pose.InvalidPoint, out[pose.LeftKnee])
	}

	// Once confidence recovers, the raw value is adopted directly with no
	// smoothing lag.
	out, ok := s.Update(kp, makeConf(0.8))
	require.True(t, ok)
	require.Equal(t, kp[pose.LeftKnee], out[pose.LeftKnee])
}

func TestStabilizerTwoSpeedSmoothing(t *testing.T) {
	cfg := DefaultStabilizerConfig()
	s := NewStabilizer(cfg)

	kp := makeKeypoints(100)
	_, ok := s.Update(kp, makeConf(0.8))
	require.True(t, ok)

	// Small move (< FastMotionPx): slow alpha
	kp2 := makeKeypoints(100)
	kp2[pose.Nose].X += 4
	out, ok := s.Update(kp2, makeConf(0.8))
	require.True(t, ok)
	require.InDelta(t, 100+4*cfg.AlphaSlow, out[pose.Nose].X, 1e-4)

	// Large move (> FastMotionPx): fast alpha
	s.Reset()
	_, ok = s.Update(kp, makeConf(0.8))
	require.True(t, ok)
	kp3 := makeKeypoints(100)
	kp3[pose.Nose].X += 40
	out, ok = s.Update(kp3, makeConf(0.8))
	require.True(t, ok)
	require.InDelta(t, 100+40*cfg.AlphaFast, out[pose.Nose].X, 1e-3)
}
