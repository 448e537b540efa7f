package track

import (
	"github.com/posecare/posecare/pkg/pose"
)

// StabilizerConfig holds the smoothing parameters of the keypoint
// stabilizer. The two-speed alpha suppresses jitter during near-static
// holds while staying responsive during genuine fast motion.
type StabilizerConfig struct {
	MinConfidence float32 // Keypoints below this confidence are masked to the invalid sentinel
	AlphaFast     float32 // Smoothing factor when a joint moved more than FastMotionPx
	AlphaSlow     float32 // Smoothing factor for small movements
	FastMotionPx  float32 // Displacement (pixels) above which AlphaFast kicks in
}

func DefaultStabilizerConfig() StabilizerConfig {
	return StabilizerConfig{
		MinConfidence: 0.35,
		AlphaFast:     0.45,
		AlphaSlow:     0.15,
		FastMotionPx:  6.0,
	}
}

// Stabilizer smooths the keypoints of one tracked subject across frames.
// One instance per subject stream; sharing an instance between streams
// corrupts both. Not safe for concurrent use.
type Stabilizer struct {
	cfg      StabilizerConfig
	state    pose.Landmarks
	hasState bool
}

func NewStabilizer(cfg StabilizerConfig) *Stabilizer {
	return &Stabilizer{
		cfg: cfg,
	}
}

// Update feeds one frame of raw keypoints and returns the stabilized set.
// Returns false, without touching any state, if the input does not have
// exactly pose.NumJoints keypoints and at least as many confidences.
//
// Per joint: a low-confidence keypoint is written through as the invalid
// sentinel. A joint whose previous value was the sentinel adopts the new
// raw value directly, so that recovery after occlusion has no smoothing
// lag. Otherwise the joint is blended with its previous value using the
// fast alpha for large displacements and the slow alpha for small ones.
func (s *Stabilizer) Update(keypoints []pose.Point, conf []float32) (pose.Landmarks, bool) {
	if len(keypoints) != pose.NumJoints || len(conf) < pose.NumJoints {
		return pose.Landmarks{}, false
	}

	var masked pose.Landmarks
	for i := 0; i < pose.NumJoints; i++ {
		if conf[i] < s.cfg.MinConfidence {
			masked[i] = pose.InvalidPoint
		} else {
			masked[i] = keypoints[i]
		}
	}

	if !s.hasState {
		s.state = masked
		s.hasState = true
		return s.state, true
	}

	out := s.state
	for i := 0; i < pose.NumJoints; i++ {
		cur := masked[i]
		if !cur.Valid() {
			out[i] = pose.InvalidPoint
			continue
		}
		prev := s.state[i]
		if !prev.Valid() {
			out[i] = cur
			continue
		}
		alpha := s.cfg.AlphaSlow
		if cur.Distance(prev) > s.cfg.FastMotionPx {
			alpha = s.cfg.AlphaFast
		}
		out[i] = pose.Point{
			X: (1-alpha)*prev.X + alpha*cur.X,
			Y: (1-alpha)*prev.Y + alpha*cur.Y,
		}
	}
	s.state = out
	return s.state, true
}

// Reset discards the smoothing state, e.g. when the subject changes.
func (s *Stabilizer) Reset() {
	s.state = pose.Landmarks{}
	s.hasState = false
}
