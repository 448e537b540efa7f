package track

import (
	"github.com/chewxy/math32"

	"github.com/posecare/posecare/pkg/pose"
)

// SelectorConfig holds the scoring weights for subject selection.
// The zero value is not useful; start from DefaultSelectorConfig.
type SelectorConfig struct {
	// CenterBonus is the maximum score bonus for a box whose center is
	// exactly at the frame center. The bonus falls off linearly with the
	// normalized distance from the center.
	CenterBonus float32

	// IOUWeight scales the overlap between a candidate box and the box we
	// chose on the previous frame. This is what keeps the selection stable
	// across frames when several similar candidates are visible.
	IOUWeight float32
}

func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		CenterBonus: 0.15,
		IOUWeight:   0.20,
	}
}

// Selector picks the single subject to track among the candidates of each
// frame. One instance per camera stream. Not safe for concurrent use.
type Selector struct {
	cfg        SelectorConfig
	prevBox    pose.Rect
	hasPrevBox bool
}

func NewSelector(cfg SelectorConfig) *Selector {
	return &Selector{
		cfg: cfg,
	}
}

// Select returns the best candidate of the frame, or false if there is no
// usable candidate. An empty detection list is a normal "nobody in frame"
// outcome, not an error.
//
// score = mean(confidences) + centerBonus + IOUWeight * IOU(prevBox, box)
func (s *Selector) Select(detections []pose.Detection, frameWidth, frameHeight int) (pose.Detection, bool) {
	bestIdx := -1
	bestScore := float32(-9e9)
	for i := range detections {
		det := &detections[i]
		if !det.WellFormed() {
			continue
		}
		score := det.MeanConfidence() + s.centerBonus(det.Box, frameWidth, frameHeight)
		if s.hasPrevBox {
			score += s.cfg.IOUWeight * s.prevBox.IOU(det.Box)
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return pose.Detection{}, false
	}
	// On frames with no subject we keep the old box, so that a brief
	// dropout doesn't destroy tracking continuity.
	s.prevBox = detections[bestIdx].Box
	s.hasPrevBox = true
	return detections[bestIdx], true
}

// PrevBox returns the box of the most recently selected subject.
func (s *Selector) PrevBox() (pose.Rect, bool) {
	return s.prevBox, s.hasPrevBox
}

// Reset forgets the previous subject, e.g. when the stream restarts.
func (s *Selector) Reset() {
	s.prevBox = pose.Rect{}
	s.hasPrevBox = false
}

func (s *Selector) centerBonus(box pose.Rect, frameWidth, frameHeight int) float32 {
	w := max(1, float32(frameWidth))
	h := max(1, float32(frameHeight))
	c := box.Center()
	dx := c.X/w - 0.5
	dy := c.Y/h - 0.5
	dist := math32.Sqrt(dx*dx + dy*dy)
	return max(0, s.cfg.CenterBonus-dist)
}
