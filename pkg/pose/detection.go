package pose

// Detection is one candidate person produced by the keypoint source for a
// single frame. The pipeline does not own detections beyond the frame in
// which they arrive.
type Detection struct {
	Keypoints   []Point   `json:"keypoints"`   // Expected to contain NumJoints entries
	Confidences []float32 `json:"confidences"` // One per keypoint, in [0,1]
	Box         Rect      `json:"box"`
}

// WellFormed returns true if the detection has the shape the pipeline
// requires: exactly NumJoints keypoints and at least as many confidences.
func (d *Detection) WellFormed() bool {
	return len(d.Keypoints) == NumJoints && len(d.Confidences) >= NumJoints
}

// MeanConfidence is the average over all keypoint confidences, or 0 if
// there are none.
func (d *Detection) MeanConfidence() float32 {
	if len(d.Confidences) == 0 {
		return 0
	}
	total := float32(0)
	for _, c := range d.Confidences {
		total += c
	}
	return total / float32(len(d.Confidences))
}
