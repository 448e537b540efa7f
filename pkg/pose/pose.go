package pose

// Package pose holds the landmark data model and the pure geometry used by
// the rep-counting pipeline. A pose is 17 2D keypoints in COCO order, as
// produced by pose estimation models such as yolov8-pose.

// Joint identifies one of the 17 keypoints of a detected person.
// The numeric values are the wire order of the keypoint source.
type Joint int

const (
	Nose Joint = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
)

// NumJoints is the number of keypoints per person.
const NumJoints = 17

var jointNames = [NumJoints]string{
	"nose", "leftEye", "rightEye", "leftEar", "rightEar",
	"leftShoulder", "rightShoulder", "leftElbow", "rightElbow",
	"leftWrist", "rightWrist", "leftHip", "rightHip",
	"leftKnee", "rightKnee", "leftAnkle", "rightAnkle",
}

func (j Joint) String() string {
	if j < 0 || j >= NumJoints {
		return "invalid"
	}
	return jointNames[j]
}

// Side selects the left or right limb of a person.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Landmarks is the fixed set of keypoint positions for one person.
// Entries equal to the invalid sentinel (non-positive coordinates) mean
// "no confident detection for this joint".
type Landmarks [NumJoints]Point

// Confidences holds the per-joint detection confidence, in [0,1].
type Confidences [NumJoints]float32

// Skeleton lists the limb segments between joints, for renderers that
// draw the stabilized pose. Head keypoints are deliberately excluded.
var Skeleton = [][2]Joint{
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftHip},
	{RightShoulder, RightHip},
	{LeftHip, RightHip},
	{LeftHip, LeftKnee},
	{LeftKnee, LeftAnkle},
	{RightHip, RightKnee},
	{RightKnee, RightAnkle},
}
