package exercise

// Package exercise implements the per-exercise rep counting state machines
// and the form quality scorer.

// Exercise is the closed set of supported rehabilitation exercises.
type Exercise int

const (
	Squat Exercise = iota
	SitToStand
	LegRaise
)

// Phase is a stable state of an exercise machine ("up", "down", "sit",
// "stand"). The empty string means the machine has not yet seen a valid
// measurement.
type Phase string

const (
	PhaseNone  Phase = ""
	PhaseUp    Phase = "up"
	PhaseDown  Phase = "down"
	PhaseSit   Phase = "sit"
	PhaseStand Phase = "stand"
)

// ParseExercise maps the wire names of the control surface onto the enum.
func ParseExercise(name string) (Exercise, bool) {
	switch name {
	case "squat":
		return Squat, true
	case "sit_to_stand", "sts":
		return SitToStand, true
	case "leg_raise":
		return LegRaise, true
	}
	return Squat, false
}

func (e Exercise) String() string {
	switch e {
	case Squat:
		return "squat"
	case SitToStand:
		return "sit_to_stand"
	case LegRaise:
		return "leg_raise"
	}
	return "unknown"
}

// DisplayName is the human readable name for on-screen display.
func (e Exercise) DisplayName() string {
	switch e {
	case Squat:
		return "Squat"
	case SitToStand:
		return "Sit to Stand"
	case LegRaise:
		return "Leg Raise"
	}
	return "Unknown"
}

// Config holds the thresholds of one machine instance. All three exercises
// currently ship with the same angle cutoffs, but each machine gets its own
// copy so they can be tuned (and tested) independently.
type Config struct {
	FlexedMax   float32 // A joint angle below this counts as flexed (squat down, sitting, leg raised)
	ExtendedMin float32 // A joint angle above this counts as extended (standing tall, leg lowered)
	MinDwell    int     // Consecutive frames a transition condition must hold before the phase switches
}

func DefaultConfig() Config {
	return Config{
		FlexedMax:   120,
		ExtendedMin: 165,
		MinDwell:    3,
	}
}
