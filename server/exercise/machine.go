package exercise

import (
	"github.com/posecare/posecare/pkg/pose"
)

// Machine is the hysteresis state machine that counts reps for one
// exercise. It owns the rep counter state: {exercise, reps, phase, dwell,
// form quality}. One instance per session; not safe for concurrent use.
//
// All three exercises share the same shape: two phases, a dwell counter
// that debounces transitions, and a rep increment on one of the two
// transition directions.
type Machine struct {
	cfg      Config
	exercise Exercise
	reps     int
	phase    Phase
	dwell    int
	formPct  int
}

// params describes one exercise in terms of the shared machine shape.
// phaseA is the initial phase.
type params struct {
	phaseA       Phase
	phaseB       Phase
	countOnEnter Phase // entering this phase increments the rep count
}

func (e Exercise) params() params {
	switch e {
	case Squat:
		// up <-> down, count on down -> up
		return params{phaseA: PhaseUp, phaseB: PhaseDown, countOnEnter: PhaseUp}
	case SitToStand:
		// sit <-> stand, count on sit -> stand
		return params{phaseA: PhaseSit, phaseB: PhaseStand, countOnEnter: PhaseStand}
	case LegRaise:
		// down <-> up, count on up -> down
		return params{phaseA: PhaseDown, phaseB: PhaseUp, countOnEnter: PhaseDown}
	}
	panic("unknown exercise")
}

func NewMachine(ex Exercise, cfg Config) *Machine {
	return &Machine{
		cfg:      cfg,
		exercise: ex,
	}
}

// Advance feeds one frame of stabilized landmarks into the machine.
// A frame with no valid measurement (e.g. both knees occluded) mutates
// nothing at all: phase, dwell and rep count stay untouched. This is
// different from "the transition condition failed", which resets dwell.
func (m *Machine) Advance(lm *pose.Landmarks) {
	enterB, enterA, ok := m.measure(lm)
	if !ok {
		return
	}

	p := m.exercise.params()
	switch m.phase {
	case PhaseNone:
		// First valid measurement: assign the initial phase, no rep.
		m.phase = p.phaseA
		m.dwell = 0
	case p.phaseA:
		m.step(enterB, p.phaseB, p.countOnEnter)
	case p.phaseB:
		m.step(enterA, p.phaseA, p.countOnEnter)
	}

	if q, okQ := m.quality(lm); okQ {
		m.formPct = q
	}
}

// step applies the dwell hysteresis for one pending transition.
func (m *Machine) step(condition bool, target Phase, countOnEnter Phase) {
	if condition {
		m.dwell++
	} else {
		m.dwell = 0
	}
	if condition && m.dwell >= m.cfg.MinDwell {
		m.phase = target
		m.dwell = 0
		if target == countOnEnter {
			m.reps++
		}
	}
}

// measure evaluates the two transition conditions for the current frame.
// enterB is the condition for entering phaseB, enterA for phaseA.
// ok is false when the frame has no usable measurement.
func (m *Machine) measure(lm *pose.Landmarks) (enterB, enterA, ok bool) {
	switch m.exercise {
	case Squat, SitToStand:
		left, okL := pose.KneeAngle(lm, pose.SideLeft)
		right, okR := pose.KneeAngle(lm, pose.SideRight)
		if !okL || !okR {
			return false, false, false
		}
		flexed := left < m.cfg.FlexedMax && right < m.cfg.FlexedMax
		extended := left > m.cfg.ExtendedMin && right > m.cfg.ExtendedMin
		if m.exercise == Squat {
			// Squat: phaseB is "down" (flexed), phaseA is "up" (extended)
			return flexed, extended, true
		}
		// Sit-to-stand: phaseB is "stand" (extended), phaseA is "sit" (flexed)
		return extended, flexed, true
	case LegRaise:
		// A side with no measurable hip angle does not contribute to "up",
		// and vacuously satisfies "down". With only one usable side, that
		// side alone decides.
		left, okL := pose.HipAngle(lm, pose.SideLeft)
		right, okR := pose.HipAngle(lm, pose.SideRight)
		if !okL && !okR {
			return false, false, false
		}
		anyUp := false
		allDown := true
		if okL {
			anyUp = anyUp || left < m.cfg.FlexedMax
			allDown = allDown && left > m.cfg.ExtendedMin
		}
		if okR {
			anyUp = anyUp || right < m.cfg.FlexedMax
			allDown = allDown && right > m.cfg.ExtendedMin
		}
		return anyUp, allDown, true
	}
	return false, false, false
}

// Reps returns the number of completed repetitions.
func (m *Machine) Reps() int {
	return m.reps
}

// Phase returns the current phase (PhaseNone before the first valid frame).
func (m *Machine) Phase() Phase {
	return m.phase
}

// FormPct returns the sticky form quality, 0..100.
func (m *Machine) FormPct() int {
	return m.formPct
}

// Exercise returns the exercise this machine is counting.
func (m *Machine) Exercise() Exercise {
	return m.exercise
}

// Reset zeroes the counter state and optionally switches the exercise.
// This is the single operation behind both control surface commands
// (reset-counter and switch-exercise).
func (m *Machine) Reset(ex Exercise) {
	m.exercise = ex
	m.reps = 0
	m.phase = PhaseNone
	m.dwell = 0
	m.formPct = 0
}

// Snapshot is the display state of the counter, as sent to the rendering
// layer once per frame.
type Snapshot struct {
	Exercise    string `json:"exercise"`
	DisplayName string `json:"displayName"`
	Reps        int    `json:"reps"`
	Phase       string `json:"phase"`
	FormPct     int    `json:"formPct"`
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Exercise:    m.exercise.String(),
		DisplayName: m.exercise.DisplayName(),
		Reps:        m.reps,
		Phase:       string(m.phase),
		FormPct:     m.formPct,
	}
}
