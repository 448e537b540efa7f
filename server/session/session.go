package session

import (
	"sync"
	"time"

	"github.com/bmharper/ringbuffer"
	"github.com/cyclopcam/logs"

	"github.com/posecare/posecare/pkg/gen"
	"github.com/posecare/posecare/pkg/perfstats"
	"github.com/posecare/posecare/pkg/pose"
	"github.com/posecare/posecare/server/exercise"
	"github.com/posecare/posecare/server/track"
)

// Package session wires the frame pipeline together for one camera stream:
// subject selection -> keypoint stabilization -> rep counting. The session
// is the unit of ownership: every stream gets its own selector, stabilizer
// and machine, and ProcessFrame must only ever be driven by one goroutine.

// Number of queued frame results a watcher may fall behind before we start
// dropping results to it.
const WatcherChannelSize = 100

// Config gathers the tunables of one session.
type Config struct {
	Selector   track.SelectorConfig
	Stabilizer track.StabilizerConfig
	Exercise   exercise.Config

	// StepBackFraction: when boxHeight/frameHeight exceeds this, the
	// subject is too close to the camera for full-body tracking and the
	// renderer should show a "step back" hint.
	StepBackFraction float32

	// HistorySize is the number of recent frame results kept for the API.
	// Rounded up to a power of 2.
	HistorySize int
}

func DefaultConfig() Config {
	return Config{
		Selector:         track.DefaultSelectorConfig(),
		Stabilizer:       track.DefaultStabilizerConfig(),
		Exercise:         exercise.DefaultConfig(),
		StepBackFraction: 0.80,
		HistorySize:      256,
	}
}

// FrameInput is one frame from the keypoint source.
type FrameInput struct {
	Detections  []pose.Detection `json:"detections"`
	FrameWidth  int              `json:"frameWidth"`
	FrameHeight int              `json:"frameHeight"`
	PTS         time.Time        `json:"pts"`
}

// FrameResult is what the rendering/recording layer needs after one frame:
// the stabilized skeleton, the subject box, the step-back hint, and the
// counter snapshot for the HUD. Landmarks and Box are nil when no subject
// was visible (a normal outcome, not an error).
type FrameResult struct {
	Landmarks      *pose.Landmarks   `json:"landmarks,omitempty"`
	Box            *pose.Rect        `json:"box,omitempty"`
	StepBack       bool              `json:"stepBack"`
	MeanConfidence float32           `json:"meanConfidence"`
	Counter        exercise.Snapshot `json:"counter"`
	PTS            time.Time         `json:"pts"`
}

// Session processes the frames of one subject stream.
type Session struct {
	ID int64

	log        logs.Log
	cfg        Config
	selector   *track.Selector
	stabilizer *track.Stabilizer
	machine    *exercise.Machine

	history ringbuffer.RingP[*FrameResult]

	watchersLock sync.RWMutex
	watchers     []chan *FrameResult
}

func NewSession(id int64, ex exercise.Exercise, cfg Config, log logs.Log) *Session {
	return &Session{
		ID:         id,
		log:        log,
		cfg:        cfg,
		selector:   track.NewSelector(cfg.Selector),
		stabilizer: track.NewStabilizer(cfg.Stabilizer),
		machine:    exercise.NewMachine(ex, cfg.Exercise),
		history:    ringbuffer.NewRingP[*FrameResult](nextPowerOf2(cfg.HistorySize)),
	}
}

// ProcessFrame runs the whole pipeline for one frame. It never panics:
// any unexpected internal fault degrades to "no update this frame".
// Must not be called concurrently with itself, Reset or SwitchExercise
// for the same session.
func (s *Session) ProcessFrame(input *FrameInput) (result *FrameResult) {
	start := time.Now()
	result = &FrameResult{
		Counter: s.machine.Snapshot(),
		PTS:     input.PTS,
	}

	defer func() {
		if r := recover(); r != nil {
			// The frame is lost but the session survives. Persistent state
			// may be mid-frame stale, never torn: each component mutates
			// itself only after its own validation.
			s.log.Errorf("Session %v: panic during frame processing: %v", s.ID, r)
		}
	}()

	s.processInto(input, result)
	s.history.Add(result)
	s.sendToWatchers(result)
	perfstats.Update(&perfstats.Stats.FrameProcessNanoseconds, time.Since(start).Nanoseconds())
	return result
}

func (s *Session) processInto(input *FrameInput, result *FrameResult) {
	subject, ok := s.selector.Select(input.Detections, input.FrameWidth, input.FrameHeight)
	if !ok {
		// Nobody in frame this tick
		return
	}

	result.Box = &subject.Box
	result.MeanConfidence = gen.Clamp(subject.MeanConfidence(), 0, 1)
	if input.FrameHeight > 0 {
		frac := subject.Box.Height / float32(input.FrameHeight)
		result.StepBack = frac > s.cfg.StepBackFraction
	}

	stabilized, ok := s.stabilizer.Update(subject.Keypoints, subject.Confidences)
	if !ok {
		// Malformed subject shape: skip the measurement, keep all state
		return
	}
	result.Landmarks = &stabilized

	s.machine.Advance(&stabilized)
	result.Counter = s.machine.Snapshot()
}

// Counter returns the current rep counter snapshot.
func (s *Session) Counter() exercise.Snapshot {
	return s.machine.Snapshot()
}

// Exercise returns the exercise currently being counted.
func (s *Session) Exercise() exercise.Exercise {
	return s.machine.Exercise()
}

// Reset zeroes the rep counter (control surface "reset-counter").
func (s *Session) Reset() {
	s.machine.Reset(s.machine.Exercise())
}

// SwitchExercise switches to a different exercise and zeroes the counter
// (control surface "switch-exercise").
func (s *Session) SwitchExercise(ex exercise.Exercise) {
	s.machine.Reset(ex)
}

// History returns up to maxItems of the most recent frame results, oldest
// first.
func (s *Session) History(maxItems int) []*FrameResult {
	n := s.history.Len()
	if maxItems > 0 && n > maxItems {
		n = maxItems
	}
	results := make([]*FrameResult, 0, n)
	for i := s.history.Len() - n; i < s.history.Len(); i++ {
		results = append(results, s.history.Peek(i))
	}
	return results
}

// AddWatcher registers a channel that receives every frame result.
func (s *Session) AddWatcher() chan *FrameResult {
	s.watchersLock.Lock()
	defer s.watchersLock.Unlock()
	ch := make(chan *FrameResult, WatcherChannelSize)
	s.watchers = append(s.watchers, ch)
	return ch
}

// RemoveWatcher unregisters a channel returned by AddWatcher.
func (s *Session) RemoveWatcher(ch chan *FrameResult) {
	s.watchersLock.Lock()
	defer s.watchersLock.Unlock()
	for i, w := range s.watchers {
		if w == ch {
			s.watchers = gen.DeleteFromSliceUnordered(s.watchers, i)
			return
		}
	}
	s.log.Warnf("Session %v: RemoveWatcher failed to find channel", s.ID)
}

func (s *Session) sendToWatchers(result *FrameResult) {
	s.watchersLock.RLock()
	defer s.watchersLock.RUnlock()
	for _, ch := range s.watchers {
		// Don't stall the frame loop on a slow consumer
		select {
		case ch <- result:
		default:
		}
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
