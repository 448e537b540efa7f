// Package perfstats is a single place where we record the performance of
// the frame pipeline, so that it's easy to compare different hardware.
// The pipeline has one frame period (~33ms at 30Hz) for selection,
// smoothing and counting combined; in practice it needs a few microseconds.
package perfstats

import (
	"fmt"
	"strings"
	"sync/atomic"
)

type PerfStats struct {
	FrameProcessNanoseconds atomic.Uint64 // Whole pipeline: select + stabilize + advance
}

var Stats = PerfStats{}

// Update folds a new sample into a rolling average.
func Update(stat *atomic.Uint64, value int64) {
	vu := uint64(value)
	// We don't bother about strict correctness here, with CompareAndSwap,
	// because this is just sampled stats, and it's OK to miss one or two samples.
	if stat.Load() == 0 {
		stat.Store(vu)
	} else {
		stat.Store((stat.Load()*63 + vu) >> 6)
	}
}

func (s *PerfStats) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Frame pipeline: %0.4f ms", float64(s.FrameProcessNanoseconds.Load())/1000000)
	return b.String()
}
