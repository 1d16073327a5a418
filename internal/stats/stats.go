// Package stats implements the optional --bench latency summary, adapted
// from the teacher's main.go benchmarking harness (DurationSlice +
// github.com/grd/stat), scaled down from per-batch engine latency to
// per-event dispatch latency.
package stats

import (
	"time"

	"github.com/grd/stat"
)

// DurationSlice adapts a []time.Duration to grd/stat's Interface (Len,
// Get), exactly as the teacher's main.go does for its engine/fetch/persist
// latency slices.
type DurationSlice []time.Duration

func (f DurationSlice) Get(i int) float64 { return float64(f[i]) }
func (f DurationSlice) Len() int          { return len(f) }

// Recorder accumulates per-event dispatch latencies for a single run.
type Recorder struct {
	samples []time.Duration
}

// NewRecorder preallocates capacity for an expected number of events, per
// the memory policy in §5/§9.
func NewRecorder(capacityHint int) *Recorder {
	return &Recorder{samples: make([]time.Duration, 0, capacityHint)}
}

// Observe records one event's dispatch latency.
func (r *Recorder) Observe(d time.Duration) {
	r.samples = append(r.samples, d)
}

// Summary is the mean and standard deviation of recorded latencies, in
// nanoseconds.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
}

// Summarize computes the mean/stddev of all recorded samples using
// grd/stat, the same library the teacher's main.go reports latency with.
func (r *Recorder) Summarize() Summary {
	if len(r.samples) == 0 {
		return Summary{}
	}
	durations := DurationSlice(r.samples)
	mean := stat.Mean(durations)
	sd := stat.SdMean(durations, mean)
	return Summary{Count: len(r.samples), Mean: mean, StdDev: sd}
}
