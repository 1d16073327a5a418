package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	r := NewRecorder(0)
	s := r.Summarize()
	assert.Equal(t, 0, s.Count)
}

func TestSummarizeComputesMean(t *testing.T) {
	r := NewRecorder(4)
	r.Observe(10 * time.Nanosecond)
	r.Observe(20 * time.Nanosecond)
	r.Observe(30 * time.Nanosecond)

	s := r.Summarize()
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 20.0, s.Mean, 0.0001)
}
