package logging

import (
	"math"
	"strings"
)

// ProgressSampler thins progress events for log output: an event is kept
// when its stage is new or it reaches a higher percentage bucket than the
// last kept event of that stage.
type ProgressSampler struct {
	bucketSize float64
	lastStage  string
	buckets    map[string]int
}

// NewProgressSampler returns a sampler with the given bucket width in
// percent. Non-positive widths fall back to 10.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, buckets: make(map[string]int)}
}

// ShouldLog reports whether the event should be logged. A negative percent
// means progress is unknown; only a stage change is logged then. A nil
// sampler keeps every event.
func (s *ProgressSampler) ShouldLog(percent float64, stage string) bool {
	if s == nil {
		return true
	}
	stage = strings.TrimSpace(stage)
	changed := stage != "" && stage != s.lastStage
	if changed {
		s.lastStage = stage
		delete(s.buckets, stage)
	}
	if percent < 0 {
		return changed
	}
	bucket := int(math.Floor(math.Min(percent, 100) / s.bucketSize))
	last, seen := s.buckets[s.lastStage]
	if seen && bucket <= last {
		return changed
	}
	s.buckets[s.lastStage] = bucket
	return true
}

// Reset forgets all stages.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastStage = ""
	clear(s.buckets)
}
