package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 10},
		{"default bucket size for negative", -1, 10},
		{"custom bucket size", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if len(s.buckets) != 0 {
				t.Errorf("buckets = %v, want empty", s.buckets)
			}
		})
	}
}

func TestProgressSamplerNilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "normalize") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(0, "normalize") {
		t.Error("first event should log")
	}
	if s.ShouldLog(5, "normalize") {
		t.Error("same bucket should not log")
	}
	if !s.ShouldLog(12, "normalize") {
		t.Error("crossing into next bucket should log")
	}
	if s.ShouldLog(11, "normalize") {
		t.Error("going backwards should not log")
	}
	if !s.ShouldLog(100, "normalize") {
		t.Error("completion should log")
	}
	if !s.ShouldLog(0, "encode") {
		t.Error("stage change should log and reset buckets")
	}
	if !s.ShouldLog(-1, "captions") {
		t.Error("stage change with unknown percent should log")
	}
	if s.ShouldLog(-1, "captions") {
		t.Error("unknown percent within same stage should not log")
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(50, "encode")
	s.Reset()
	if !s.ShouldLog(50, "encode") {
		t.Error("after reset the same event should log again")
	}
}
