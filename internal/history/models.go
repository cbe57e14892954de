package history

import "time"

// Kind distinguishes full videos from caption-only renders.
type Kind string

const (
	KindVideo    Kind = "video"
	KindCaptions Kind = "captions"
)

// Status is the terminal state of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one recorded generation attempt.
type Run struct {
	ID              string
	Kind            Kind
	Status          Status
	ImagesDir       string
	AudioPath       string
	OutputPath      string
	SilentPath      string
	ImageCount      int
	WordCount       int
	DurationSeconds float64
	SizeBytes       int64
	Encoder         string
	Hardware        string
	ErrorKind       string
	ErrorMessage    string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Elapsed returns the wall-clock time the run took.
func (r Run) Elapsed() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
