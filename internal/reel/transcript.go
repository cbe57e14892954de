package reel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Segment is one span of speech reported by the transcription service.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Validate checks start >= 0, end > start and non-empty text.
func (s Segment) Validate() error {
	if math.IsNaN(s.Start) || math.IsNaN(s.End) {
		return errors.New("segment bounds are NaN")
	}
	if s.Start < 0 {
		return fmt.Errorf("segment start %.3f is negative", s.Start)
	}
	if s.End <= s.Start {
		return fmt.Errorf("segment end %.3f is not after start %.3f", s.End, s.Start)
	}
	if strings.TrimSpace(s.Text) == "" {
		return errors.New("segment text is empty")
	}
	return nil
}

// Duration returns end - start in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Word is the estimated sub-interval of a segment attributed to one word.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns end - start in seconds.
func (w Word) Duration() float64 {
	return w.End - w.Start
}
