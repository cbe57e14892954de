package whisperx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"reelcast/internal/reel"
)

// Segment is one entry of the "segments" array WhisperX writes in its JSON
// output. Word-level entries are ignored; caption timing is derived from the
// segment window.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// LoadSegments reads a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload.Segments, nil
}

// ToReel converts WhisperX segments, trimming text and dropping segments
// that fail reel.Segment validation.
func ToReel(segments []Segment) []reel.Segment {
	out := make([]reel.Segment, 0, len(segments))
	for _, seg := range segments {
		candidate := reel.Segment{Start: seg.Start, End: seg.End, Text: strings.TrimSpace(seg.Text)}
		if candidate.Validate() != nil {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
