package captions

import (
	"sort"
	"strings"

	"reelcast/internal/reel"
	"reelcast/internal/services"
)

const stageCaptions = "captions"

// SplitSegment divides a segment evenly among its whitespace-separated
// words. Word i covers [start + i*wd, start + (i+1)*wd); the last word ends
// exactly at the segment end so the words partition the segment.
func SplitSegment(segment reel.Segment) ([]reel.Word, error) {
	if err := segment.Validate(); err != nil {
		return nil, services.Wrap(services.ErrCaptionGeneration, stageCaptions, "split segment", "Failed to generate captions", err)
	}
	fields := strings.Fields(segment.Text)
	n := len(fields)
	wordDuration := (segment.End - segment.Start) / float64(n)

	words := make([]reel.Word, n)
	for i, text := range fields {
		words[i] = reel.Word{
			Text:  text,
			Start: segment.Start + float64(i)*wordDuration,
			End:   segment.Start + float64(i+1)*wordDuration,
		}
	}
	words[n-1].End = segment.End
	return words, nil
}

// SortSegments returns a copy of segments ordered by start time. Segments
// with equal starts keep their transcript order.
func SortSegments(segments []reel.Segment) []reel.Segment {
	ordered := append([]reel.Segment(nil), segments...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })
	return ordered
}

// SplitSegments splits every segment and returns the words in the order the
// segments were given. Callers that need chronological order sort first with
// SortSegments and reuse that slice for every consumer.
func SplitSegments(segments []reel.Segment) ([]reel.Word, error) {
	var words []reel.Word
	for _, segment := range segments {
		split, err := SplitSegment(segment)
		if err != nil {
			return nil, err
		}
		words = append(words, split...)
	}
	return words, nil
}
