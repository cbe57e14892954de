package captions

import (
	"fmt"
	"os"
	"strings"

	"reelcast/internal/reel"
)

// FormatSRT renders segments as SRT cues. Cues ending after limit (seconds,
// when positive) are cut at limit; cues starting at or after it are dropped.
func FormatSRT(segments []reel.Segment, limit float64) string {
	var sb strings.Builder
	index := 0
	for _, segment := range segments {
		start, end := segment.Start, segment.End
		if limit > 0 {
			if start >= limit {
				continue
			}
			if end > limit {
				end = limit
			}
		}
		text := strings.Join(strings.Fields(segment.Text), " ")
		if text == "" || end <= start {
			continue
		}
		index++
		if index > 1 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", index, formatSRTTimestamp(start), formatSRTTimestamp(end), text)
	}
	return sb.String()
}

// WriteSRT writes FormatSRT output to path.
func WriteSRT(path string, segments []reel.Segment, limit float64) error {
	if err := os.WriteFile(path, []byte(FormatSRT(segments, limit)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

func formatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	msTotal := int(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
