package captions

import (
	"os"
	"path/filepath"
	"testing"

	"reelcast/internal/reel"
)

func TestFormatSRT(t *testing.T) {
	segments := []reel.Segment{
		{Start: 0, End: 1.5, Text: "hello   world"},
		{Start: 61.25, End: 3725.004, Text: "later"},
	}
	want := "1\n00:00:00,000 --> 00:00:01,500\nhello world\n\n2\n00:01:01,250 --> 01:02:05,004\nlater\n"
	if got := FormatSRT(segments, 0); got != want {
		t.Fatalf("FormatSRT mismatch:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatSRTCutsAtLimit(t *testing.T) {
	segments := []reel.Segment{
		{Start: 0, End: 2, Text: "kept"},
		{Start: 9, End: 12, Text: "cut"},
		{Start: 10, End: 11, Text: "dropped"},
	}
	want := "1\n00:00:00,000 --> 00:00:02,000\nkept\n\n2\n00:00:09,000 --> 00:00:10,000\ncut\n"
	if got := FormatSRT(segments, 10); got != want {
		t.Fatalf("FormatSRT mismatch:\n%q\nwant\n%q", got, want)
	}
}

func TestWriteSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	if err := WriteSRT(path, []reel.Segment{{Start: 0, End: 1, Text: "x"}}, 0); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected srt contents")
	}
}
