package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"reelcast/internal/history"
	"reelcast/internal/testsupport"
)

func TestHistoryEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, "--config", path, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestHistoryListsRecordedRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := writeTestConfig(t, cfg)

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	started := time.Now().Add(-5 * time.Minute)
	runs := []history.Run{
		{
			ID:              "run-ok",
			Kind:            history.KindVideo,
			Status:          history.StatusSucceeded,
			OutputPath:      "/videos/reel.mp4",
			ImageCount:      3,
			DurationSeconds: 12,
			SizeBytes:       4_200_000,
			Encoder:         "libx264/medium@8000k",
			StartedAt:       started,
			FinishedAt:      started.Add(30 * time.Second),
		},
		{
			ID:           "run-bad",
			Kind:         history.KindCaptions,
			Status:       history.StatusFailed,
			OutputPath:   "/videos/captions.mp4",
			ErrorKind:    "audio processing error",
			ErrorMessage: "Failed to process audio",
			StartedAt:    started.Add(time.Minute),
			FinishedAt:   started.Add(time.Minute + time.Second),
		},
	}
	for _, run := range runs {
		if err := store.Record(context.Background(), run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, _, err := runCLI(t, "--config", path, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "/videos/reel.mp4")
	requireContains(t, out, "4.2 MB")
	requireContains(t, out, "12.0s")
	requireContains(t, out, "libx264/medium@8000k")
	requireContains(t, out, "Failed to process audio")
	requireContains(t, out, "minutes ago")
	requireContains(t, out, "1 succeeded, 1 failed")

	out, _, err = runCLI(t, "--config", path, "history", "--limit", "1")
	if err != nil {
		t.Fatalf("history --limit: %v", err)
	}
	requireContains(t, out, "/videos/captions.mp4")
	if strings.Contains(out, "/videos/reel.mp4") {
		t.Fatalf("limit 1 should show only the newest run:\n%s", out)
	}
}
