package main

import (
	"path/filepath"
	"strings"
	"testing"

	"reelcast/internal/testsupport"
)

func TestDoctorPassesWithStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg", "ffprobe", "uvx"))
	path := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, "--config", path, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "Work directory")
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "Hardware acceleration")
	requireContains(t, out, "disabled in config")
	requireContains(t, out, "All checks passed")
}

func TestDoctorReportsMissingFont(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg", "ffprobe", "uvx"))
	cfg.Captions.FontPath = filepath.Join(t.TempDir(), "missing.ttf")
	path := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, "--config", path, "doctor")
	if err == nil || !strings.Contains(err.Error(), "check(s) failed") {
		t.Fatalf("expected failed check error, got %v", err)
	}
	requireContains(t, out, "FAIL")
}
