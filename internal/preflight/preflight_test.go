package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelcast/internal/media/ffmpeg"
	"reelcast/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFont_Invalid(t *testing.T) {
	f := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(f, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckFont(f, 32)
	if result.Passed || !strings.Contains(result.Detail, "broken.ttf") {
		t.Fatalf("expected font failure naming the file, got %+v", result)
	}
}

type failingRunner struct{}

func (failingRunner) Run(context.Context, ffmpeg.Command) error {
	return errors.New("no gpu")
}

func TestCheckHardware(t *testing.T) {
	disabled := CheckHardware(context.Background(), failingRunner{}, false, nil)
	if !disabled.Passed || disabled.Detail != "disabled in config" {
		t.Fatalf("unexpected disabled result %+v", disabled)
	}
	probed := CheckHardware(context.Background(), failingRunner{}, true, nil)
	if !probed.Passed || probed.Detail != "software only" {
		t.Fatalf("expected software-only pass, got %+v", probed)
	}
}

func TestRunAll_PassesWithStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg", "ffprobe", "uvx"))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	results := RunAll(context.Background(), cfg)
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, failed: %+v", failed)
	}
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	for _, want := range []string{"Work directory", "Log directory", "FFmpeg", "FFprobe", "uvx"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing check %q in %v", want, names)
		}
	}
}

func TestRunAll_ReportsMissingDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg", "ffprobe", "uvx"))
	failed := Failed(RunAll(context.Background(), cfg))
	if len(failed) != 2 {
		t.Fatalf("expected work and log directory failures, got %+v", failed)
	}
}
