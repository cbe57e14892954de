package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelcast/internal/config"
)

// ConfigOption adjusts a test configuration after defaults are applied.
type ConfigOption func(t testing.TB, base string, cfg *config.Config)

// NewConfig returns a config rooted in a fresh temp directory: work, logs and
// the history database live under it. Output is kept small (64x128) and
// hardware acceleration is off so tests never probe a GPU.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.Paths{
		WorkDir:   filepath.Join(base, "work"),
		LogDir:    filepath.Join(base, "logs"),
		HistoryDB: filepath.Join(base, "state", "history.db"),
	}
	cfg.Video.Width, cfg.Video.Height = 64, 128
	cfg.Encoding.HardwareAcceleration = false
	cfg.Encoding.Workers = 2
	cfg.Captions.FontSize = 16

	for _, opt := range opts {
		opt(t, base, &cfg)
	}
	return &cfg
}

// WithoutCaptions disables caption generation.
func WithoutCaptions() ConfigOption {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.Captions.Enabled = false
	}
}

// WithStubbedBinaries puts executables that exit 0 at the front of PATH.
// Without names, ffmpeg and ffprobe are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(t testing.TB, base string, _ *config.Config) {
		t.Helper()
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		bin := filepath.Join(base, "bin")
		if err := os.MkdirAll(bin, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", bin, err)
		}
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
				t.Fatalf("write stub %s: %v", name, err)
			}
		}
		t.Setenv("PATH", strings.Join([]string{bin, os.Getenv("PATH")}, string(os.PathListSeparator)))
	}
}

// BaseDir returns the temp directory a NewConfig config is rooted in.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
