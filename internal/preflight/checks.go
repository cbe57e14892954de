package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"reelcast/internal/captions"
	"reelcast/internal/config"
	"reelcast/internal/deps"
	"reelcast/internal/hwaccel"
	"reelcast/internal/media/ffmpeg"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFont verifies that the caption font parses at the configured size.
func CheckFont(path string, size float64) Result {
	const name = "Caption font"
	face, err := captions.LoadFace(path, size)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	_ = face.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%.0fpt)", path, size)}
}

// CheckSystemDeps evaluates the external tools required by the given config.
// Both the pipeline and the doctor command use this to avoid duplicating the
// requirements list.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.Requirements(deps.Binaries{
		FFmpeg:        cfg.FFmpegBinary(),
		FFprobe:       cfg.FFprobeBinary(),
		Transcription: cfg.Captions.Enabled,
	}))
}

// CheckHardware probes GPU encode and resize support. It passes whenever the
// probe completes; software-only is a valid outcome.
func CheckHardware(ctx context.Context, runner ffmpeg.Runner, enabled bool, logger *slog.Logger) Result {
	const name = "Hardware acceleration"
	if !enabled {
		return Result{Name: name, Passed: true, Detail: "disabled in config"}
	}
	caps := hwaccel.Probe(ctx, runner, logger)
	return Result{Name: name, Passed: true, Detail: caps.Summary()}
}
