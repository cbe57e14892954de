package encoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reelcast/internal/compose"
	"reelcast/internal/fileutil"
	"reelcast/internal/logging"
	"reelcast/internal/media/ffmpeg"
	"reelcast/internal/reel"
	"reelcast/internal/services"
)

const stageEncode = "encode"

// ProgressFunc receives the encoded position against the timeline length.
type ProgressFunc func(done, total time.Duration)

// Encoder renders timelines through ffmpeg.
type Encoder struct {
	Runner        ffmpeg.Runner
	FFprobeBinary string
	// WorkDir holds the filter script. Empty uses the system temp directory.
	WorkDir string
	// SilentCopy also writes <name>_silent<ext> without the audio stream.
	SilentCopy bool
	Logger     *slog.Logger
}

// Output describes a finished render.
type Output struct {
	Path       string
	SilentPath string
	SizeBytes  int64
	Duration   time.Duration
	Settings   Settings
}

// Render encodes tl to outputPath. The destination only appears once ffmpeg
// succeeded and the file passed validation.
func (e *Encoder) Render(ctx context.Context, tl *reel.Timeline, settings Settings, outputPath string, progress ProgressFunc) (Output, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(e.Logger, "encoder"))
	outputPath = strings.TrimSpace(outputPath)
	if outputPath == "" {
		return Output{}, services.Wrap(services.ErrValidation, stageEncode, "render", "Output path is required", nil)
	}
	if e.Runner == nil {
		return Output{}, services.Wrap(services.ErrEncoding, stageEncode, "render", "Failed to encode video", errors.New("ffmpeg runner not configured"))
	}
	graph, err := compose.BuildGraph(tl)
	if err != nil {
		return Output{}, services.Wrap(services.ErrEncoding, stageEncode, "build graph", "Failed to encode video", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Output{}, services.Wrap(services.ErrEncoding, stageEncode, "ensure output dir", "Failed to create output directory", err)
	}

	scriptPath, err := e.writeScript(graph.Script)
	if err != nil {
		return Output{}, services.Wrap(services.ErrEncoding, stageEncode, "write graph", "Failed to encode video", err)
	}
	defer os.Remove(scriptPath)

	tempPath := fileutil.TempSibling(outputPath, "render")
	args := make([]string, 0, len(graph.Inputs)+32)
	args = append(args, graph.Inputs...)
	args = append(args, "-filter_complex_script", scriptPath)
	args = append(args, graph.MapArgs()...)
	args = append(args, settings.VideoArgs()...)
	if graph.HasAudio {
		args = append(args, settings.AudioArgs()...)
	}
	args = append(args,
		"-t", strconv.FormatFloat(tl.Duration.Seconds(), 'f', -1, 64),
		"-movflags", "+faststart",
		tempPath,
	)

	start := time.Now()
	logger.Info("encoding started",
		logging.String("output", outputPath),
		logging.String("settings", settings.String()),
		logging.Int("clips", len(tl.Clips)),
		logging.Int("captions", len(tl.Captions)),
		logging.Duration("duration", tl.Duration),
	)
	command := ffmpeg.Command{Args: args}
	if progress != nil {
		command.Progress = func(p ffmpeg.Progress) {
			done := min(p.OutTime, tl.Duration)
			if p.Done {
				done = tl.Duration
			}
			progress(done, tl.Duration)
		}
	}
	if err := e.Runner.Run(ctx, command); err != nil {
		removeQuietly(tempPath)
		if ctx.Err() != nil {
			return Output{}, ctx.Err()
		}
		logger.Error("encoding failed", logging.Error(err))
		return Output{}, services.Wrap(services.ErrEncoding, stageEncode, "ffmpeg", "Failed to encode video", err)
	}

	size, err := e.validateOutput(ctx, tempPath, graph.HasAudio)
	if err != nil {
		removeQuietly(tempPath)
		return Output{}, err
	}
	if err := fileutil.MoveFile(tempPath, outputPath); err != nil {
		removeQuietly(tempPath)
		return Output{}, services.Wrap(services.ErrEncoding, stageEncode, "finalize output", "Failed to move encoded video into place", err)
	}

	out := Output{Path: outputPath, SizeBytes: size, Duration: tl.Duration, Settings: settings}
	logger.Info("encoding complete",
		logging.String("output", outputPath),
		logging.Int64("size_bytes", size),
		logging.Duration("elapsed", time.Since(start)),
	)

	if e.SilentCopy && graph.HasAudio {
		silent, err := e.writeSilentCopy(ctx, outputPath)
		if err != nil {
			logger.Warn("silent copy failed; main output kept",
				logging.String("output", outputPath),
				logging.Error(err),
			)
		} else {
			out.SilentPath = silent
		}
	}
	return out, nil
}

// SilentPath returns the sibling path used for the audio-free copy.
func SilentPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + "_silent" + ext
}

// writeSilentCopy remuxes the rendered file without its audio stream.
func (e *Encoder) writeSilentCopy(ctx context.Context, outputPath string) (string, error) {
	target := SilentPath(outputPath)
	tempPath := fileutil.TempSibling(target, "remux")
	err := e.Runner.Run(ctx, ffmpeg.Command{Args: []string{
		"-i", outputPath,
		"-map", "0:v:0",
		"-c", "copy",
		"-an",
		"-movflags", "+faststart",
		tempPath,
	}})
	if err != nil {
		removeQuietly(tempPath)
		return "", fmt.Errorf("remux silent copy: %w", err)
	}
	if err := fileutil.MoveFile(tempPath, target); err != nil {
		removeQuietly(tempPath)
		return "", fmt.Errorf("finalize silent copy: %w", err)
	}
	return target, nil
}

func (e *Encoder) writeScript(script string) (string, error) {
	dir := e.WorkDir
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("ensure work dir: %w", err)
		}
	}
	file, err := os.CreateTemp(dir, "graph-*.txt")
	if err != nil {
		return "", fmt.Errorf("create filter script: %w", err)
	}
	if _, err := file.WriteString(script); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("write filter script: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close filter script: %w", err)
	}
	return file.Name(), nil
}

func removeQuietly(path string) {
	_ = os.Remove(path)
}
