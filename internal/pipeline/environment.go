package pipeline

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"golang.org/x/text/language"

	"reelcast/internal/config"
	"reelcast/internal/history"
	"reelcast/internal/logging"
	"reelcast/internal/media/ffmpeg"
	"reelcast/internal/media/ffprobe"
	"reelcast/internal/palette"
	"reelcast/internal/reel"
	"reelcast/internal/services/whisperx"
)

// Transcriber turns narration audio into timed transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]reel.Segment, error)
}

// ProbeFunc inspects a media file.
type ProbeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Options supplies optional collaborators. Zero values select the production
// implementations.
type Options struct {
	Logger      *slog.Logger
	Runner      ffmpeg.Runner
	Probe       ProbeFunc
	Transcriber Transcriber
	// History, when set, receives one record per run.
	History *history.Store
	// SkipPreflight disables the tool and directory checks before each run.
	SkipPreflight bool
}

// Environment is the immutable per-process context shared by runs.
type Environment struct {
	cfg           config.Config
	logger        *slog.Logger
	runner        ffmpeg.Runner
	probe         ProbeFunc
	transcriber   Transcriber
	history       *history.Store
	skipPreflight bool

	background color.RGBA
	style      captionPalette
}

type captionPalette struct {
	text          color.RGBA
	highlightText color.RGBA
	highlightBG   color.RGBA
	stroke        color.RGBA
	language      language.Tag
}

// NewEnvironment validates cfg and builds the run environment. cfg is
// copied; later changes to it do not affect the environment.
func NewEnvironment(cfg *config.Config, opts Options) (*Environment, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	env := &Environment{
		cfg:           *cfg,
		logger:        opts.Logger,
		runner:        opts.Runner,
		probe:         opts.Probe,
		transcriber:   opts.Transcriber,
		history:       opts.History,
		skipPreflight: opts.SkipPreflight,
	}
	if env.logger == nil {
		env.logger = logging.NewNop()
	}
	if env.runner == nil {
		env.runner = ffmpeg.NewCLI(cfg.FFmpegBinary(), env.logger)
	}
	if env.probe == nil {
		env.probe = ffprobe.Inspect
	}
	if env.transcriber == nil {
		env.transcriber = whisperx.NewService(whisperx.Config{
			Model:       cfg.Transcription.WhisperXModel,
			CUDAEnabled: cfg.Transcription.WhisperXCUDAEnabled,
			VADMethod:   cfg.Transcription.WhisperXVADMethod,
			HFToken:     cfg.Transcription.WhisperXHuggingFace,
			Language:    cfg.Captions.Language,
			WorkDir:     cfg.Paths.WorkDir,
		}, env.logger)
	}

	var err error
	if env.background, err = palette.Parse(cfg.Video.Background); err != nil {
		return nil, fmt.Errorf("pipeline: video.background: %w", err)
	}
	colors := []struct {
		name  string
		value string
		dst   *color.RGBA
	}{
		{"captions.text_color", cfg.Captions.TextColor, &env.style.text},
		{"captions.highlight_text_color", cfg.Captions.HighlightTextColor, &env.style.highlightText},
		{"captions.highlight_background", cfg.Captions.HighlightBG, &env.style.highlightBG},
		{"captions.stroke_color", cfg.Captions.StrokeColor, &env.style.stroke},
	}
	for _, c := range colors {
		if *c.dst, err = palette.Parse(c.value); err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", c.name, err)
		}
	}
	env.style.language = language.Make(cfg.Captions.Language)
	return env, nil
}

// Config returns a copy of the configuration snapshot.
func (e *Environment) Config() config.Config {
	return e.cfg
}

// Logger returns the environment logger.
func (e *Environment) Logger() *slog.Logger {
	return e.logger
}

// Runner returns the ffmpeg runner used for rendering and probing hardware.
func (e *Environment) Runner() ffmpeg.Runner {
	return e.runner
}

func (e *Environment) renderConfig(req Request) reel.RenderConfig {
	workers := e.cfg.Encoding.Workers
	if req.Workers > 0 {
		workers = req.Workers
	}
	return reel.RenderConfig{
		Width:                e.cfg.Video.Width,
		Height:               e.cfg.Video.Height,
		FPS:                  e.cfg.Video.FPS,
		Bitrate:              e.cfg.Video.Bitrate,
		HardwareAcceleration: e.cfg.Encoding.HardwareAcceleration && !req.NoHWAccel,
		Workers:              workers,
		SoftwarePreset:       e.cfg.Encoding.SoftwarePreset,
		HardwarePreset:       e.cfg.Encoding.HardwarePreset,
	}
}
