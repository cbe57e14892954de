package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"reelcast/internal/captions"
	"reelcast/internal/compose"
	"reelcast/internal/encoding"
	"reelcast/internal/history"
	"reelcast/internal/hwaccel"
	"reelcast/internal/imaging"
	"reelcast/internal/logging"
	"reelcast/internal/preflight"
	"reelcast/internal/reel"
	"reelcast/internal/services"
)

// Stage names reported through Request.OnStage and the log context.
const (
	stageValidate  = "validate"
	StageNormalize = "normalize"
	StageAudio     = "audio"
	StageCaptions  = "captions"
	StageCompose   = "compose"
	StageEncode    = "encode"
)

const lockPollInterval = 250 * time.Millisecond

// acquireHardware is swapped in tests to observe release hooks.
var acquireHardware = hwaccel.Acquire

// Generator runs generation requests against an Environment.
type Generator struct {
	env *Environment
}

// NewGenerator returns a generator bound to env.
func NewGenerator(env *Environment) *Generator {
	return &Generator{env: env}
}

// Generate renders a video from the request's images and narration with
// word-highlighted captions unless captions are disabled.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	return g.execute(ctx, req, history.KindVideo)
}

// GenerateCaptions renders the captions alone on the background colour for
// the full narration length. ImagesDir and Transitions are ignored.
func (g *Generator) GenerateCaptions(ctx context.Context, req Request) Result {
	return g.execute(ctx, req, history.KindCaptions)
}

func (g *Generator) execute(ctx context.Context, req Request, kind history.Kind) (result Result) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(g.env.logger, "pipeline"))
	started := time.Now()
	result.RunID = runID

	logger.Info("generation started",
		logging.String("kind", string(kind)),
		logging.String("images", req.ImagesDir),
		logging.String("audio", req.AudioPath),
		logging.String("output", req.Output),
	)

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = services.Wrap(services.ErrVideoGeneration, "", "run", "Video generation failed", fmt.Errorf("panic: %v", r))
			}
		}()
		result.Err = g.run(ctx, req, kind, &result, logger)
	}()
	result.Err = finalizeError(result.Err)
	result.Elapsed = time.Since(started)

	if result.Err != nil {
		logger.Error("generation failed",
			logging.String("message", result.Message()),
			logging.Error(result.Err),
			logging.Duration("elapsed", result.Elapsed),
		)
	} else {
		logger.Info("generation complete",
			logging.String("output", result.Output),
			logging.Int64("size_bytes", result.SizeBytes),
			logging.Duration("duration", result.Duration),
			logging.Duration("elapsed", result.Elapsed),
		)
	}
	g.record(req, kind, result, started, logger)
	return result
}

func (g *Generator) run(ctx context.Context, req Request, kind history.Kind, res *Result, logger *slog.Logger) error {
	cfg := g.env.cfg
	enter := func(stage string) context.Context {
		if req.OnStage != nil {
			req.OnStage(stage)
		}
		return services.WithStage(ctx, stage)
	}

	if err := validateOutput(req.Output); err != nil {
		return err
	}
	if err := validateAudio(req.AudioPath); err != nil {
		return err
	}
	var assets []reel.ImageAsset
	if kind == history.KindVideo {
		var err error
		if assets, err = discoverImages(req.ImagesDir); err != nil {
			return err
		}
	}
	withCaptions := kind == history.KindCaptions || (cfg.Captions.Enabled && !req.NoCaptions)

	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrValidation, stageValidate, "directories", "Failed to prepare work directories", err)
	}
	if !g.env.skipPreflight {
		if failed := preflight.Failed(preflight.RunAll(ctx, &cfg)); len(failed) > 0 {
			names := make([]string, 0, len(failed))
			for _, f := range failed {
				names = append(names, f.Name)
			}
			return services.Wrap(services.ErrValidation, stageValidate, "preflight",
				fmt.Sprintf("Preflight checks failed: %s", strings.Join(names, ", ")),
				fmt.Errorf("%s: %s", failed[0].Name, failed[0].Detail))
		}
	}

	unlock, err := lockWorkDir(ctx, cfg.Paths.WorkDir, logger)
	if err != nil {
		return err
	}
	defer unlock()

	runDir := filepath.Join(cfg.Paths.WorkDir, "runs", res.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return services.Wrap(services.ErrValidation, stageValidate, "run dir", "Failed to prepare work directories", err)
	}
	defer func() {
		if err := os.RemoveAll(runDir); err != nil {
			logger.Warn("run directory cleanup failed", logging.String("path", runDir), logging.Error(err))
		}
	}()

	render := g.env.renderConfig(req)
	hw := acquireHardware(ctx, g.env.runner, render.HardwareAcceleration, logger)
	defer hw.Release()
	caps := hw.Capabilities()
	res.Hardware = caps.Summary()

	var clips []reel.NormalizedClip
	if kind == history.KindVideo {
		stageCtx := enter(StageNormalize)
		batch := &imaging.BatchProcessor{
			Normalizer: imaging.Select(caps, g.env.runner),
			Workers:    render.Workers,
			Width:      render.Width,
			Height:     render.Height,
			Duration:   seconds(cfg.Video.ImageDuration),
			SpillDir:   filepath.Join(runDir, "frames"),
			Logger:     logging.WithContext(stageCtx, g.env.logger),
		}
		if clips, err = batch.Process(stageCtx, assets, req.Transitions, req.OnImage); err != nil {
			return err
		}
		hw.OnRelease(func() { reel.ReleaseClips(clips) })
		res.Images = len(clips)
	}

	audioCtx := enter(StageAudio)
	audioDuration, err := g.audioDuration(audioCtx, req.AudioPath)
	if err != nil {
		return err
	}

	var (
		segments []reel.Segment
		pairs    []reel.CaptionPair
	)
	if withCaptions {
		captionCtx := enter(StageCaptions)
		segments, pairs, err = g.buildCaptions(captionCtx, req.AudioPath)
		if err != nil {
			return err
		}
		hw.OnRelease(func() { captions.ReleasePairs(pairs) })
		res.Words = len(pairs)
	}

	composeCtx := enter(StageCompose)
	compositor := &compose.Compositor{
		Width:              render.Width,
		Height:             render.Height,
		FPS:                render.FPS,
		Background:         g.env.background,
		TransitionDuration: seconds(cfg.Video.TransitionDuration),
		WorkDir:            runDir,
		Logger:             logging.WithContext(composeCtx, g.env.logger),
	}
	timeline, err := compositor.Assemble(composeCtx, compose.Input{
		Clips:         clips,
		Captions:      pairs,
		AudioPath:     req.AudioPath,
		AudioDuration: audioDuration,
	})
	if err != nil {
		return err
	}

	encodeCtx := enter(StageEncode)
	settings := encoding.SelectSettings(render, caps)
	encoder := &encoding.Encoder{
		Runner:        g.env.runner,
		FFprobeBinary: cfg.FFprobeBinary(),
		WorkDir:       runDir,
		SilentCopy:    cfg.Encoding.SilentCopy,
		Logger:        g.env.logger,
	}
	out, err := encoder.Render(encodeCtx, timeline, settings, req.Output, req.OnEncode)
	if err != nil {
		return err
	}
	res.Output = out.Path
	res.SilentOutput = out.SilentPath
	res.SizeBytes = out.SizeBytes
	res.Duration = out.Duration
	res.Encoder = settings.String()

	if withCaptions && cfg.Captions.WriteSRT {
		srtPath := strings.TrimSuffix(out.Path, filepath.Ext(out.Path)) + ".srt"
		if err := captions.WriteSRT(srtPath, segments, timeline.Duration.Seconds()); err != nil {
			logger.Warn("subtitle sidecar failed; video kept", logging.String("path", srtPath), logging.Error(err))
		} else {
			res.Subtitles = srtPath
		}
	}
	return nil
}

func (g *Generator) audioDuration(ctx context.Context, path string) (time.Duration, error) {
	probe, err := g.env.probe(ctx, g.env.cfg.FFprobeBinary(), path)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, services.Wrap(services.ErrAudioProcessing, StageAudio, "probe", "Failed to process audio", err)
	}
	if probe.AudioStreamCount() == 0 {
		return 0, services.Wrap(services.ErrAudioProcessing, StageAudio, "probe", "Failed to process audio",
			fmt.Errorf("%s has no audio stream", path))
	}
	duration := probe.Duration()
	if duration <= 0 {
		return 0, services.Wrap(services.ErrAudioProcessing, StageAudio, "probe", "Failed to process audio",
			fmt.Errorf("%s reports no duration", path))
	}
	return duration, nil
}

func (g *Generator) buildCaptions(ctx context.Context, audioPath string) ([]reel.Segment, []reel.CaptionPair, error) {
	cfg := g.env.cfg.Captions
	logger := logging.WithContext(ctx, g.env.logger)

	segments, err := g.env.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, services.Wrap(services.ErrCaptionGeneration, StageCaptions, "transcribe", "Failed to generate captions", err)
	}
	if len(segments) == 0 {
		return nil, nil, services.Wrap(services.ErrCaptionGeneration, StageCaptions, "transcribe", "Failed to generate captions",
			errors.New("transcription returned no segments"))
	}
	// Captions and the SRT sidecar share this ordering.
	segments = captions.SortSegments(segments)
	words, err := captions.SplitSegments(segments)
	if err != nil {
		return nil, nil, err
	}

	face, err := captions.LoadFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrCaptionGeneration, StageCaptions, "load font", "Failed to generate captions", err)
	}
	defer face.Close()

	colors := g.env.style
	builder := &captions.Builder{
		Style: &captions.HighlightStyle{
			Face:          face,
			TextColor:     colors.text,
			HighlightText: colors.highlightText,
			HighlightBG:   colors.highlightBG,
			StrokeColor:   colors.stroke,
			StrokeWidth:   cfg.StrokeWidth,
			Padding:       cfg.Padding,
			Uppercase:     cfg.Uppercase,
			Language:      colors.language,
		},
		Settle: cfg.SettleSeconds,
		Anchor: reel.Anchor{X: cfg.AnchorX, Y: cfg.AnchorY},
		Logger: logger,
	}
	pairs, err := builder.Build(words)
	if err != nil {
		return nil, nil, err
	}
	return segments, pairs, nil
}

func (g *Generator) record(req Request, kind history.Kind, res Result, started time.Time, logger *slog.Logger) {
	if g.env.history == nil {
		return
	}
	run := history.Run{
		ID:              res.RunID,
		Kind:            kind,
		Status:          history.StatusSucceeded,
		ImagesDir:       req.ImagesDir,
		AudioPath:       req.AudioPath,
		OutputPath:      req.Output,
		SilentPath:      res.SilentOutput,
		ImageCount:      res.Images,
		WordCount:       res.Words,
		DurationSeconds: res.Duration.Seconds(),
		SizeBytes:       res.SizeBytes,
		Encoder:         res.Encoder,
		Hardware:        res.Hardware,
		StartedAt:       started,
		FinishedAt:      started.Add(res.Elapsed),
	}
	if res.Err != nil {
		run.Status = history.StatusFailed
		run.ErrorMessage = res.Message()
		if marker := services.KindOf(res.Err); marker != nil {
			run.ErrorKind = marker.Error()
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.env.history.Record(ctx, run); err != nil {
		logger.Warn("run history not recorded", logging.Error(err))
	}
}

// lockWorkDir serializes runs sharing a work directory (and usually a GPU).
func lockWorkDir(ctx context.Context, workDir string, logger *slog.Logger) (func(), error) {
	lock := flock.New(filepath.Join(workDir, ".reelcast.lock"))
	locked, err := lock.TryLock()
	if err == nil && !locked {
		logger.Info("waiting for another run to release the work directory", logging.String("work_dir", workDir))
		locked, err = lock.TryLockContext(ctx, lockPollInterval)
	}
	if err != nil || !locked {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrValidation, stageValidate, "lock", "Failed to lock work directory", err)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release work directory lock", logging.Error(err))
		}
	}, nil
}

// finalizeError guarantees every returned error belongs to the generation
// family.
func finalizeError(err error) error {
	if err == nil || services.KindOf(err) != nil {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrVideoGeneration, "", "run", "Video generation cancelled", err)
	}
	return services.Wrap(services.ErrVideoGeneration, "", "run", "Video generation failed", err)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
