package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"reelcast/internal/audiosync"
	"reelcast/internal/logging"
	"reelcast/internal/reel"
	"reelcast/internal/services"
)

const stageCompose = "compose"

// Input is everything Assemble places on the timeline. Clips may be empty
// for a caption-only video, in which case the narration sets the length.
type Input struct {
	Clips         []reel.NormalizedClip
	Captions      []reel.CaptionPair
	AudioPath     string
	AudioDuration time.Duration
}

// Compositor lays out a timeline for one output frame size.
type Compositor struct {
	Width              int
	Height             int
	FPS                int
	Background         color.RGBA
	TransitionDuration time.Duration
	WorkDir            string
	Logger             *slog.Logger
}

// Assemble builds the timeline. Clips still holding an in-memory frame are
// written to WorkDir; caption rasters are always written there.
func (c *Compositor) Assemble(ctx context.Context, in Input) (*reel.Timeline, error) {
	logger := logging.NewComponentLogger(c.Logger, "compose")
	if c.Width <= 0 || c.Height <= 0 || c.FPS <= 0 {
		return nil, services.Wrap(services.ErrValidation, stageCompose, "assemble", "Invalid output dimensions",
			fmt.Errorf("%dx%d at %d fps", c.Width, c.Height, c.FPS))
	}
	if len(in.Clips) == 0 && in.AudioPath == "" {
		return nil, services.Wrap(services.ErrValidation, stageCompose, "assemble", "Nothing to compose", errors.New("no clips and no audio"))
	}
	if in.AudioPath != "" && in.AudioDuration <= 0 {
		return nil, services.Wrap(services.ErrAudioProcessing, stageCompose, "assemble", "Failed to process audio",
			fmt.Errorf("audio %s has no duration", in.AudioPath))
	}

	videoDuration := reel.TrackDuration(in.Clips)
	var plan audiosync.Plan
	switch {
	case len(in.Clips) == 0:
		plan = audiosync.Plan{Duration: in.AudioDuration}
	case in.AudioPath == "":
		plan = audiosync.Plan{Duration: videoDuration}
	default:
		plan = audiosync.Reconcile(videoDuration, in.AudioDuration)
	}
	if plan.Duration <= 0 {
		return nil, services.Wrap(services.ErrValidation, stageCompose, "assemble", "Nothing to compose", errors.New("timeline duration is zero"))
	}

	tl := &reel.Timeline{
		Width:          c.Width,
		Height:         c.Height,
		FPS:            c.FPS,
		Background:     c.Background,
		Duration:       plan.Duration,
		TransitionTime: c.TransitionDuration,
		ImageTrimmed:   plan.TrimImages,
	}
	if in.AudioPath != "" {
		tl.Audio = reel.AudioTrack{Path: in.AudioPath, Duration: plan.Duration, Trimmed: plan.TrimAudio}
	}

	if err := c.placeClips(ctx, tl, in.Clips); err != nil {
		return nil, err
	}
	if err := c.placeCaptions(ctx, tl, in.Captions); err != nil {
		return nil, err
	}

	droppedVideo, droppedAudio := plan.Dropped(videoDuration, in.AudioDuration)
	attrs := []any{
		logging.Int("clips", len(tl.Clips)),
		logging.Int("captions", len(tl.Captions)),
		logging.Duration("duration", tl.Duration),
	}
	if plan.TrimImages {
		attrs = append(attrs, logging.Duration("images_trimmed", droppedVideo))
	}
	if plan.TrimAudio {
		attrs = append(attrs, logging.Duration("audio_trimmed", droppedAudio))
	}
	logger.Info("timeline assembled", attrs...)
	return tl, nil
}

// placeClips lays clips end to end, shortening the last visible one and
// dropping any that start at or after the timeline end.
func (c *Compositor) placeClips(ctx context.Context, tl *reel.Timeline, clips []reel.NormalizedClip) error {
	var cursor time.Duration
	for i := range clips {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cursor >= tl.Duration {
			break
		}
		clip := &clips[i]
		if clip.Path == "" {
			if !clip.HasFrame() {
				return services.Wrap(services.ErrImageProcessing, stageCompose, "place clip", "Failed to process images",
					fmt.Errorf("clip %d has neither frame nor file", clip.Index))
			}
			path := filepath.Join(c.WorkDir, "frames", fmt.Sprintf("frame_%04d.png", clip.Index))
			if err := writePNG(path, clip.Frame); err != nil {
				return services.Wrap(services.ErrImageProcessing, stageCompose, "place clip", "Failed to process images", err)
			}
			clip.Path = path
			clip.Release()
		}
		length := min(clip.Duration, tl.Duration-cursor)
		tl.Clips = append(tl.Clips, reel.TrackClip{
			Path:       clip.Path,
			Start:      cursor,
			Duration:   length,
			Transition: clip.Transition,
		})
		cursor += clip.Duration
	}
	return nil
}

// placeCaptions writes each visible raster and records its layer. Windows
// are cut at the timeline end and empty ones are skipped.
func (c *Compositor) placeCaptions(ctx context.Context, tl *reel.Timeline, pairs []reel.CaptionPair) error {
	limit := tl.Duration.Seconds()
	dir := filepath.Join(c.WorkDir, "captions")
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, layer := range []struct {
			suffix string
			clip   reel.CaptionClip
		}{{"h", pair.Highlighted}, {"s", pair.Settled}} {
			clip := layer.clip
			clip.End = math.Min(clip.End, limit)
			if !clip.Visible() {
				continue
			}
			path := filepath.Join(dir, fmt.Sprintf("caption_%05d_%s.png", i, layer.suffix))
			if err := writePNG(path, clip.Image); err != nil {
				return services.Wrap(services.ErrCaptionGeneration, stageCompose, "place caption", "Failed to generate captions", err)
			}
			bounds := clip.Image.Bounds()
			x, y := clip.Anchor.Position(tl.Width, tl.Height, bounds.Dx(), bounds.Dy())
			tl.Captions = append(tl.Captions, reel.CaptionLayer{
				Path:  path,
				X:     x,
				Y:     y,
				Start: clip.Start,
				End:   clip.End,
			})
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
