package imaging

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"reelcast/internal/logging"
	"reelcast/internal/reel"
	"reelcast/internal/services"
	"reelcast/internal/transition"
)

// ProgressFunc is called once per completed image with the running count.
type ProgressFunc func(completed, total int)

// BatchProcessor normalizes a set of images with a bounded worker pool.
type BatchProcessor struct {
	Normalizer Normalizer
	Workers    int
	Width      int
	Height     int
	Duration   time.Duration
	// SpillDir, when set, receives each frame as PNG and the in-memory
	// buffer is dropped.
	SpillDir string
	Logger   *slog.Logger
}

const stageNormalize = "normalize"

// Process normalizes assets and returns one clip per asset in input order.
// transitions are matched to assets by position; missing entries mean no
// transition and extra entries are ignored. Any failure cancels the
// remaining work and fails the whole batch.
func (p *BatchProcessor) Process(ctx context.Context, assets []reel.ImageAsset, transitions []string, progress ProgressFunc) ([]reel.NormalizedClip, error) {
	logger := logging.NewComponentLogger(p.Logger, "imaging")

	kinds, err := transition.ParseList(transitions)
	if err != nil {
		return nil, services.Wrap(services.ErrTransition, stageNormalize, "parse transitions", err.Error(), err)
	}
	if len(kinds) > len(assets) {
		logger.Warn("more transitions than images; extras ignored",
			logging.Int("transitions", len(kinds)),
			logging.Int("images", len(assets)),
		)
	}
	if len(assets) == 0 {
		return nil, nil
	}
	if p.Normalizer == nil {
		return nil, services.Wrap(services.ErrImageProcessing, stageNormalize, "process", "no normalizer configured", nil)
	}
	if p.SpillDir != "" {
		if err := os.MkdirAll(p.SpillDir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrImageProcessing, stageNormalize, "spill", "Failed to prepare frame directory", err)
		}
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Info("normalizing images",
		logging.Int("images", len(assets)),
		logging.Int("workers", workers),
		logging.String("normalizer", p.Normalizer.Name()),
		logging.Int("width", p.Width),
		logging.Int("height", p.Height),
	)

	clips := make([]reel.NormalizedClip, len(assets))
	var (
		completed  atomic.Int64
		progressMu sync.Mutex
	)
	total := len(assets)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, asset := range assets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			clip, err := p.Normalizer.Normalize(gctx, asset, p.Width, p.Height, p.Duration)
			if err != nil {
				return fmt.Errorf("image %d (%s): %w", i+1, filepath.Base(asset.Path), err)
			}
			clip.Index = i
			if i < len(kinds) {
				clip.Transition = string(kinds[i])
			} else {
				clip.Transition = string(transition.None)
			}
			if p.SpillDir != "" {
				if err := spill(&clip, p.SpillDir); err != nil {
					return err
				}
			}
			clips[i] = clip
			// Serialized so callbacks observe counts in increasing order.
			progressMu.Lock()
			done := int(completed.Add(1))
			if progress != nil {
				progress(done, total)
			}
			progressMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		reel.ReleaseClips(clips)
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrImageProcessing, stageNormalize, "process", "Failed to process images", err)
	}

	logger.Info("images normalized",
		logging.Int("images", total),
		logging.Duration("elapsed", time.Since(start)),
	)
	return clips, nil
}

func spill(clip *reel.NormalizedClip, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", clip.Index))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(file, clip.Frame); err != nil {
		file.Close()
		return fmt.Errorf("encode frame %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close frame %s: %w", path, err)
	}
	clip.Path = path
	clip.Release()
	return nil
}
