package main

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"reelcast/internal/logging"
)

// progressReporter renders pipeline progress as bars on a terminal and as
// sampled log lines everywhere else.
type progressReporter struct {
	out         io.Writer
	interactive bool
	logger      *slog.Logger
	sampler     *logging.ProgressSampler

	mu    sync.Mutex
	stage string
	bar   *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer, logger *slog.Logger) *progressReporter {
	return &progressReporter{
		out:         out,
		interactive: isInteractive(out),
		logger:      logger,
		sampler:     logging.NewProgressSampler(10),
	}
}

func isInteractive(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *progressReporter) onStage(stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked()
	p.stage = stage
	if !p.interactive && p.logger != nil {
		p.logger.Debug("stage started", logging.String("stage", stage))
	}
}

func (p *progressReporter) onImage(done, total int) {
	if total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive {
		if p.bar == nil {
			p.bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(p.out),
				progressbar.OptionSetDescription("Normalizing images"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = p.bar.Set(done)
		return
	}
	p.logSampled("normalize", float64(done)*100/float64(total),
		logging.Int("done", done), logging.Int("total", total))
}

func (p *progressReporter) onEncode(done, total time.Duration) {
	if total <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive {
		if p.bar == nil {
			p.bar = progressbar.NewOptions64(total.Milliseconds(),
				progressbar.OptionSetWriter(p.out),
				progressbar.OptionSetDescription("Encoding video"),
				progressbar.OptionSetWidth(30),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionThrottle(100*time.Millisecond),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = p.bar.Set64(done.Milliseconds())
		return
	}
	p.logSampled("encode", done.Seconds()*100/total.Seconds(),
		logging.Seconds("position", done), logging.Seconds("total", total))
}

func (p *progressReporter) logSampled(stage string, percent float64, attrs ...logging.Attr) {
	if p.logger == nil || !p.sampler.ShouldLog(percent, stage) {
		return
	}
	args := append([]any{logging.String("stage", stage), logging.Float64("percent", percent)}, logging.Args(attrs...)...)
	p.logger.Info("progress", args...)
}

func (p *progressReporter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked()
}

func (p *progressReporter) finishLocked() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}
