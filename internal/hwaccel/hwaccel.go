package hwaccel

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"reelcast/internal/logging"
	"reelcast/internal/media/ffmpeg"
)

const probeTimeout = 15 * time.Second

// Capabilities reports which GPU paths passed their preflight encode.
type Capabilities struct {
	CUDAResize bool
	NVENC      bool
}

// Any reports whether any hardware path is usable.
func (c Capabilities) Any() bool {
	return c.CUDAResize || c.NVENC
}

// Summary renders the capabilities for logs and the doctor table.
func (c Capabilities) Summary() string {
	if !c.Any() {
		return "software only"
	}
	var parts []string
	if c.CUDAResize {
		parts = append(parts, "scale_cuda")
	}
	if c.NVENC {
		parts = append(parts, "h264_nvenc")
	}
	return strings.Join(parts, ", ")
}

var (
	filterListArgs = []string{"-filters"}
	encoderArgs    = []string{
		"-f", "lavfi",
		"-i", "color=c=black:s=256x256:r=30:d=0.2",
		"-c:v", "h264_nvenc",
		"-frames:v", "5",
		"-f", "null", "-",
	}
	cudaResizeArgs = []string{
		"-init_hw_device", "cuda=cu",
		"-filter_hw_device", "cu",
		"-f", "lavfi",
		"-i", "color=c=black:s=256x256:r=30:d=0.2",
		"-vf", "format=nv12,hwupload,scale_cuda=128:128,hwdownload,format=nv12",
		"-frames:v", "1",
		"-f", "null", "-",
	}
)

// Probe runs the preflight encodes. Failures are not errors: they simply
// mark the corresponding path unavailable.
func Probe(ctx context.Context, runner ffmpeg.Runner, logger *slog.Logger) Capabilities {
	logger = logging.NewComponentLogger(logger, "hwaccel")
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var caps Capabilities
	if err := runner.Run(ctx, ffmpeg.Command{Args: encoderArgs}); err != nil {
		logger.Debug("nvenc preflight failed", logging.Error(err))
	} else {
		caps.NVENC = true
	}

	var filters bytes.Buffer
	if err := runner.Run(ctx, ffmpeg.Command{Args: filterListArgs, Stdout: &filters}); err != nil {
		logger.Debug("filter listing failed", logging.Error(err))
	} else if strings.Contains(filters.String(), "scale_cuda") {
		if err := runner.Run(ctx, ffmpeg.Command{Args: cudaResizeArgs}); err != nil {
			logger.Debug("scale_cuda preflight failed", logging.Error(err))
		} else {
			caps.CUDAResize = true
		}
	}
	return caps
}

// Context scopes hardware use for one run. Buffers tied to the run register
// a release hook so they are dropped together with the context.
type Context struct {
	caps     Capabilities
	logger   *slog.Logger
	mu       sync.Mutex
	hooks    []func()
	released bool
}

// Acquire probes the hardware when enabled and returns the run context.
// When disabled the context reports no capabilities and no probe runs.
func Acquire(ctx context.Context, runner ffmpeg.Runner, enabled bool, logger *slog.Logger) *Context {
	hc := Software()
	hc.logger = logging.NewComponentLogger(logger, "hwaccel")
	if enabled && runner != nil {
		hc.caps = Probe(ctx, runner, logger)
	}
	hc.logger.Info("hardware capabilities",
		logging.Bool("enabled", enabled),
		logging.String("paths", hc.caps.Summary()),
	)
	return hc
}

// Software returns a context with no hardware capabilities.
func Software() *Context {
	return &Context{logger: logging.NewNop()}
}

// Capabilities returns the probed capabilities.
func (c *Context) Capabilities() Capabilities {
	if c == nil {
		return Capabilities{}
	}
	return c.caps
}

// OnRelease registers a hook run by Release. Hooks registered after release
// run immediately.
func (c *Context) OnRelease(hook func()) {
	if c == nil || hook == nil {
		return
	}
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		hook()
		return
	}
	c.hooks = append(c.hooks, hook)
	c.mu.Unlock()
}

// Release runs registered hooks in reverse order and returns memory to the
// OS. It is safe to call more than once.
func (c *Context) Release() {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		return
	}
	c.released = true
	hooks := c.hooks
	c.hooks = nil
	c.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
	runtime.GC()
	debug.FreeOSMemory()
	c.logger.Debug("hardware context released", logging.Int("hooks", len(hooks)))
}
