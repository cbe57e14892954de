package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"reelcast/internal/logging"
)

const maxStderrBytes = 8 * 1024

var commandContext = exec.CommandContext

// Progress is one sample of ffmpeg's -progress output.
type Progress struct {
	OutTime time.Duration
	Frame   int64
	Speed   string
	Done    bool
}

// Command describes a single ffmpeg invocation. Args exclude the binary and
// the global -hide_banner/-nostdin flags, which the runner adds.
type Command struct {
	Args []string
	// Stdout receives the process output. It must be nil when Progress is set,
	// because progress is read from stdout.
	Stdout   io.Writer
	Progress func(Progress)
}

// Runner executes ffmpeg commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a non-zero ffmpeg exit with the tail of its stderr.
type ExitError struct {
	Code       int
	StderrTail string
	Err        error
}

func (e *ExitError) Error() string {
	tail := lastLines(e.StderrTail, 3)
	if tail == "" {
		return fmt.Sprintf("ffmpeg exited with code %d", e.Code)
	}
	return fmt.Sprintf("ffmpeg exited with code %d: %s", e.Code, tail)
}

func (e *ExitError) Unwrap() error { return e.Err }

// CLI runs the ffmpeg executable found at Binary.
type CLI struct {
	Binary string
	Logger *slog.Logger
}

// NewCLI constructs a CLI runner.
func NewCLI(binary string, logger *slog.Logger) *CLI {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &CLI{Binary: binary, Logger: logging.NewComponentLogger(logger, "ffmpeg")}
}

// Run executes the command and waits for it to exit.
func (c *CLI) Run(ctx context.Context, command Command) error {
	if command.Stdout != nil && command.Progress != nil {
		return errors.New("ffmpeg: stdout and progress are mutually exclusive")
	}
	args := []string{"-hide_banner", "-nostdin", "-y"}
	if command.Progress != nil {
		args = append(args, "-progress", "pipe:1", "-nostats")
	}
	args = append(args, command.Args...)

	cmd := commandContext(ctx, c.Binary, args...)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &tailWriter{buf: &stderrBuf, limit: maxStderrBytes}

	var progress io.Reader
	switch {
	case command.Progress != nil:
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("ffmpeg stdout pipe: %w", err)
		}
		progress = stdout
	case command.Stdout != nil:
		cmd.Stdout = command.Stdout
	default:
		cmd.Stdout = io.Discard
	}

	start := time.Now()
	c.Logger.Debug("running ffmpeg", logging.String("args", strings.Join(args, " ")))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	if progress != nil {
		// Drain before Wait closes the pipe.
		ParseProgress(progress, command.Progress)
	}
	err := cmd.Wait()
	elapsed := time.Since(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		c.Logger.Debug("ffmpeg failed",
			logging.Int("exit_code", code),
			logging.Duration("elapsed", elapsed),
			logging.String("stderr_tail", lastLines(stderrBuf.String(), 5)),
		)
		return &ExitError{Code: code, StderrTail: stderrBuf.String(), Err: err}
	}
	c.Logger.Debug("ffmpeg finished", logging.Duration("elapsed", elapsed))
	return nil
}

// ParseProgress reads key=value progress blocks and reports each completed
// block. It returns when r is exhausted.
func ParseProgress(r io.Reader, report func(Progress)) {
	scanner := bufio.NewScanner(r)
	var current Progress
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "frame":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				current.Frame = n
			}
		case "out_time_us", "out_time_ms":
			// Both keys carry microseconds.
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
				current.OutTime = time.Duration(n) * time.Microsecond
			}
		case "speed":
			current.Speed = strings.TrimSpace(value)
		case "progress":
			current.Done = value == "end"
			if report != nil {
				report(current)
			}
		}
	}
}

type tailWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *tailWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.buf.Write(p)
	if w.buf.Len() > w.limit {
		b := w.buf.Bytes()
		tail := append([]byte(nil), b[len(b)-w.limit:]...)
		w.buf.Reset()
		w.buf.Write(tail)
	}
	return n, nil
}

func lastLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, " | ")
}
