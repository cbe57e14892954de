package whisperx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"

	"reelcast/internal/logging"
	"reelcast/internal/reel"
)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "whisperx"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Transcribe runs WhisperX on audioPath and returns its segments in time
// order. Segments with empty text or non-positive length are dropped.
func (s *Service) Transcribe(ctx context.Context, audioPath string) ([]reel.Segment, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, errors.New("transcribe: audio path required")
	}
	if s.cfg.WorkDir != "" {
		if err := os.MkdirAll(s.cfg.WorkDir, 0o755); err != nil {
			return nil, fmt.Errorf("transcribe: ensure work dir: %w", err)
		}
	}
	outputDir, err := os.MkdirTemp(s.cfg.WorkDir, "whisperx-")
	if err != nil {
		return nil, fmt.Errorf("transcribe: create output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	start := time.Now()
	s.logger.Info("transcribing narration",
		logging.String("audio", filepath.Base(audioPath)),
		logging.String("model", s.Model()),
		logging.Bool("cuda", s.cfg.CUDAEnabled),
	)
	if err := s.run(ctx, UVXCommand, s.buildArgs(audioPath, outputDir)...); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	raw, err := LoadSegments(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		return nil, fmt.Errorf("whisperx output: %w", err)
	}
	segments := ToReel(raw)
	s.logger.Info("transcription complete",
		logging.Int("segments", len(segments)),
		logging.Int("dropped", len(raw)-len(segments)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return segments, nil
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, tail(string(output), 2048))
	}
	return nil
}

// buildArgs assembles the uvx invocation: package index selection, the
// whisperx entry point with its decoding knobs, then device placement.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := s.indexArgs()
	args = append(args, "whisperx", source,
		"--model", s.Model(),
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
	)
	for _, knob := range decodeKnobs {
		args = append(args, knob.flag, knob.value)
	}
	args = append(args, s.vadArgs()...)
	if lang := LanguageCode(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return append(args, s.deviceArgs()...)
}

var decodeKnobs = []struct{ flag, value string }{
	{"--batch_size", BatchSize},
	{"--chunk_size", ChunkSize},
	{"--beam_size", BeamSize},
	{"--temperature", Temperature},
}

// indexArgs points uvx at the CUDA wheel index when the GPU is used, keeping
// PyPI as a fallback for everything else.
func (s *Service) indexArgs() []string {
	if s.cfg.CUDAEnabled {
		return []string{"--index-url", CUDAIndexURL, "--extra-index-url", PypiIndexURL}
	}
	return []string{"--index-url", PypiIndexURL}
}

func (s *Service) vadArgs() []string {
	method := s.cfg.VADMethod
	if method == "" {
		method = VADMethodSilero
	}
	args := []string{"--vad_method", method}
	if method == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}
	return args
}

func (s *Service) deviceArgs() []string {
	if s.cfg.CUDAEnabled {
		return []string{"--device", CUDADevice}
	}
	return []string{"--device", CPUDevice, "--compute_type", CPUComputeType}
}

// LanguageCode reduces a language tag ("en-US", "eng", "de") to the two
// letter base WhisperX expects. Unknown or empty input yields "".
func LanguageCode(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "auto") {
		return ""
	}
	tag, err := language.Parse(value)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}

func tail(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[len(text)-limit:]
}
