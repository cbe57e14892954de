package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelcast/internal/encoding"
	"reelcast/internal/imaging"
	"reelcast/internal/reel"
	"reelcast/internal/services"
)

// Request describes one generation run.
type Request struct {
	ImagesDir string
	AudioPath string
	Output    string
	// Transitions are matched to images by position.
	Transitions []string
	NoCaptions  bool
	NoHWAccel   bool
	// Workers overrides the configured normalization pool size when > 0.
	Workers int

	OnStage  func(stage string)
	OnImage  imaging.ProgressFunc
	OnEncode encoding.ProgressFunc
}

// Result is the outcome of a run. Err is nil on success and otherwise part
// of the services.ErrVideoGeneration family.
type Result struct {
	RunID        string
	Output       string
	SilentOutput string
	Subtitles    string
	Duration     time.Duration
	SizeBytes    int64
	Images       int
	Words        int
	Encoder      string
	Hardware     string
	Elapsed      time.Duration
	Err          error
}

// Success reports whether the output was written.
func (r Result) Success() bool {
	return r.Err == nil
}

// Message returns a user-facing summary of the outcome.
func (r Result) Message() string {
	if r.Err != nil {
		return services.UserMessage(r.Err)
	}
	return fmt.Sprintf("Video created: %s", r.Output)
}

var supportedAudio = map[string]bool{
	".mp3": true,
	".wav": true,
}

// validateAudio checks the narration file exists and has a supported format.
func validateAudio(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return services.Wrap(services.ErrValidation, stageValidate, "audio", "Audio file is required", nil)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err == nil {
			err = errors.New("is a directory")
		}
		return services.Wrap(services.ErrValidation, stageValidate, "audio",
			fmt.Sprintf("Audio file does not exist: %s", path), err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedAudio[ext] {
		return services.Wrap(services.ErrValidation, stageValidate, "audio",
			fmt.Sprintf("Unsupported audio format: %s", ext), nil)
	}
	return nil
}

// discoverImages lists the supported images in dir.
func discoverImages(dir string) ([]reel.ImageAsset, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, services.Wrap(services.ErrValidation, stageValidate, "images", "Image folder is required", nil)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if err == nil {
			err = errors.New("not a directory")
		}
		return nil, services.Wrap(services.ErrValidation, stageValidate, "images",
			fmt.Sprintf("No valid images found in folder: %s", dir), err)
	}
	assets, err := imaging.Discover(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrImageProcessing, stageValidate, "images", "Failed to process images", err)
	}
	if len(assets) == 0 {
		return nil, services.Wrap(services.ErrValidation, stageValidate, "images",
			fmt.Sprintf("No valid images found in folder: %s", dir), nil)
	}
	return assets, nil
}

func validateOutput(path string) error {
	if strings.TrimSpace(path) == "" {
		return services.Wrap(services.ErrValidation, stageValidate, "output", "Output path is required", nil)
	}
	return nil
}
