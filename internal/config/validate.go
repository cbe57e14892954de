package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"reelcast/internal/palette"
)

var bitratePattern = regexp.MustCompile(`^[0-9]+[kKmM]?$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateVideo() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return errors.New("video.width and video.height must be positive")
	}
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return errors.New("video.width and video.height must be even for yuv420p output")
	}
	if c.Video.FPS <= 0 {
		return errors.New("video.fps must be positive")
	}
	if c.Video.ImageDuration <= 0 {
		return errors.New("video.image_duration must be positive")
	}
	if c.Video.TransitionDuration < 0 {
		return errors.New("video.transition_duration must be >= 0")
	}
	if c.Video.TransitionDuration > c.Video.ImageDuration {
		return errors.New("video.transition_duration must not exceed video.image_duration")
	}
	if !bitratePattern.MatchString(c.Video.Bitrate) {
		return fmt.Errorf("video.bitrate %q must look like 8000k", c.Video.Bitrate)
	}
	if _, err := palette.Parse(c.Video.Background); err != nil {
		return fmt.Errorf("video.background: %w", err)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.Workers <= 0 {
		return errors.New("encoding.workers must be positive")
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if c.Captions.FontSize <= 0 {
		return errors.New("captions.font_size must be positive")
	}
	if c.Captions.StrokeWidth < 0 {
		return errors.New("captions.stroke_width must be >= 0")
	}
	if c.Captions.Padding < 0 {
		return errors.New("captions.padding must be >= 0")
	}
	if c.Captions.AnchorX < 0 || c.Captions.AnchorX > 1 || c.Captions.AnchorY < 0 || c.Captions.AnchorY > 1 {
		return errors.New("captions.anchor_x and captions.anchor_y must be between 0 and 1")
	}
	if c.Captions.SettleSeconds < 0 {
		return errors.New("captions.settle_seconds must be >= 0")
	}
	colours := map[string]string{
		"captions.text_color":           c.Captions.TextColor,
		"captions.highlight_text_color": c.Captions.HighlightTextColor,
		"captions.highlight_background": c.Captions.HighlightBG,
		"captions.stroke_color":         c.Captions.StrokeColor,
	}
	for key, value := range colours {
		if _, err := palette.Parse(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.WhisperXVADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.whisperx_vad_method %q is not supported (use silero or pyannote)", c.Transcription.WhisperXVADMethod)
	}
	if c.Transcription.WhisperXVADMethod == "pyannote" && strings.TrimSpace(c.Transcription.WhisperXHuggingFace) == "" {
		return errors.New("transcription.whisperx_hf_token is required when whisperx_vad_method is pyannote")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
}
