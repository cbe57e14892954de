package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	if err := c.normalizeEncoding(); err != nil {
		return err
	}
	if err := c.normalizeCaptions(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir()
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.Bitrate = strings.TrimSpace(c.Video.Bitrate)
	if c.Video.Bitrate == "" {
		c.Video.Bitrate = defaultBitrate
	}
	c.Video.Background = strings.TrimSpace(c.Video.Background)
	if c.Video.Background == "" {
		c.Video.Background = defaultBackground
	}
}

func (c *Config) normalizeEncoding() error {
	if c.Encoding.Workers <= 0 {
		c.Encoding.Workers = runtime.NumCPU()
	}
	c.Encoding.SoftwarePreset = strings.TrimSpace(c.Encoding.SoftwarePreset)
	if c.Encoding.SoftwarePreset == "" {
		c.Encoding.SoftwarePreset = defaultSoftwarePreset
	}
	c.Encoding.HardwarePreset = strings.TrimSpace(c.Encoding.HardwarePreset)
	if c.Encoding.HardwarePreset == "" {
		c.Encoding.HardwarePreset = defaultHardwarePreset
	}
	c.Encoding.FFmpegBinary = strings.TrimSpace(c.Encoding.FFmpegBinary)
	if value, ok := os.LookupEnv("REELCAST_FFMPEG"); ok && strings.TrimSpace(value) != "" && (c.Encoding.FFmpegBinary == "" || c.Encoding.FFmpegBinary == defaultFFmpegBinary) {
		c.Encoding.FFmpegBinary = strings.TrimSpace(value)
	}
	if c.Encoding.FFmpegBinary == "" {
		c.Encoding.FFmpegBinary = defaultFFmpegBinary
	}
	c.Encoding.FFprobeBinary = strings.TrimSpace(c.Encoding.FFprobeBinary)
	if value, ok := os.LookupEnv("REELCAST_FFPROBE"); ok && strings.TrimSpace(value) != "" && (c.Encoding.FFprobeBinary == "" || c.Encoding.FFprobeBinary == defaultFFprobeBinary) {
		c.Encoding.FFprobeBinary = strings.TrimSpace(value)
	}
	if c.Encoding.FFprobeBinary == "" {
		c.Encoding.FFprobeBinary = defaultFFprobeBinary
	}
	return nil
}

func (c *Config) normalizeCaptions() error {
	c.Captions.FontPath = strings.TrimSpace(c.Captions.FontPath)
	if c.Captions.FontPath != "" {
		expanded, err := expandPath(c.Captions.FontPath)
		if err != nil {
			return fmt.Errorf("captions.font_path: %w", err)
		}
		c.Captions.FontPath = expanded
	}
	for _, field := range []*string{&c.Captions.TextColor, &c.Captions.HighlightTextColor, &c.Captions.HighlightBG, &c.Captions.StrokeColor} {
		*field = strings.ToLower(strings.TrimSpace(*field))
	}
	if c.Captions.TextColor == "" {
		c.Captions.TextColor = defaultTextColor
	}
	if c.Captions.HighlightTextColor == "" {
		c.Captions.HighlightTextColor = defaultHighlightTextColor
	}
	if c.Captions.HighlightBG == "" {
		c.Captions.HighlightBG = defaultHighlightBG
	}
	if c.Captions.StrokeColor == "" {
		c.Captions.StrokeColor = defaultStrokeColor
	}
	c.Captions.Language = strings.ToLower(strings.TrimSpace(c.Captions.Language))
	if c.Captions.Language == "" {
		c.Captions.Language = defaultCaptionLanguage
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	c.Transcription.WhisperXModel = strings.TrimSpace(c.Transcription.WhisperXModel)
	if c.Transcription.WhisperXModel == "" {
		c.Transcription.WhisperXModel = defaultWhisperXModel
	}
	c.Transcription.WhisperXVADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.WhisperXVADMethod))
	if c.Transcription.WhisperXVADMethod == "" {
		c.Transcription.WhisperXVADMethod = defaultWhisperXVADMethod
	}
	c.Transcription.WhisperXHuggingFace = strings.TrimSpace(c.Transcription.WhisperXHuggingFace)
	if c.Transcription.WhisperXHuggingFace == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Transcription.WhisperXHuggingFace = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
