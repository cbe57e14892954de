package config

import "runtime"

const (
	defaultLogDir             = "~/.local/share/reelcast/logs"
	defaultHistoryDB          = "~/.local/share/reelcast/history.db"
	defaultVideoWidth         = 1080
	defaultVideoHeight        = 1920
	defaultFPS                = 30
	defaultImageDuration      = 5.0
	defaultTransitionDuration = 1.0
	defaultBitrate            = "8000k"
	defaultBackground         = "black"
	defaultSoftwarePreset     = "medium"
	defaultHardwarePreset     = "p7"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultFontSize           = 64
	defaultTextColor          = "white"
	defaultHighlightTextColor = "black"
	defaultHighlightBG        = "white"
	defaultStrokeColor        = "black"
	defaultStrokeWidth        = 3
	defaultPadding            = 10
	defaultAnchorX            = 0.5
	defaultAnchorY            = 0.5
	defaultSettleSeconds      = 0.1
	defaultCaptionLanguage    = "en"
	defaultWhisperXModel      = "base"
	defaultWhisperXVADMethod  = "silero"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir(),
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Video: Video{
			Width:              defaultVideoWidth,
			Height:             defaultVideoHeight,
			FPS:                defaultFPS,
			ImageDuration:      defaultImageDuration,
			TransitionDuration: defaultTransitionDuration,
			Bitrate:            defaultBitrate,
			Background:         defaultBackground,
		},
		Encoding: Encoding{
			HardwareAcceleration: true,
			Workers:              runtime.NumCPU(),
			SoftwarePreset:       defaultSoftwarePreset,
			HardwarePreset:       defaultHardwarePreset,
			FFmpegBinary:         defaultFFmpegBinary,
			FFprobeBinary:        defaultFFprobeBinary,
		},
		Captions: Captions{
			Enabled:            true,
			FontSize:           defaultFontSize,
			TextColor:          defaultTextColor,
			HighlightTextColor: defaultHighlightTextColor,
			HighlightBG:        defaultHighlightBG,
			StrokeColor:        defaultStrokeColor,
			StrokeWidth:        defaultStrokeWidth,
			Padding:            defaultPadding,
			AnchorX:            defaultAnchorX,
			AnchorY:            defaultAnchorY,
			SettleSeconds:      defaultSettleSeconds,
			Language:           defaultCaptionLanguage,
		},
		Transcription: Transcription{
			WhisperXModel:     defaultWhisperXModel,
			WhisperXVADMethod: defaultWhisperXVADMethod,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
