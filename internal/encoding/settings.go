package encoding

import (
	"strconv"
	"strings"

	"reelcast/internal/hwaccel"
	"reelcast/internal/reel"
)

// Encoder names and their default presets.
const (
	CodecSoftware         = "libx264"
	CodecNVENC            = "h264_nvenc"
	DefaultSoftwarePreset = "medium"
	DefaultHardwarePreset = "p7"
	DefaultBitrate        = "8000k"
	AudioCodec            = "aac"
	AudioBitrate          = "192k"
	PixelFormat           = "yuv420p"
)

// Settings is the resolved encoder configuration for one render.
type Settings struct {
	Codec    string
	Preset   string
	Hardware bool
	FPS      int
	Bitrate  string
	Threads  int
}

// SelectSettings resolves the codec for a run. It picks NVENC when
// acceleration is enabled and the hardware context reports it, libx264
// otherwise.
func SelectSettings(cfg reel.RenderConfig, caps hwaccel.Capabilities) Settings {
	settings := Settings{
		Codec:   CodecSoftware,
		Preset:  firstNonEmpty(cfg.SoftwarePreset, DefaultSoftwarePreset),
		FPS:     cfg.FPS,
		Bitrate: firstNonEmpty(cfg.Bitrate, DefaultBitrate),
		Threads: max(cfg.Workers, 1),
	}
	if cfg.HardwareAcceleration && caps.NVENC {
		settings.Codec = CodecNVENC
		settings.Preset = firstNonEmpty(cfg.HardwarePreset, DefaultHardwarePreset)
		settings.Hardware = true
	}
	return settings
}

// VideoArgs returns the output arguments for the video stream.
func (s Settings) VideoArgs() []string {
	args := []string{"-c:v", s.Codec, "-preset", s.Preset}
	if s.Hardware {
		args = append(args, "-rc", "vbr")
	}
	args = append(args, "-b:v", s.Bitrate)
	if s.FPS > 0 {
		args = append(args, "-r", strconv.Itoa(s.FPS))
	}
	return append(args,
		"-pix_fmt", PixelFormat,
		"-threads", strconv.Itoa(s.Threads),
	)
}

// AudioArgs returns the output arguments for the audio stream.
func (s Settings) AudioArgs() []string {
	return []string{"-c:a", AudioCodec, "-b:a", AudioBitrate}
}

// String describes the settings for logs.
func (s Settings) String() string {
	return s.Codec + "/" + s.Preset + "@" + s.Bitrate
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
