package reel

import (
	"image/color"
	"time"
)

// TrackClip is a normalized clip placed on the image track.
type TrackClip struct {
	Path       string
	Start      time.Duration
	Duration   time.Duration
	Transition string
}

// CaptionLayer is a caption raster materialized for composition.
type CaptionLayer struct {
	Path  string
	X     int
	Y     int
	Start float64
	End   float64
}

// AudioTrack references the narration audio and its reconciled length.
type AudioTrack struct {
	Path     string
	Duration time.Duration
	Trimmed  bool
}

// Timeline is the fully assembled composition handed to the encoder.
type Timeline struct {
	Width          int
	Height         int
	FPS            int
	Background     color.RGBA
	Clips          []TrackClip
	Captions       []CaptionLayer
	Audio          AudioTrack
	Duration       time.Duration
	TransitionTime time.Duration
	ImageTrimmed   bool
}

// HasAudio reports whether an audio track is attached.
func (t *Timeline) HasAudio() bool {
	return t != nil && t.Audio.Path != ""
}

// RenderConfig is the immutable per-run render configuration. It carries no
// codec: the codec depends on the hardware found at run time and is resolved
// at encode time by encoding.SelectSettings, which records it in
// Settings.Codec.
type RenderConfig struct {
	Width                int
	Height               int
	FPS                  int
	Bitrate              string
	HardwareAcceleration bool
	Workers              int
	SoftwarePreset       string
	HardwarePreset       string
}
