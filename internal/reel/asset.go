package reel

import (
	"image"
	"time"
)

// ImageAsset is a source image discovered on disk. Immutable once discovered.
type ImageAsset struct {
	Index  int
	Path   string
	Width  int
	Height int
}

// NormalizedClip is one image resized and cropped to the target frame. It
// owns either a decoded frame buffer (Frame) or a reference to a spilled PNG
// (Path); both may be set until Release is called.
type NormalizedClip struct {
	Index      int
	Asset      ImageAsset
	Frame      *image.RGBA
	Path       string
	Width      int
	Height     int
	Duration   time.Duration
	Transition string
}

// HasFrame reports whether the in-memory buffer is still held.
func (c *NormalizedClip) HasFrame() bool {
	return c != nil && c.Frame != nil
}

// Release drops the in-memory frame buffer. The spilled path, if any, stays
// valid until the run work directory is removed.
func (c *NormalizedClip) Release() {
	if c == nil {
		return
	}
	c.Frame = nil
}

// ReleaseClips releases every clip in the slice.
func ReleaseClips(clips []NormalizedClip) {
	for i := range clips {
		clips[i].Release()
	}
}

// TrackDuration sums clip durations.
func TrackDuration(clips []NormalizedClip) time.Duration {
	var total time.Duration
	for _, clip := range clips {
		total += clip.Duration
	}
	return total
}
