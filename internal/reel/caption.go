package reel

import "image"

// Anchor positions a caption raster relative to the frame. X and Y are
// fractions of the frame size locating the raster's centre.
type Anchor struct {
	X float64
	Y float64
}

// Position returns the top-left pixel for a raster of size w×h centred on
// the anchor inside a frame of frameW×frameH.
func (a Anchor) Position(frameW, frameH, w, h int) (int, int) {
	x := int(a.X*float64(frameW)) - w/2
	y := int(a.Y*float64(frameH)) - h/2
	return x, y
}

// CaptionClip is one styled caption raster with its visibility window in
// seconds, [Start, End).
type CaptionClip struct {
	Image  image.Image
	Start  float64
	End    float64
	Anchor Anchor
}

// Visible reports whether the clip has a non-empty window and a raster.
func (c CaptionClip) Visible() bool {
	return c.Image != nil && c.End > c.Start
}

// CaptionPair is the highlighted/settled pair produced for one word.
type CaptionPair struct {
	Word        Word
	Highlighted CaptionClip
	Settled     CaptionClip
}

// Release drops both rasters.
func (p *CaptionPair) Release() {
	p.Highlighted.Image = nil
	p.Settled.Image = nil
}
