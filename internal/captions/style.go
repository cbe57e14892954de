package captions

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style renders the two variants of a word caption. Both variants of one
// word must have the same size so they share a position on screen.
type Style interface {
	Highlighted(text string) (image.Image, error)
	Settled(text string) (image.Image, error)
}

// HighlightStyle draws the spoken word as dark text on a light box and the
// settled word as light text with an outline on a transparent background.
type HighlightStyle struct {
	Face          font.Face
	TextColor     color.RGBA
	HighlightText color.RGBA
	HighlightBG   color.RGBA
	StrokeColor   color.RGBA
	StrokeWidth   int
	Padding       int
	Uppercase     bool
	Language      language.Tag
}

// DefaultHighlightStyle returns white text with a black outline, switching to
// black on white while highlighted.
func DefaultHighlightStyle(face font.Face) *HighlightStyle {
	return &HighlightStyle{
		Face:          face,
		TextColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		HighlightText: color.RGBA{A: 255},
		HighlightBG:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		StrokeColor:   color.RGBA{A: 255},
		StrokeWidth:   3,
		Padding:       10,
		Language:      language.English,
	}
}

var errNoFace = errors.New("caption style has no font face")

// Highlighted renders the word on a filled box.
func (s *HighlightStyle) Highlighted(text string) (image.Image, error) {
	text, canvas, origin, err := s.prepare(text)
	if err != nil {
		return nil, err
	}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(s.HighlightBG), image.Point{}, draw.Src)
	s.drawText(canvas, text, origin, s.HighlightText)
	return canvas, nil
}

// Settled renders the word with an outline and no fill.
func (s *HighlightStyle) Settled(text string) (image.Image, error) {
	text, canvas, origin, err := s.prepare(text)
	if err != nil {
		return nil, err
	}
	if r := s.StrokeWidth; r > 0 {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if (dx == 0 && dy == 0) || dx*dx+dy*dy > r*r {
					continue
				}
				s.drawText(canvas, text, origin.Add(fixed.P(dx, dy)), s.StrokeColor)
			}
		}
	}
	s.drawText(canvas, text, origin, s.TextColor)
	return canvas, nil
}

// prepare applies casing, sizes the canvas for the text plus padding and
// stroke, and returns the baseline origin.
func (s *HighlightStyle) prepare(text string) (string, *image.RGBA, fixed.Point26_6, error) {
	if s.Face == nil {
		return "", nil, fixed.Point26_6{}, errNoFace
	}
	text = strings.TrimSpace(text)
	if s.Uppercase {
		text = cases.Upper(s.Language).String(text)
	}
	metrics := s.Face.Metrics()
	advance := font.MeasureString(s.Face, text)
	margin := s.Padding + s.StrokeWidth
	width := advance.Ceil() + 2*margin
	height := (metrics.Ascent + metrics.Descent).Ceil() + 2*margin
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	origin := fixed.Point26_6{
		X: fixed.I(margin),
		Y: fixed.I(margin) + metrics.Ascent,
	}
	return text, canvas, origin, nil
}

func (s *HighlightStyle) drawText(dst *image.RGBA, text string, dot fixed.Point26_6, c color.RGBA) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: s.Face,
		Dot:  dot,
	}
	drawer.DrawString(text)
}
