package transition

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind names one of the supported transitions.
type Kind string

const (
	None       Kind = "none"
	Crossfade  Kind = "crossfade"
	SlideLeft  Kind = "slide_left"
	SlideRight Kind = "slide_right"
	ZoomIn     Kind = "zoom_in"
)

// ZoomFactor is the extra scale reached at the end of a zoom_in.
const ZoomFactor = 0.1

// ErrUnknown is returned by Parse for names outside the supported set.
var ErrUnknown = errors.New("unknown transition")

var aliases = map[string]Kind{
	"":            None,
	"none":        None,
	"crossfade":   Crossfade,
	"fade":        Crossfade,
	"slide_left":  SlideLeft,
	"slide_right": SlideRight,
	"zoom_in":     ZoomIn,
}

// Parse resolves a transition name. Matching ignores case and surrounding
// space; "-" is accepted in place of "_".
func Parse(name string) (Kind, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if kind, ok := aliases[key]; ok {
		return kind, nil
	}
	return None, fmt.Errorf("%w %q (want one of %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}

// ParseList resolves a list of names, failing on the first unknown one.
func ParseList(names []string) ([]Kind, error) {
	kinds := make([]Kind, len(names))
	for i, name := range names {
		kind, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i+1, err)
		}
		kinds[i] = kind
	}
	return kinds, nil
}

// Names lists the canonical transition names.
func Names() []string {
	return []string{string(None), string(Crossfade), string(SlideLeft), string(SlideRight), string(ZoomIn)}
}

// Transform is the visual state of a clip at one instant.
type Transform struct {
	Opacity float64
	OffsetX float64
	Scale   float64
}

// Identity is the untransformed state.
func Identity() Transform {
	return Transform{Opacity: 1, OffsetX: 0, Scale: 1}
}

// Transition is a kind bound to its duration (seconds) and the frame width
// that slides travel across.
type Transition struct {
	Kind       Kind
	Duration   float64
	FrameWidth int
}

// New binds a kind to its duration and frame width.
func New(kind Kind, duration float64, frameWidth int) Transition {
	return Transition{Kind: kind, Duration: duration, FrameWidth: frameWidth}
}

// progress returns t/d clamped to [0, 1]. A non-positive duration means the
// transition has already completed.
func (tr Transition) progress(t float64) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	return math.Max(0, math.Min(t/tr.Duration, 1))
}

// Evaluate returns the transform t seconds into the clip.
func (tr Transition) Evaluate(t float64) Transform {
	p := tr.progress(t)
	out := Identity()
	switch tr.Kind {
	case None:
	case Crossfade:
		out.Opacity = p
	case SlideLeft:
		out.OffsetX = float64(tr.FrameWidth) * (1 - p)
	case SlideRight:
		out.OffsetX = -float64(tr.FrameWidth) * (1 - p)
	case ZoomIn:
		out.Scale = 1 + ZoomFactor*p
	}
	return out
}
