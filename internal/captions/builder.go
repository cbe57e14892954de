package captions

import (
	"fmt"
	"log/slog"
	"math"

	"reelcast/internal/logging"
	"reelcast/internal/reel"
	"reelcast/internal/services"
)

// DefaultSettle is how long the plain word lingers after its highlight.
const DefaultSettle = 0.1

// Builder renders caption pairs for a sequence of words.
type Builder struct {
	Style  Style
	Settle float64
	Anchor reel.Anchor
	Logger *slog.Logger
}

// SettleWindow returns the settled visibility for a word ending at end when
// the next word starts at next: min(settle, next-end), never negative. A NaN
// next means there is no following word.
func SettleWindow(settle, end, next float64) float64 {
	window := settle
	if !math.IsNaN(next) {
		window = math.Min(window, next-end)
	}
	return math.Max(window, 0)
}

// Build renders one pair per word. words must be in chronological order.
func (b *Builder) Build(words []reel.Word) ([]reel.CaptionPair, error) {
	if b.Style == nil {
		return nil, services.Wrap(services.ErrCaptionGeneration, stageCaptions, "build", "Failed to generate captions", fmt.Errorf("no caption style configured"))
	}
	logger := logging.NewComponentLogger(b.Logger, "captions")

	pairs := make([]reel.CaptionPair, 0, len(words))
	for i, word := range words {
		next := math.NaN()
		if i+1 < len(words) {
			next = words[i+1].Start
		}
		settle := SettleWindow(b.Settle, word.End, next)

		highlighted, err := b.Style.Highlighted(word.Text)
		if err != nil {
			releasePairs(pairs)
			return nil, services.Wrap(services.ErrCaptionGeneration, stageCaptions, "render highlighted", "Failed to generate captions", fmt.Errorf("word %q: %w", word.Text, err))
		}
		settled, err := b.Style.Settled(word.Text)
		if err != nil {
			releasePairs(pairs)
			return nil, services.Wrap(services.ErrCaptionGeneration, stageCaptions, "render settled", "Failed to generate captions", fmt.Errorf("word %q: %w", word.Text, err))
		}

		pairs = append(pairs, reel.CaptionPair{
			Word: word,
			Highlighted: reel.CaptionClip{
				Image:  highlighted,
				Start:  word.Start,
				End:    word.End,
				Anchor: b.Anchor,
			},
			Settled: reel.CaptionClip{
				Image:  settled,
				Start:  word.End,
				End:    word.End + settle,
				Anchor: b.Anchor,
			},
		})
	}
	logger.Debug("caption clips built", logging.Int("words", len(words)))
	return pairs, nil
}

func releasePairs(pairs []reel.CaptionPair) {
	for i := range pairs {
		pairs[i].Release()
	}
}

// ReleasePairs drops every caption raster.
func ReleasePairs(pairs []reel.CaptionPair) {
	releasePairs(pairs)
}
