package compose

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"reelcast/internal/palette"
	"reelcast/internal/reel"
	"reelcast/internal/transition"
)

// Output pad labels in the rendered filter graph.
const (
	VideoLabel = "vout"
	AudioLabel = "aout"
)

// Graph is a timeline rendered for ffmpeg: the input arguments in order and
// the matching filter_complex script.
type Graph struct {
	Inputs   []string
	Script   string
	HasAudio bool
	Duration time.Duration
}

// MapArgs returns the -map arguments selecting the graph outputs.
func (g Graph) MapArgs() []string {
	args := []string{"-map", "[" + VideoLabel + "]"}
	if g.HasAudio {
		args = append(args, "-map", "["+AudioLabel+"]")
	}
	return args
}

// BuildGraph renders tl. Input 0 is the background colour source, then one
// looped still per clip, one still per caption layer and the audio last.
func BuildGraph(tl *reel.Timeline) (Graph, error) {
	if tl == nil || tl.Duration <= 0 {
		return Graph{}, fmt.Errorf("build graph: empty timeline")
	}
	bg := palette.Hex(tl.Background)
	total := seconds(tl.Duration)

	inputs := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%dx%d:r=%d:d=%s", bg, tl.Width, tl.Height, tl.FPS, total),
	}
	var script strings.Builder
	next := 1

	base := "0:v"
	if len(tl.Clips) > 0 {
		labels := make([]string, 0, len(tl.Clips))
		for i, clip := range tl.Clips {
			inputs = append(inputs,
				"-loop", "1",
				"-framerate", strconv.Itoa(tl.FPS),
				"-t", seconds(clip.Duration),
				"-i", clip.Path,
			)
			chain, err := clipChain(tl, clip)
			if err != nil {
				return Graph{}, fmt.Errorf("clip %d: %w", i+1, err)
			}
			label := fmt.Sprintf("c%d", i)
			fmt.Fprintf(&script, "[%d:v]%s[%s];\n", next, chain, label)
			labels = append(labels, "["+label+"]")
			next++
		}
		fmt.Fprintf(&script, "%sconcat=n=%d:v=1:a=0[track];\n", strings.Join(labels, ""), len(labels))
		fmt.Fprintf(&script, "[0:v][track]overlay=x=0:y=0:eof_action=pass:format=auto[base0];\n")
		base = "base0"
	}

	for i, layer := range tl.Captions {
		inputs = append(inputs, "-i", layer.Path)
		out := fmt.Sprintf("cap%d", i)
		fmt.Fprintf(&script, "[%s][%d:v]overlay=x=%d:y=%d:enable='%s'[%s];\n",
			base, next, layer.X, layer.Y, enableWindow(layer.Start, layer.End), out)
		base = out
		next++
	}
	fmt.Fprintf(&script, "[%s]format=yuv420p,trim=duration=%s,setpts=PTS-STARTPTS[%s]", base, total, VideoLabel)

	if tl.HasAudio() {
		inputs = append(inputs, "-i", tl.Audio.Path)
		fmt.Fprintf(&script, ";\n[%d:a]atrim=duration=%s,asetpts=PTS-STARTPTS[%s]", next, total, AudioLabel)
	}
	return Graph{
		Inputs:   inputs,
		Script:   script.String(),
		HasAudio: tl.HasAudio(),
		Duration: tl.Duration,
	}, nil
}

// enableWindow renders the half-open interval [start, end) as an ffmpeg
// expression. between() is closed on both ends and would show two captions
// on a frame that lands exactly on a word boundary.
func enableWindow(start, end float64) string {
	return fmt.Sprintf("gte(t,%s)*lt(t,%s)", formatFloat(start), formatFloat(end))
}

// clipChain normalizes one looped still and applies its entry transition.
func clipChain(tl *reel.Timeline, clip reel.TrackClip) (string, error) {
	kind, err := transition.Parse(clip.Transition)
	if err != nil {
		return "", err
	}
	length := min(tl.TransitionTime, clip.Duration)
	tr := transition.New(kind, length.Seconds(), tl.Width)

	parts := []string{fmt.Sprintf("scale=%d:%d,setsar=1,format=rgba", tl.Width, tl.Height)}
	if filter := tr.Filter(tl.Width, tl.Height, tl.FPS, palette.Hex(tl.Background)); filter != "" {
		parts = append(parts, filter)
	}
	parts = append(parts,
		fmt.Sprintf("fps=%d", tl.FPS),
		fmt.Sprintf("trim=duration=%s", seconds(clip.Duration)),
		"setpts=PTS-STARTPTS",
		"format=yuv420p",
	)
	return strings.Join(parts, ","), nil
}

func seconds(d time.Duration) string {
	return formatFloat(d.Seconds())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
