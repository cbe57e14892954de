package compose

import (
	"image/color"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"reelcast/internal/reel"
)

func sampleTimeline() *reel.Timeline {
	return &reel.Timeline{
		Width:      1080,
		Height:     1920,
		FPS:        30,
		Background: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff},
		Clips: []reel.TrackClip{
			{Path: "/w/frame_0000.png", Start: 0, Duration: 5 * time.Second, Transition: "crossfade"},
			{Path: "/w/frame_0001.png", Start: 5 * time.Second, Duration: 2500 * time.Millisecond, Transition: "slide_left"},
		},
		Captions: []reel.CaptionLayer{
			{Path: "/w/caption_00000_h.png", X: 400, Y: 900, Start: 0.5, End: 1.25},
		},
		Audio:          reel.AudioTrack{Path: "/a/narration.mp3", Duration: 7500 * time.Millisecond, Trimmed: true},
		Duration:       7500 * time.Millisecond,
		TransitionTime: time.Second,
	}
}

func TestBuildGraphLayersInputs(t *testing.T) {
	graph, err := BuildGraph(sampleTimeline())
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	if !strings.Contains(graph.Inputs[3], "color=c=0x102030:s=1080x1920:r=30:d=7.5") {
		t.Fatalf("unexpected background source: %v", graph.Inputs[:4])
	}
	var sources []string
	for i, arg := range graph.Inputs {
		if arg == "-i" {
			sources = append(sources, graph.Inputs[i+1])
		}
	}
	want := []string{"/w/frame_0000.png", "/w/frame_0001.png", "/w/caption_00000_h.png", "/a/narration.mp3"}
	if !slices.Equal(sources[1:], want) {
		t.Fatalf("unexpected input order: %v", sources)
	}
	if !graph.HasAudio {
		t.Fatal("expected audio output")
	}
	if got := graph.MapArgs(); !slices.Equal(got, []string{"-map", "[vout]", "-map", "[aout]"}) {
		t.Fatalf("unexpected map args %v", got)
	}

	for _, fragment := range []string{
		"[1:v]scale=1080:1920,setsar=1,format=rgba,fade=t=in:st=0:d=1:color=0x102030",
		"trim=duration=2.5",
		"[c0][c1]concat=n=2:v=1:a=0[track]",
		"[base0][3:v]overlay=x=400:y=900:enable='gte(t,0.5)*lt(t,1.25)'[cap0]",
		"[cap0]format=yuv420p,trim=duration=7.5,setpts=PTS-STARTPTS[vout]",
		"[4:a]atrim=duration=7.5,asetpts=PTS-STARTPTS[aout]",
	} {
		if !strings.Contains(graph.Script, fragment) {
			t.Errorf("script missing %q:\n%s", fragment, graph.Script)
		}
	}
}

func TestBuildGraphCaptionOnlySilent(t *testing.T) {
	tl := sampleTimeline()
	tl.Clips = nil
	tl.Audio = reel.AudioTrack{}
	graph, err := BuildGraph(tl)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	if graph.HasAudio || strings.Contains(graph.Script, "atrim") {
		t.Fatalf("expected no audio chain:\n%s", graph.Script)
	}
	if !strings.HasPrefix(graph.Script, "[0:v][1:v]overlay") {
		t.Fatalf("captions should sit directly on the background:\n%s", graph.Script)
	}
}

func TestBuildGraphRejectsUnknownTransition(t *testing.T) {
	tl := sampleTimeline()
	tl.Clips[1].Transition = "spin"
	if _, err := BuildGraph(tl); err == nil || !strings.Contains(err.Error(), "clip 2") {
		t.Fatalf("expected clip 2 error, got %v", err)
	}
}

func TestBuildGraphRejectsEmptyTimeline(t *testing.T) {
	if _, err := BuildGraph(&reel.Timeline{}); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

var enablePattern = regexp.MustCompile(`enable='gte\(t,([0-9.]+)\)\*lt\(t,([0-9.]+)\)'`)

func TestBuildGraphCaptionWindowsAreHalfOpen(t *testing.T) {
	tl := &reel.Timeline{
		Width:    1080,
		Height:   1920,
		FPS:      30,
		Duration: 2100 * time.Millisecond,
		Captions: []reel.CaptionLayer{
			{Path: "/w/caption_00000_h.png", Start: 0, End: 1},
			{Path: "/w/caption_00001_h.png", Start: 1, End: 2},
			{Path: "/w/caption_00001_s.png", Start: 2, End: 2.1},
		},
		Audio: reel.AudioTrack{Path: "/a/narration.wav", Duration: 2100 * time.Millisecond},
	}
	graph, err := BuildGraph(tl)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	matches := enablePattern.FindAllStringSubmatch(graph.Script, -1)
	if len(matches) != len(tl.Captions) {
		t.Fatalf("expected %d enable windows, got %d:\n%s", len(tl.Captions), len(matches), graph.Script)
	}
	if strings.Contains(graph.Script, "between(") {
		t.Fatalf("closed windows in script:\n%s", graph.Script)
	}
	active := func(at float64) int {
		count := 0
		for _, m := range matches {
			start, _ := strconv.ParseFloat(m[1], 64)
			end, _ := strconv.ParseFloat(m[2], 64)
			if at >= start && at < end {
				count++
			}
		}
		return count
	}
	for _, at := range []float64{0, 1, 2} {
		if got := active(at); got != 1 {
			t.Fatalf("t=%v: %d captions enabled, want 1", at, got)
		}
	}
	if got := active(2.1); got != 0 {
		t.Fatalf("t=2.1: %d captions enabled after the last window", got)
	}
}
