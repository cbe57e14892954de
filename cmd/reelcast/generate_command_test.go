package main

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"reelcast/internal/config"
	"reelcast/internal/encoding"
	"reelcast/internal/media/ffmpeg"
	"reelcast/internal/media/ffprobe"
	"reelcast/internal/pipeline"
	"reelcast/internal/reel"
	"reelcast/internal/services"
	"reelcast/internal/testsupport"
)

type outputRunner struct{}

func (outputRunner) Run(_ context.Context, cmd ffmpeg.Command) error {
	return os.WriteFile(cmd.Args[len(cmd.Args)-1], []byte("rendered"), 0o644)
}

type fixedTranscriber struct{}

func (fixedTranscriber) Transcribe(context.Context, string) ([]reel.Segment, error) {
	return []reel.Segment{{Start: 0, End: 1.5, Text: "hello there"}}, nil
}

// useFakePipeline swaps the pipeline collaborators for in-process fakes.
func useFakePipeline(t *testing.T) {
	t.Helper()
	restoreProbe := encoding.SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video"}, {CodecType: "audio"}}}, nil
	})
	previous := buildEnvironment
	buildEnvironment = func(cfg *config.Config, opts pipeline.Options) (*pipeline.Environment, error) {
		opts.Runner = outputRunner{}
		opts.Transcriber = fixedTranscriber{}
		opts.SkipPreflight = true
		opts.Probe = func(context.Context, string, string) (ffprobe.Result, error) {
			return ffprobe.Result{
				Streams: []ffprobe.Stream{{CodecType: "audio"}},
				Format:  ffprobe.Format{Duration: "4.000000"},
			}, nil
		}
		return previous(cfg, opts)
	}
	t.Cleanup(func() {
		buildEnvironment = previous
		restoreProbe()
	})
}

func TestGenerateRejectsEmptyImageFolder(t *testing.T) {
	useFakePipeline(t)
	cfg := testsupport.NewConfig(t)
	path := writeTestConfig(t, cfg)
	base := testsupport.BaseDir(cfg)
	images := filepath.Join(base, "images")
	if err := os.MkdirAll(images, 0o755); err != nil {
		t.Fatal(err)
	}
	audio := filepath.Join(base, "narration.wav")
	testsupport.WriteFile(t, audio, 32)

	_, _, err := runCLI(t, "--config", path, "generate",
		"--images", images, "--audio", audio, "--output", filepath.Join(base, "out.mp4"))
	if err == nil {
		t.Fatal("expected generate to fail")
	}
	if err.Error() != "No valid images found in folder: "+images {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error kind, got %v", err)
	}

	out, _, err := runCLI(t, "--config", path, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "failed")
}

func TestGenerateWritesVideoAndSummary(t *testing.T) {
	useFakePipeline(t)
	cfg := testsupport.NewConfig(t)
	path := writeTestConfig(t, cfg)
	base := testsupport.BaseDir(cfg)
	images := filepath.Join(base, "images")
	testsupport.WriteImage(t, filepath.Join(images, "01.png"), 30, 50, color.RGBA{R: 200, A: 255})
	testsupport.WriteImage(t, filepath.Join(images, "02.jpg"), 50, 30, color.RGBA{B: 200, A: 255})
	audio := filepath.Join(base, "narration.mp3")
	testsupport.WriteFile(t, audio, 32)
	output := filepath.Join(base, "out", "reel.mp4")

	out, _, err := runCLI(t, "--config", path, "generate",
		"-i", images, "-a", audio, "-o", output, "--transitions", "crossfade,zoom_in", "--no-captions")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "Video created: "+output)
	requireContains(t, out, "Images:       2")
	requireContains(t, out, "Duration:     4.0s")
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	out, _, err = runCLI(t, "--config", path, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, output)
	requireContains(t, out, "succeeded")
}

func TestCaptionsCommandRendersNarration(t *testing.T) {
	useFakePipeline(t)
	cfg := testsupport.NewConfig(t)
	path := writeTestConfig(t, cfg)
	base := testsupport.BaseDir(cfg)
	audio := filepath.Join(base, "narration.wav")
	testsupport.WriteFile(t, audio, 32)
	output := filepath.Join(base, "captions.mp4")

	out, _, err := runCLI(t, "--config", path, "captions", "--audio", audio, "--output", output)
	if err != nil {
		t.Fatalf("captions: %v", err)
	}
	requireContains(t, out, "Video created: "+output)
	requireContains(t, out, "Words:        2")
}

func TestGenerateRequiresFlags(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := writeTestConfig(t, cfg)

	_, _, err := runCLI(t, "--config", path, "generate", "--images", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "output") {
		t.Fatalf("expected missing output flag error, got %v", err)
	}
}

func TestSplitTransitions(t *testing.T) {
	got := splitTransitions([]string{"crossfade, ", "zoom_in,slide_left"})
	want := []string{"crossfade", "", "zoom_in", "slide_left"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitTransitions = %v, want %v", got, want)
	}
	if splitTransitions(nil) != nil {
		t.Fatal("expected nil for no transitions")
	}
}
