package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func argValue(args []string, flag string) string {
	idx := slices.Index(args, flag)
	if idx < 0 || idx+1 >= len(args) {
		return ""
	}
	return args[idx+1]
}

func TestTranscribeParsesWhisperXOutput(t *testing.T) {
	work := t.TempDir()
	svc := NewService(Config{Model: "small", Language: "en-US", WorkDir: work}, nil)

	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		if name != UVXCommand {
			t.Fatalf("unexpected command %q", name)
		}
		gotArgs = args
		outDir := argValue(args, "--output_dir")
		payload := `{"segments":[
			{"text":" Hello there. ","start":0.0,"end":1.2,"words":[{"word":"Hello","start":0.0,"end":0.5}]},
			{"text":"   ","start":1.2,"end":1.4},
			{"text":"backwards","start":3.0,"end":2.0},
			{"text":"General Kenobi.","start":1.5,"end":2.8}
		]}`
		return os.WriteFile(filepath.Join(outDir, "narration.json"), []byte(payload), 0o644)
	})

	segments, err := svc.Transcribe(context.Background(), "/audio/narration.mp3")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 valid segments, got %+v", segments)
	}
	if segments[0].Text != "Hello there." || segments[0].End != 1.2 {
		t.Fatalf("unexpected first segment %+v", segments[0])
	}
	if segments[1].Text != "General Kenobi." {
		t.Fatalf("unexpected second segment %+v", segments[1])
	}

	if gotArgs[slices.Index(gotArgs, "whisperx")+1] != "/audio/narration.mp3" {
		t.Fatalf("audio path not passed: %v", gotArgs)
	}
	if argValue(gotArgs, "--model") != "small" {
		t.Fatalf("model not passed: %v", gotArgs)
	}
	if argValue(gotArgs, "--language") != "en" {
		t.Fatalf("language not normalized: %v", gotArgs)
	}
	if argValue(gotArgs, "--device") != CPUDevice {
		t.Fatalf("expected cpu device: %v", gotArgs)
	}
	if !strings.HasPrefix(argValue(gotArgs, "--output_dir"), work) {
		t.Fatalf("output dir should live under work dir: %v", gotArgs)
	}
	entries, err := os.ReadDir(work)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected output dir cleanup, found %d entries", len(entries))
	}
}

func TestTranscribeReportsRunnerFailure(t *testing.T) {
	svc := NewService(Config{WorkDir: t.TempDir()}, nil)
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("uvx: exit status 1")
	})
	if _, err := svc.Transcribe(context.Background(), "/audio/a.wav"); err == nil || !strings.Contains(err.Error(), "whisperx") {
		t.Fatalf("expected whisperx error, got %v", err)
	}
}

func TestTranscribeMissingOutput(t *testing.T) {
	svc := NewService(Config{WorkDir: t.TempDir()}, nil)
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return nil })
	if _, err := svc.Transcribe(context.Background(), "/audio/a.wav"); err == nil {
		t.Fatal("expected error when WhisperX writes no JSON")
	}
}

func TestBuildArgsCUDAAndPyannote(t *testing.T) {
	svc := NewService(Config{CUDAEnabled: true, VADMethod: VADMethodPyannote, HFToken: "tok"}, nil)
	args := svc.buildArgs("/a.wav", "/out")
	if argValue(args, "--index-url") != CUDAIndexURL {
		t.Fatalf("expected CUDA index: %v", args)
	}
	if argValue(args, "--device") != CUDADevice {
		t.Fatalf("expected cuda device: %v", args)
	}
	if argValue(args, "--hf_token") != "tok" {
		t.Fatalf("expected hf token: %v", args)
	}
	if slices.Contains(args, "--language") {
		t.Fatalf("language should be omitted when unset: %v", args)
	}
	if argValue(args, "--model") != DefaultModel {
		t.Fatalf("expected default model: %v", args)
	}
}

func TestLanguageCode(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"auto":  "",
		"en":    "en",
		"en-US": "en",
		"eng":   "en",
		"deu":   "de",
		"pt-BR": "pt",
		"!!":    "",
	}
	for input, want := range cases {
		if got := LanguageCode(input); got != want {
			t.Errorf("LanguageCode(%q) = %q, want %q", input, got, want)
		}
	}
}
