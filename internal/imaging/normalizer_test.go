package imaging

import (
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"reelcast/internal/hwaccel"
	"reelcast/internal/media/ffmpeg"
	"reelcast/internal/reel"
)

func TestHostNormalizerProducesExactFrame(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "wide.png", 64, 36)
	asset := reel.ImageAsset{Index: 2, Path: path, Width: 64, Height: 36}

	clip, err := HostNormalizer{}.Normalize(context.Background(), asset, 18, 32, 5*time.Second)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if clip.Frame.Bounds() != image.Rect(0, 0, 18, 32) {
		t.Fatalf("unexpected frame bounds %v", clip.Frame.Bounds())
	}
	if clip.Width != 18 || clip.Height != 32 || clip.Duration != 5*time.Second {
		t.Fatalf("unexpected clip metadata %+v", clip)
	}
	if clip.Index != 2 || clip.Asset.Path != path {
		t.Fatalf("clip lost its asset: %+v", clip)
	}
}

func TestHostNormalizerIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "exact.png", 18, 32)
	clip, err := HostNormalizer{}.Normalize(context.Background(), reel.ImageAsset{Path: path}, 18, 32, time.Second)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	again := HostNormalizer{}.fit(clip.Frame, 18, 32)
	if again.Bounds() != clip.Frame.Bounds() {
		t.Fatalf("second pass changed bounds %v", again.Bounds())
	}
	for i := range again.Pix {
		diff := int(again.Pix[i]) - int(clip.Frame.Pix[i])
		if diff < -1 || diff > 1 {
			t.Fatalf("normalizing an already normalized frame changed byte %d: %d -> %d", i, clip.Frame.Pix[i], again.Pix[i])
		}
	}
}

func TestHostNormalizerReportsPath(t *testing.T) {
	_, err := HostNormalizer{}.Normalize(context.Background(), reel.ImageAsset{Path: "/nonexistent/x.png"}, 10, 10, time.Second)
	if err == nil || !strings.Contains(err.Error(), "/nonexistent/x.png") {
		t.Fatalf("expected error naming the path, got %v", err)
	}
}

type pngRunner struct {
	width, height int
	args          []string
}

func (r *pngRunner) Run(_ context.Context, cmd ffmpeg.Command) error {
	r.args = cmd.Args
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	return png.Encode(cmd.Stdout, img)
}

func TestCUDANormalizerCropsScaledFrame(t *testing.T) {
	runner := &pngRunner{width: 36, height: 32}
	asset := reel.ImageAsset{Path: "/in/a.jpg", Width: 72, Height: 64}
	clip, err := CUDANormalizer{Runner: runner}.Normalize(context.Background(), asset, 18, 32, time.Second)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if clip.Frame.Bounds() != image.Rect(0, 0, 18, 32) {
		t.Fatalf("unexpected bounds %v", clip.Frame.Bounds())
	}
	joined := strings.Join(runner.args, " ")
	if !strings.Contains(joined, "scale_cuda=w=36:h=32") {
		t.Fatalf("expected cover size in filter, got %q", joined)
	}
}

func TestCUDANormalizerRejectsShortFrame(t *testing.T) {
	runner := &pngRunner{width: 10, height: 10}
	asset := reel.ImageAsset{Path: "/in/a.jpg", Width: 72, Height: 64}
	if _, err := (CUDANormalizer{Runner: runner}).Normalize(context.Background(), asset, 18, 32, time.Second); err == nil {
		t.Fatal("expected error for undersized GPU output")
	}
}

func TestSelect(t *testing.T) {
	runner := &pngRunner{}
	if got := Select(hwaccel.Capabilities{CUDAResize: true}, runner).Name(); got != "cuda" {
		t.Fatalf("expected cuda normalizer, got %s", got)
	}
	if got := Select(hwaccel.Capabilities{NVENC: true}, runner).Name(); got != "host" {
		t.Fatalf("expected host normalizer, got %s", got)
	}
	if got := Select(hwaccel.Capabilities{CUDAResize: true}, nil).Name(); got != "host" {
		t.Fatalf("expected host normalizer without runner, got %s", got)
	}
}
