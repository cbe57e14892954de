package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"reelcast/internal/media/ffmpeg"
	"reelcast/internal/reel"
)

// CUDANormalizer resizes with ffmpeg's scale_cuda filter and crops on the
// host. The decoded frame travels back as a PNG on ffmpeg's stdout.
type CUDANormalizer struct {
	Runner ffmpeg.Runner
}

// Name identifies the implementation in logs.
func (CUDANormalizer) Name() string { return "cuda" }

// Normalize scales the asset on the GPU and centre-crops the result.
func (n CUDANormalizer) Normalize(ctx context.Context, asset reel.ImageAsset, width, height int, duration time.Duration) (reel.NormalizedClip, error) {
	if asset.Width <= 0 || asset.Height <= 0 {
		w, h, err := decodeSize(asset.Path)
		if err != nil {
			return reel.NormalizedClip{}, err
		}
		asset.Width, asset.Height = w, h
	}
	w, h := CoverSize(asset.Width, asset.Height, width, height)

	var out bytes.Buffer
	err := n.Runner.Run(ctx, ffmpeg.Command{Args: cudaScaleArgs(asset.Path, w, h), Stdout: &out})
	if err != nil {
		return reel.NormalizedClip{}, fmt.Errorf("scale_cuda %s: %w", asset.Path, err)
	}
	resized, err := png.Decode(&out)
	if err != nil {
		return reel.NormalizedClip{}, fmt.Errorf("decode scaled frame %s: %w", asset.Path, err)
	}
	if b := resized.Bounds(); b.Dx() < width || b.Dy() < height {
		return reel.NormalizedClip{}, fmt.Errorf("scaled frame %s is %dx%d, want at least %dx%d", asset.Path, b.Dx(), b.Dy(), width, height)
	}
	return newClip(asset, toRGBA(resized, width, height), width, height, duration), nil
}

func cudaScaleArgs(path string, w, h int) []string {
	return []string{
		"-init_hw_device", "cuda=cu",
		"-filter_hw_device", "cu",
		"-i", path,
		"-vf", fmt.Sprintf("format=yuv444p,hwupload,scale_cuda=w=%d:h=%d:interp_algo=lanczos,hwdownload,format=yuv444p,format=rgba", w, h),
		"-frames:v", "1",
		"-f", "image2pipe",
		"-c:v", "png",
		"-",
	}
}

func toRGBA(img image.Image, width, height int) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds() == image.Rect(0, 0, width, height) {
		return rgba
	}
	return CenterCrop(img, width, height)
}
