package imaging

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"

	"reelcast/internal/reel"
)

// Normalizer resizes and crops one image to the output frame.
type Normalizer interface {
	Name() string
	Normalize(ctx context.Context, asset reel.ImageAsset, width, height int, duration time.Duration) (reel.NormalizedClip, error)
}

// HostNormalizer decodes and resizes on the CPU.
type HostNormalizer struct {
	// Scaler defaults to Catmull-Rom.
	Scaler xdraw.Scaler
}

// Name identifies the implementation in logs.
func (HostNormalizer) Name() string { return "host" }

// Normalize decodes the asset, scales it to cover the frame and centre-crops it.
func (n HostNormalizer) Normalize(ctx context.Context, asset reel.ImageAsset, width, height int, duration time.Duration) (reel.NormalizedClip, error) {
	if err := ctx.Err(); err != nil {
		return reel.NormalizedClip{}, err
	}
	src, err := decodeFile(asset.Path)
	if err != nil {
		return reel.NormalizedClip{}, err
	}
	frame := n.fit(src, width, height)
	return newClip(asset, frame, width, height, duration), nil
}

func (n HostNormalizer) fit(src image.Image, width, height int) *image.RGBA {
	scaler := n.Scaler
	if scaler == nil {
		scaler = xdraw.CatmullRom
	}
	b := src.Bounds()
	w, h := CoverSize(b.Dx(), b.Dy(), width, height)
	resized := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler.Scale(resized, resized.Bounds(), src, b, xdraw.Src, nil)
	if w == width && h == height {
		return resized
	}
	return CenterCrop(resized, width, height)
}

func newClip(asset reel.ImageAsset, frame *image.RGBA, width, height int, duration time.Duration) reel.NormalizedClip {
	return reel.NormalizedClip{
		Index:    asset.Index,
		Asset:    asset,
		Frame:    frame,
		Width:    width,
		Height:   height,
		Duration: duration,
	}
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
