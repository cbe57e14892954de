package imaging

import (
	"image"
	"image/draw"
)

// CoverSize returns the size an srcW×srcH image is resized to so that it
// covers a targetW×targetH box with its aspect ratio preserved. The fitted
// side equals the target and the other side is truncated toward zero, then
// clamped so it never falls short of the target.
func CoverSize(srcW, srcH, targetW, targetH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || targetW <= 0 || targetH <= 0 {
		return targetW, targetH
	}
	aspect := float64(srcW) / float64(srcH)
	targetAspect := float64(targetW) / float64(targetH)

	var w, h int
	if aspect > targetAspect {
		h = targetH
		w = int(float64(targetH) * aspect)
	} else {
		w = targetW
		h = int(float64(targetW) / aspect)
	}
	if w < targetW {
		w = targetW
	}
	if h < targetH {
		h = targetH
	}
	return w, h
}

// CropRect returns the targetW×targetH rectangle centred in bounds.
func CropRect(bounds image.Rectangle, targetW, targetH int) image.Rectangle {
	x0 := bounds.Min.X + (bounds.Dx()-targetW)/2
	y0 := bounds.Min.Y + (bounds.Dy()-targetH)/2
	return image.Rect(x0, y0, x0+targetW, y0+targetH)
}

// CenterCrop copies the centred targetW×targetH region of src into a new
// RGBA frame whose bounds start at the origin.
func CenterCrop(src image.Image, targetW, targetH int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	rect := CropRect(src.Bounds(), targetW, targetH)
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst
}
