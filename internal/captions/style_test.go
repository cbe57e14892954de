package captions

import (
	"image"
	"image/color"
	"testing"
)

func newTestStyle(t *testing.T) *HighlightStyle {
	t.Helper()
	face, err := LoadFace("", 32)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	t.Cleanup(func() { _ = face.Close() })
	return DefaultHighlightStyle(face)
}

func TestVariantsShareSize(t *testing.T) {
	style := newTestStyle(t)
	highlighted, err := style.Highlighted("word")
	if err != nil {
		t.Fatalf("Highlighted: %v", err)
	}
	settled, err := style.Settled("word")
	if err != nil {
		t.Fatalf("Settled: %v", err)
	}
	if highlighted.Bounds() != settled.Bounds() {
		t.Fatalf("variant sizes differ: %v vs %v", highlighted.Bounds(), settled.Bounds())
	}
	if highlighted.Bounds().Dx() <= 2*(style.Padding+style.StrokeWidth) {
		t.Fatalf("canvas too narrow for text: %v", highlighted.Bounds())
	}
}

func TestHighlightedFillsBackground(t *testing.T) {
	style := newTestStyle(t)
	img, err := style.Highlighted("hi")
	if err != nil {
		t.Fatalf("Highlighted: %v", err)
	}
	got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if got != style.HighlightBG {
		t.Fatalf("corner pixel = %v, want highlight background %v", got, style.HighlightBG)
	}
}

func TestSettledHasTransparentBackgroundAndInk(t *testing.T) {
	style := newTestStyle(t)
	img, err := style.Settled("hi")
	if err != nil {
		t.Fatalf("Settled: %v", err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("expected transparent corner, alpha=%d", a)
	}
	rgba := img.(*image.RGBA)
	opaque := 0
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] == 0xff {
			opaque++
		}
	}
	if opaque == 0 {
		t.Fatal("expected some drawn pixels")
	}
}

func TestUppercaseWidensCanvas(t *testing.T) {
	style := newTestStyle(t)
	lower, err := style.Settled("quiet")
	if err != nil {
		t.Fatalf("Settled: %v", err)
	}
	style.Uppercase = true
	upper, err := style.Settled("quiet")
	if err != nil {
		t.Fatalf("Settled: %v", err)
	}
	if upper.Bounds().Dx() <= lower.Bounds().Dx() {
		t.Fatalf("uppercase canvas %v should be wider than %v", upper.Bounds(), lower.Bounds())
	}
}

func TestStyleWithoutFace(t *testing.T) {
	style := &HighlightStyle{}
	if _, err := style.Highlighted("x"); err == nil {
		t.Fatal("expected error without font face")
	}
}

func TestLoadFaceMissingFile(t *testing.T) {
	if _, err := LoadFace("/nonexistent/font.ttf", 12); err == nil {
		t.Fatal("expected error for missing font")
	}
}
