package reel

import (
	"image"
	"testing"
	"time"
)

func TestSegmentValidate(t *testing.T) {
	cases := []struct {
		name    string
		segment Segment
		wantErr bool
	}{
		{name: "ok", segment: Segment{Start: 0, End: 2, Text: "hello world"}},
		{name: "negative start", segment: Segment{Start: -1, End: 2, Text: "x"}, wantErr: true},
		{name: "end before start", segment: Segment{Start: 3, End: 2, Text: "x"}, wantErr: true},
		{name: "zero length", segment: Segment{Start: 2, End: 2, Text: "x"}, wantErr: true},
		{name: "blank text", segment: Segment{Start: 0, End: 1, Text: "   "}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.segment.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestReleaseClipsDropsFrames(t *testing.T) {
	clips := []NormalizedClip{
		{Frame: image.NewRGBA(image.Rect(0, 0, 2, 2)), Duration: time.Second},
		{Frame: image.NewRGBA(image.Rect(0, 0, 2, 2)), Duration: 2 * time.Second, Path: "/tmp/b.png"},
	}
	if TrackDuration(clips) != 3*time.Second {
		t.Fatalf("unexpected track duration %v", TrackDuration(clips))
	}
	ReleaseClips(clips)
	for i := range clips {
		if clips[i].HasFrame() {
			t.Fatalf("clip %d still holds a frame", i)
		}
	}
	if clips[1].Path != "/tmp/b.png" {
		t.Fatal("release must keep the spilled path")
	}
}

func TestAnchorPositionCentresRaster(t *testing.T) {
	x, y := Anchor{X: 0.5, Y: 0.5}.Position(1080, 1920, 200, 100)
	if x != 440 || y != 910 {
		t.Fatalf("unexpected position (%d,%d)", x, y)
	}
}

func TestCaptionClipVisible(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if !(CaptionClip{Image: img, Start: 1, End: 2}).Visible() {
		t.Fatal("expected visible clip")
	}
	if (CaptionClip{Image: img, Start: 2, End: 2}).Visible() {
		t.Fatal("empty window must not be visible")
	}
	if (CaptionClip{Start: 0, End: 1}).Visible() {
		t.Fatal("clip without raster must not be visible")
	}
}
