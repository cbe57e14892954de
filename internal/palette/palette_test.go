package palette

import (
	"image/color"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{in: "white", want: color.RGBA{255, 255, 255, 255}},
		{in: " Black ", want: color.RGBA{0, 0, 0, 255}},
		{in: "#ff8000", want: color.RGBA{255, 128, 0, 255}},
		{in: "#f80", want: color.RGBA{255, 136, 0, 255}},
		{in: "#00000080", want: color.RGBA{0, 0, 0, 128}},
		{in: "", err: true},
		{in: "notacolour", err: true},
		{in: "#12345", err: true},
		{in: "#zzzzzz", err: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("Parse(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{R: 0x10, G: 0xab, B: 0xff, A: 0xff}); got != "0x10ABFF" {
		t.Fatalf("Hex = %q", got)
	}
}
