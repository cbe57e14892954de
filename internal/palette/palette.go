// Package palette resolves colour names used in configuration files.
package palette

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Parse resolves an SVG colour name ("white", "gold") or a hex triplet
// ("#ffcc00", "#fc0", optionally with alpha as "#ffcc0080").
func Parse(value string) (color.RGBA, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return color.RGBA{}, fmt.Errorf("empty colour")
	}
	if named, ok := colornames.Map[trimmed]; ok {
		return named, nil
	}
	if !strings.HasPrefix(trimmed, "#") {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", value)
	}
	digits := trimmed[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 && len(digits) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", value)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", value, err)
	}
	c := color.RGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}

// MustParse is Parse for compile-time constants.
func MustParse(value string) color.RGBA {
	c, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats a colour the way ffmpeg's color source expects it.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("0x%02X%02X%02X", c.R, c.G, c.B)
}
