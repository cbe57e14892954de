// Package captions turns transcript segments into word-level caption rasters.
//
// SplitSegment estimates per-word timing by dividing a segment evenly among
// its words. Builder renders each word twice through a Style: a highlighted
// variant shown while the word is spoken and a settled variant that lingers
// briefly afterwards, clamped so it never overlaps the next word. HighlightStyle
// is the default Style; it draws text with golang.org/x/image fonts. WriteSRT
// emits the segment cues as a sidecar subtitle file.
package captions
