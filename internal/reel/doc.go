// Package reel holds the data model shared by every stage of a generation
// run: discovered image assets, normalized clips, transcript segments and
// their word timings, caption clip pairs, the assembled timeline and the
// immutable render configuration.
//
// The types here carry no behaviour beyond validation and buffer release so
// that stages can hand ownership to each other without import cycles.
package reel
