// Package transition defines the fixed set of entry transitions applied to
// image clips.
//
// A Transition is a tagged value: Evaluate computes the visual transform at a
// point in the clip as a pure function, and Filter renders the same curve as
// an ffmpeg filter chain for the compositor.
package transition
