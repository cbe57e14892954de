// Package compose assembles normalized clips, caption rasters and narration
// into a reel.Timeline and renders that timeline as an ffmpeg filter graph.
//
// Layers are stacked bottom to top: the background colour, the image track
// (clips concatenated, each entering with its transition), caption rasters in
// chronological word order and finally the audio. Assemble reconciles the
// image track against the narration so both end together, cuts caption
// windows at that boundary and writes every raster the encoder needs into the
// run work directory.
package compose
