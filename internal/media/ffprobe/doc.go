// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The generator uses it twice per run: once to measure the narration track
// before the timeline is reconciled, and once to verify the encoded file
// carries the expected streams and duration before it is moved into place.
package ffprobe
