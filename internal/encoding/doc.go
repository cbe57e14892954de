// Package encoding renders an assembled timeline to an H.264/AAC MP4 file.
//
// SelectSettings chooses NVENC when the run's hardware context reports it
// and acceleration is enabled, and libx264 otherwise. Encoder.Render drives
// ffmpeg over the compose filter graph, writes into a hidden sibling of the
// destination and only moves the file into place after ffprobe confirms the
// expected streams, so a failed run never leaves a partial output behind.
package encoding
