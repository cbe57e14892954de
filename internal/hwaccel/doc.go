// Package hwaccel detects GPU resize and encode support and scopes the
// resources tied to it for the duration of one generation run.
//
// Acquire probes ffmpeg once with tiny lavfi test encodes. Callers read the
// resulting Capabilities to choose between the CUDA and host normalizers and
// between NVENC and libx264, and must call Release on every exit path.
package hwaccel
