// Package imaging discovers source images and normalizes them to the output
// frame.
//
// Normalization is cover-then-crop: every image is scaled so it fully covers
// the target box while keeping its aspect ratio, then centre-cropped to the
// exact frame size. Two Normalizer implementations exist, a host path built
// on golang.org/x/image/draw and a CUDA path that resizes inside ffmpeg; Select
// picks one per run from the probed hardware capabilities. BatchProcessor runs
// a normalizer over many images with a bounded worker pool while keeping the
// input order.
package imaging
