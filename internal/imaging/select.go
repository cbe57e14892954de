package imaging

import (
	"reelcast/internal/hwaccel"
	"reelcast/internal/media/ffmpeg"
)

// Select returns the CUDA normalizer when scale_cuda passed its preflight and
// the host normalizer otherwise.
func Select(caps hwaccel.Capabilities, runner ffmpeg.Runner) Normalizer {
	if caps.CUDAResize && runner != nil {
		return CUDANormalizer{Runner: runner}
	}
	return HostNormalizer{}
}
