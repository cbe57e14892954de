package encoding

import (
	"context"
	"fmt"
	"os"

	"reelcast/internal/logging"
	"reelcast/internal/services"
)

// validateOutput confirms the rendered file exists, is non-empty and carries
// a video stream, plus an audio stream when one was mapped. It returns the
// file size.
func (e *Encoder) validateOutput(ctx context.Context, path string, wantAudio bool) (int64, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(e.Logger, "encoder"))
	info, err := os.Stat(path)
	if err != nil {
		logger.Error("encoding validation failed", logging.String("reason", "stat failure"), logging.Error(err))
		return 0, services.Wrap(services.ErrEncoding, stageEncode, "validate output", "Failed to stat encoded file", err)
	}
	if info.IsDir() {
		logger.Error("encoding validation failed", logging.String("reason", "path is directory"), logging.String("encoded_path", path))
		return 0, services.Wrap(services.ErrEncoding, stageEncode, "validate output", "Encoded artifact points to a directory", nil)
	}
	if info.Size() == 0 {
		logger.Error("encoding validation failed", logging.String("reason", "empty file"))
		return 0, services.Wrap(services.ErrEncoding, stageEncode, "validate output", fmt.Sprintf("Encoded file %q is empty", path), nil)
	}

	binary := e.FFprobeBinary
	if binary == "" {
		binary = "ffprobe"
	}
	probe, err := encodeProbe(ctx, binary, path)
	if err != nil {
		logger.Error("encoding validation failed", logging.String("reason", "ffprobe"), logging.Error(err))
		return 0, services.Wrap(services.ErrEncoding, stageEncode, "ffprobe validation", "Failed to inspect encoded file with ffprobe", err)
	}
	if probe.VideoStreamCount() == 0 {
		logger.Error("encoding validation failed", logging.String("reason", "no video stream"))
		return 0, services.Wrap(services.ErrEncoding, stageEncode, "validate video stream", "Encoded file does not contain a video stream", nil)
	}
	if wantAudio && probe.AudioStreamCount() == 0 {
		logger.Error("encoding validation failed", logging.String("reason", "no audio stream"))
		return 0, services.Wrap(services.ErrEncoding, stageEncode, "validate audio stream", "Encoded file does not contain an audio stream", nil)
	}
	return info.Size(), nil
}
