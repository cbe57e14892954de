// Package audiosync reconciles the image track and narration durations.
package audiosync

import "time"

// Plan describes how both tracks are cut to a common length. Only the tail
// of a track is ever removed; nothing is stretched or padded.
type Plan struct {
	Duration   time.Duration
	TrimAudio  bool
	TrimImages bool
}

// Reconcile returns a plan whose duration is min(video, audio).
func Reconcile(video, audio time.Duration) Plan {
	switch {
	case audio > video:
		return Plan{Duration: video, TrimAudio: true}
	case video > audio:
		return Plan{Duration: audio, TrimImages: true}
	default:
		return Plan{Duration: video}
	}
}

// Dropped reports how much of each track the plan removes.
func (p Plan) Dropped(video, audio time.Duration) (droppedVideo, droppedAudio time.Duration) {
	return video - p.Duration, audio - p.Duration
}
