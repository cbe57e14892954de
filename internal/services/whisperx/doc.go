// Package whisperx transcribes narration with WhisperX launched through uvx.
//
// Transcribe runs WhisperX on the audio file, reads the JSON document it
// writes and returns the segments in the shared reel.Segment form. Model,
// device and VAD method come from Config. Tests replace the command runner
// instead of launching uvx.
package whisperx
