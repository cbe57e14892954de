// Package pipeline is the top-level entry point that turns a folder of
// images plus narration into a captioned vertical video.
//
// NewEnvironment snapshots the configuration and builds the collaborators a
// run needs (logger, ffmpeg runner, ffprobe, transcriber, history store).
// Nothing happens at import time. Generator.Generate then runs the stages in
// order:
//
//	validate -> normalize -> audio -> captions -> compose -> encode
//
// Runs sharing a work directory are serialized with a file lock. Each run
// works inside its own directory under the work directory, which is removed
// on every exit path, and holds a hwaccel.Context that is released the same
// way. Generate never returns a raw error: the outcome is a Result whose Err
// is always part of the services.ErrVideoGeneration family.
package pipeline
