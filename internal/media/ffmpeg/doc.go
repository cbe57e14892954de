// Package ffmpeg runs the ffmpeg binary on behalf of the imaging, hardware
// probe and encoding stages.
//
// A Runner executes one invocation, keeps a bounded tail of stderr for
// diagnostics and, when asked, parses the machine-readable -progress stream
// into Progress callbacks. Tests substitute the Runner interface rather than
// spawning processes.
package ffmpeg
