// Package config loads, normalizes, and validates reelcast configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_TOKEN and REELCAST_FFMPEG. The Config type centralizes every knob a
// generation run needs: frame geometry, timing, encoding, caption styling and
// the WhisperX transcription boundary.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
