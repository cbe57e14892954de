// Package services defines shared utilities consumed by the pipeline stages
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - The video generation error family: kind markers (validation, image,
//     audio, caption, transition, encoding) that all satisfy
//     errors.Is(err, ErrVideoGeneration), plus the Wrap helper that attaches
//     stage/operation context and a user-facing message.
//
// Use these helpers when wiring new stage logic so error classification and
// observability stay uniform across the pipeline.
package services
