// Package preflight provides readiness checks for the tools and filesystem
// paths a generation run depends on.
//
// These checks run in two contexts:
//   - The pipeline calls RunAll before a run starts. If any check fails the
//     run is rejected with a validation error before any image is decoded.
//   - The CLI "reelcast doctor" command shows every check, plus the probed
//     hardware capabilities, as a table.
//
// Checks are gated by config: the font check only runs when captions are on.
package preflight
