// Package main hosts the reelcast CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline runs
// (generate, captions), readiness reports (doctor), run history listings and
// configuration scaffolding. It centralizes configuration resolution, logger
// construction and progress rendering so subcommands stay declarative.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
