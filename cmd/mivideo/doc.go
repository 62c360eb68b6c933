// Package main hosts the caption loader CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into media
// platform calls: loading chunked caption documents, browsing the course
// media gallery, inspecting caption assets, and configuration scaffolding.
// It centralizes configuration resolution, backend selection, and structured
// logging setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
