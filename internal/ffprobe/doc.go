// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no subdetector-specific dependencies and could be
// extracted as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties including tags and disposition
//   - Format: container-level metadata (duration, size, format name)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - InspectSubtitles: same, restricted to subtitle streams
//   - Probeable: reports whether ffprobe accepts a file at all
package ffprobe
