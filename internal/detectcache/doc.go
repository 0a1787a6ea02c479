// Package detectcache persists detection results per source file so repeated
// invocations skip ffmpeg extraction and OCR. Entries are keyed by absolute
// path, size, and mtime; touching or replacing the file invalidates its
// entries naturally.
package detectcache
