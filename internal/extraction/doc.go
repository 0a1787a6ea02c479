// Package extraction shells out to ffmpeg to pull subtitle tracks out of
// media containers and to render image subtitle frames to PNG for OCR.
// It also owns the per-run scratch workspace those artifacts land in.
package extraction
