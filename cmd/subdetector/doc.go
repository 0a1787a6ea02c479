// Command subdetector identifies the natural language of subtitle tracks in
// media containers and standalone subtitle files. It delegates demuxing and
// frame rendering to ffprobe/ffmpeg and OCR to tesseract, and reports one
// result line per track with the detection method used.
package main
