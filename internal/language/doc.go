// Package language provides unified language code normalization, display
// names, and statistical text language detection.
//
// All language-related conversions (ISO 639-1, ISO 639-2, display names,
// stream tag extraction) are consolidated here so the detector, cache, and
// CLI agree on code spelling. Detect wraps whatlanggo for content-based
// classification of subtitle text and OCR output.
package language
