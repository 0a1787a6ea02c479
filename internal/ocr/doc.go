// Package ocr wraps the tesseract CLI for recognizing text in rendered
// subtitle frames. Recognition quality is whatever tesseract delivers; the
// caller feeds the combined output to the language detector rather than
// treating it as faithful dialogue.
package ocr
