// Package detect orchestrates subtitle language detection.
//
// For each subtitle track it picks the cheapest strategy that can answer:
// container metadata tags first, statistical text detection on extracted
// dialogue second, OCR over rendered frames as the fallback for image-based
// tracks. Standalone subtitle files follow the same text/OCR split after
// format sniffing. Results are cached per source file identity.
package detect
