package detect

import "fmt"

// Method identifies the strategy that produced a language result.
type Method string

const (
	MethodMetadata      Method = "metadata"
	MethodText          Method = "text-detection"
	MethodOCR           Method = "ocr-detection"
	MethodUnknownFormat Method = "unknown-format"
)

// Track is the detection outcome for one subtitle stream.
type Track struct {
	Index      int     `json:"stream_index"`
	Codec      string  `json:"format"`
	Language   string  `json:"language,omitempty"`
	Method     Method  `json:"method"`
	Forced     bool    `json:"forced,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Result is the ordered set of track outcomes for one input file.
type Result struct {
	Source    string  `json:"source"`
	Container bool    `json:"container"`
	Tracks    []Track `json:"tracks"`
	FromCache bool    `json:"from_cache,omitempty"`
}

// LanguageLabel returns the language code or "Unknown" when detection was
// inconclusive.
func (t Track) LanguageLabel() string {
	if t.Language == "" {
		return "Unknown"
	}
	return t.Language
}

// Line renders the human-readable result line for a track.
func (t Track) Line(container bool) string {
	if container {
		return fmt.Sprintf("Stream #%d (%s): %s [%s]", t.Index, t.Codec, t.LanguageLabel(), t.Method)
	}
	return fmt.Sprintf("Subtitle file (%s): %s [%s]", t.Codec, t.LanguageLabel(), t.Method)
}
