package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detection is the outcome of statistical text language detection.
type Detection struct {
	Code       string // ISO 639-1 where known, otherwise ISO 639-3
	Confidence float64
	Reliable   bool
}

// whatlanggo reports macrolanguage-level ISO 639-3 codes for a few languages;
// map those onto the 639-1 codes the rest of the tool speaks.
var iso3Aliases = map[string]string{
	"cmn": "zh",
	"arb": "ar",
	"nob": "no",
	"nno": "no",
	"pes": "fa",
	"zsm": "ms",
	"ydd": "yi",
}

// minDetectRunes guards against classifying snippets too short to carry
// a language signal (OCR noise, lone interjections).
const minDetectRunes = 12

// Detect runs statistical language detection over text. The boolean result
// is false when the sample is too short or classification fails outright.
func Detect(text string) (Detection, bool) {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minDetectRunes {
		return Detection{}, false
	}

	info := whatlanggo.Detect(trimmed)
	iso3 := whatlanggo.LangToString(info.Lang)
	if iso3 == "" {
		return Detection{}, false
	}

	code := iso3Aliases[iso3]
	if code == "" {
		code = ToISO2(iso3)
	}
	if code == "" {
		code = iso3
	}

	return Detection{
		Code:       code,
		Confidence: info.Confidence,
		Reliable:   info.IsReliable(),
	}, true
}
