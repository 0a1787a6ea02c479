package subtitles

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind classifies how a subtitle track stores its content.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

var textCodecs = map[string]struct{}{
	"subrip":   {},
	"srt":      {},
	"ass":      {},
	"ssa":      {},
	"webvtt":   {},
	"mov_text": {},
	"text":     {},
}

var imageCodecs = map[string]struct{}{
	"hdmv_pgs_subtitle": {},
	"dvd_subtitle":      {},
	"dvb_subtitle":      {},
	"xsub":              {},
}

// extractExtensions maps ffprobe codec names to the container-less file
// extension ffmpeg should write during stream copy.
var extractExtensions = map[string]string{
	"ass":               "ass",
	"ssa":               "ass",
	"subrip":            "srt",
	"srt":               "srt",
	"webvtt":            "vtt",
	"hdmv_pgs_subtitle": "sup",
	"dvd_subtitle":      "sub",
}

var subtitleExtensions = map[string]struct{}{
	".srt": {},
	".ass": {},
	".ssa": {},
	".sub": {},
	".sup": {},
	".idx": {},
	".pgs": {},
	".vtt": {},
}

// CodecKind classifies an ffprobe subtitle codec name.
func CodecKind(codec string) Kind {
	normalized := strings.ToLower(strings.TrimSpace(codec))
	if _, ok := textCodecs[normalized]; ok {
		return KindText
	}
	if _, ok := imageCodecs[normalized]; ok {
		return KindImage
	}
	return KindUnknown
}

// ExtractExtension returns the file extension (without dot) used when
// extracting a track with the given codec. Defaults to "sub".
func ExtractExtension(codec string) string {
	if ext, ok := extractExtensions[strings.ToLower(strings.TrimSpace(codec))]; ok {
		return ext
	}
	return "sub"
}

// HasSubtitleExtension reports whether the path carries a known standalone
// subtitle file extension.
func HasSubtitleExtension(path string) bool {
	_, ok := subtitleExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// readableTextRun matches a run of letters long enough to indicate the file
// holds readable dialogue rather than binary subtitle data.
var readableTextRun = regexp.MustCompile(`[a-zA-Z]{5,}`)

// SniffFileKind determines whether a standalone subtitle file is text or
// image based. Extension decides where unambiguous; .sub/.idx and unknown
// extensions are content-sniffed. Defaults to image when undecidable.
func SniffFileKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt", ".vtt", ".ass", ".ssa":
		return KindText
	case ".sup", ".pgs":
		return KindImage
	}
	if sniffReadableText(path) {
		return KindText
	}
	return KindImage
}

func sniffReadableText(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	head := make([]byte, 1000)
	n, err := file.Read(head)
	if n == 0 && err != nil {
		return false
	}
	return readableTextRun.Match(head[:n])
}
