package subtitles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCodecKind(t *testing.T) {
	tests := []struct {
		codec string
		kind  Kind
	}{
		{"subrip", KindText},
		{"SRT", KindText},
		{"ass", KindText},
		{"webvtt", KindText},
		{"mov_text", KindText},
		{"hdmv_pgs_subtitle", KindImage},
		{"dvd_subtitle", KindImage},
		{"dvb_subtitle", KindImage},
		{"eia_608", KindUnknown},
		{"", KindUnknown},
	}
	for _, tc := range tests {
		if got := CodecKind(tc.codec); got != tc.kind {
			t.Errorf("CodecKind(%q) = %v, want %v", tc.codec, got, tc.kind)
		}
	}
}

func TestExtractExtension(t *testing.T) {
	tests := []struct {
		codec string
		ext   string
	}{
		{"ass", "ass"},
		{"subrip", "srt"},
		{"hdmv_pgs_subtitle", "sup"},
		{"dvd_subtitle", "sub"},
		{"something_else", "sub"},
	}
	for _, tc := range tests {
		if got := ExtractExtension(tc.codec); got != tc.ext {
			t.Errorf("ExtractExtension(%q) = %q, want %q", tc.codec, got, tc.ext)
		}
	}
}

func TestHasSubtitleExtension(t *testing.T) {
	if !HasSubtitleExtension("movie.en.SRT") {
		t.Fatal("expected .srt to be a subtitle extension")
	}
	if HasSubtitleExtension("movie.mkv") {
		t.Fatal("expected .mkv not to be a subtitle extension")
	}
}

func TestSniffFileKindByExtension(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"a.srt", KindText},
		{"a.vtt", KindText},
		{"a.ass", KindText},
		{"a.SSA", KindText},
		{"a.sup", KindImage},
		{"a.pgs", KindImage},
	}
	for _, tc := range tests {
		if got := SniffFileKind(tc.name); got != tc.kind {
			t.Errorf("SniffFileKind(%q) = %v, want %v", tc.name, got, tc.kind)
		}
	}
}

func TestSniffFileKindContentSniffsAmbiguousExtensions(t *testing.T) {
	dir := t.TempDir()

	textSub := filepath.Join(dir, "dialogue.sub")
	if err := os.WriteFile(textSub, []byte("{10}{40}Something worth reading aloud\n"), 0o644); err != nil {
		t.Fatalf("write text sub: %v", err)
	}
	if got := SniffFileKind(textSub); got != KindText {
		t.Fatalf("expected readable .sub to sniff as text, got %v", got)
	}

	binarySub := filepath.Join(dir, "frames.sub")
	if err := os.WriteFile(binarySub, []byte{0x00, 0x01, 0x02, 0x50, 0x47, 0x00}, 0o644); err != nil {
		t.Fatalf("write binary sub: %v", err)
	}
	if got := SniffFileKind(binarySub); got != KindImage {
		t.Fatalf("expected binary .sub to sniff as image, got %v", got)
	}

	if got := SniffFileKind(filepath.Join(dir, "missing.sub")); got != KindImage {
		t.Fatalf("expected missing file to default to image, got %v", got)
	}
}
