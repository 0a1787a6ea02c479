package language

import (
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		{"es", "es"},
		// 3-letter codes convert
		{"eng", "en"},
		{"spa", "es"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"deu", "de"},
		{"ger", "de"},
		{"jpn", "ja"},
		{"zho", "zh"},
		{"chi", "zh"},
		{"dut", "nl"},
		{"cze", "cs"},
		{"rum", "ro"},
		// Word forms
		{"english", "en"},
		{"French", "fr"},
		{"GERMAN", "de"},
		// Unknown 2-letter passes through
		{"xy", "xy"},
		// Unknown 3-letter returns empty
		{"xyz", ""},
		// Empty
		{"", ""},
		{" ", ""},
	}
	for _, tc := range tests {
		if got := ToISO2(tc.input); got != tc.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"fr", "fra"},
		{"fre", "fra"},
		{"german", "deu"},
		{"qqq", "qqq"},
		{"", "und"},
		{"xy", "und"},
	}
	for _, tc := range tests {
		if got := ToISO3(tc.input); got != tc.expected {
			t.Errorf("ToISO3(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"zh", "Chinese"},
		{"", "Unknown"},
		{"  ", "Unknown"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.input); got != tc.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
	// Codes outside the built-in table resolve through CLDR data.
	if got := DisplayName("is"); got != "Icelandic" {
		t.Errorf("DisplayName(\"is\") = %q, want Icelandic", got)
	}
}

func TestExtractFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"lowercase key", map[string]string{"language": "eng"}, "eng"},
		{"uppercase key", map[string]string{"LANGUAGE": "FRA"}, "fra"},
		{"ietf key", map[string]string{"language_ietf": "en-US"}, "en-us"},
		{"nul bytes stripped", map[string]string{"language": "eng\x00"}, "eng"},
		{"whitespace only", map[string]string{"language": "   "}, ""},
		{"no language keys", map[string]string{"title": "English"}, ""},
		{"nil tags", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractFromTags(tc.tags); got != tc.expected {
				t.Fatalf("ExtractFromTags(%v) = %q, want %q", tc.tags, got, tc.expected)
			}
		})
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"ENG", "en", " fra ", "", "de"})
	want := []string{"en", "fr", "de"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeList length: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
