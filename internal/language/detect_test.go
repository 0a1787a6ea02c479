package language

import "testing"

func TestDetectRecognizesCommonLanguages(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
	}{
		{
			"english",
			"I never thought we would make it this far, but here we are at last.",
			"en",
		},
		{
			"spanish",
			"Nunca pensé que llegaríamos tan lejos, pero aquí estamos por fin juntos.",
			"es",
		},
		{
			"german",
			"Ich hätte nie gedacht, dass wir es so weit schaffen würden, aber jetzt sind wir endlich hier.",
			"de",
		},
		{
			"russian",
			"Я никогда не думал, что мы зайдём так далеко, но вот мы наконец здесь.",
			"ru",
		},
		{
			"japanese",
			"ここまで来られるとは思わなかったが、ついにたどり着いた。",
			"ja",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			detection, ok := Detect(tc.text)
			if !ok {
				t.Fatal("expected a detection")
			}
			if detection.Code != tc.code {
				t.Fatalf("Detect(%q) = %q, want %q", tc.text, detection.Code, tc.code)
			}
		})
	}
}

func TestDetectRejectsShortSamples(t *testing.T) {
	for _, text := range []string{"", "   ", "Hi!", "OK\nOK"} {
		if _, ok := Detect(text); ok {
			t.Fatalf("expected no detection for %q", text)
		}
	}
}
