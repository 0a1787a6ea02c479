package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/regix1/subdetector/internal/config"
	"github.com/regix1/subdetector/internal/ffprobe"
)

type stubProber struct {
	probeable bool
	result    ffprobe.Result
	err       error
}

func (s stubProber) Probeable(context.Context, string) bool { return s.probeable }

func (s stubProber) InspectSubtitles(context.Context, string) (ffprobe.Result, error) {
	return s.result, s.err
}

type stubExtractor struct {
	trackContent map[int]string // stream index -> subtitle file content
	frames       []string
	extractErr   error
}

func (s stubExtractor) ExtractTrack(_ context.Context, _ string, streamIndex int, codec, destDir string) (string, error) {
	if s.extractErr != nil {
		return "", s.extractErr
	}
	content, ok := s.trackContent[streamIndex]
	if !ok {
		return "", fmt.Errorf("no stub content for stream %d", streamIndex)
	}
	path := filepath.Join(destDir, fmt.Sprintf("track_%d.srt", streamIndex))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s stubExtractor) DumpFrames(_ context.Context, _ string, _ string, _ int) ([]string, error) {
	return s.frames, nil
}

type stubRecognizer struct {
	available bool
	text      string
	err       error
}

func (s stubRecognizer) Available() bool { return s.available }

func (s stubRecognizer) RecognizeFrames(context.Context, []string, int) (string, error) {
	return s.text, s.err
}

type memoryCache struct {
	entries map[string][]byte
	stored  int
}

func (m *memoryCache) Lookup(_ context.Context, key string, dest any) (bool, error) {
	payload, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (m *memoryCache) Store(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = payload
	m.stored++
	return nil
}

const englishSRT = `1
00:00:01,000 --> 00:00:04,000
I never thought we would make it this far together.

2
00:00:05,000 --> 00:00:09,000
But here we are at last, after everything that happened.
`

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func subtitleStream(index int, codec string, tags map[string]string) ffprobe.Stream {
	return ffprobe.Stream{Index: index, CodecName: codec, CodecType: "subtitle", Tags: tags}
}

func TestDetectPrefersMetadataOverContent(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(2, "subrip", map[string]string{"language": "eng"}),
		}},
	}
	detector := NewWithDependencies(testConfig(), nil, prober, stubExtractor{}, stubRecognizer{}, nil)

	result, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if !result.Container {
		t.Fatal("expected container result")
	}
	if len(result.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(result.Tracks))
	}
	track := result.Tracks[0]
	if track.Method != MethodMetadata {
		t.Fatalf("expected metadata method, got %s", track.Method)
	}
	if track.Language != "en" {
		t.Fatalf("expected normalized language en, got %q", track.Language)
	}
}

func TestDetectFallsBackToTextDetection(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(3, "subrip", nil),
		}},
	}
	extractor := stubExtractor{trackContent: map[int]string{3: englishSRT}}
	detector := NewWithDependencies(testConfig(), nil, prober, extractor, stubRecognizer{}, nil)

	result, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	track := result.Tracks[0]
	if track.Method != MethodText {
		t.Fatalf("expected text-detection method, got %s", track.Method)
	}
	if track.Language != "en" {
		t.Fatalf("expected en, got %q", track.Language)
	}
}

func TestDetectTreatsUndTagAsMissing(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(1, "subrip", map[string]string{"language": "und"}),
		}},
	}
	extractor := stubExtractor{trackContent: map[int]string{1: englishSRT}}
	detector := NewWithDependencies(testConfig(), nil, prober, extractor, stubRecognizer{}, nil)

	result, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if result.Tracks[0].Method != MethodText {
		t.Fatalf("expected fallback to text detection, got %s", result.Tracks[0].Method)
	}
}

func TestDetectImageTrackUsesOCR(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(4, "hdmv_pgs_subtitle", nil),
		}},
	}
	extractor := stubExtractor{
		trackContent: map[int]string{4: "binary pgs payload"},
		frames:       []string{"frame_0001.png"},
	}
	recognizer := stubRecognizer{
		available: true,
		text:      "Nunca pensé que llegaríamos tan lejos, pero aquí estamos por fin.",
	}
	detector := NewWithDependencies(testConfig(), nil, prober, extractor, recognizer, nil)

	result, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	track := result.Tracks[0]
	if track.Method != MethodOCR {
		t.Fatalf("expected ocr-detection method, got %s", track.Method)
	}
	if track.Language != "es" {
		t.Fatalf("expected es, got %q", track.Language)
	}
}

func TestDetectImageTrackWithoutOCRRemainsUnknown(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(4, "dvd_subtitle", nil),
		}},
	}
	detector := NewWithDependencies(testConfig(), nil, prober, stubExtractor{}, stubRecognizer{available: false}, nil)

	result, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	track := result.Tracks[0]
	if track.Method != MethodOCR {
		t.Fatalf("expected ocr-detection method, got %s", track.Method)
	}
	if track.Language != "" {
		t.Fatalf("expected unknown language, got %q", track.Language)
	}
	if track.LanguageLabel() != "Unknown" {
		t.Fatalf("expected Unknown label, got %q", track.LanguageLabel())
	}
}

func TestDetectUnknownCodecTagged(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(5, "eia_608", nil),
		}},
	}
	detector := NewWithDependencies(testConfig(), nil, prober, stubExtractor{}, stubRecognizer{}, nil)

	result, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if result.Tracks[0].Method != MethodUnknownFormat {
		t.Fatalf("expected unknown-format, got %s", result.Tracks[0].Method)
	}
}

func TestDetectTrackFilter(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(2, "subrip", map[string]string{"language": "eng"}),
			subtitleStream(3, "subrip", map[string]string{"language": "fra"}),
		}},
	}
	detector := NewWithDependencies(testConfig(), nil, prober, stubExtractor{}, stubRecognizer{}, nil)

	result, err := detector.Detect(context.Background(), input, 3)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(result.Tracks) != 1 || result.Tracks[0].Index != 3 {
		t.Fatalf("unexpected filtered tracks: %+v", result.Tracks)
	}

	result, err = detector.Detect(context.Background(), input, 9)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(result.Tracks) != 0 {
		t.Fatalf("expected no tracks for missing index, got %+v", result.Tracks)
	}
}

func TestDetectStandaloneTextFile(t *testing.T) {
	input := writeInput(t, "movie.srt", englishSRT)
	// ffprobe would accept bare SRT, the subtitle extension must win.
	prober := stubProber{probeable: true}
	detector := NewWithDependencies(testConfig(), nil, prober, stubExtractor{}, stubRecognizer{}, nil)

	result, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if result.Container {
		t.Fatal("expected standalone result")
	}
	track := result.Tracks[0]
	if track.Codec != "srt" {
		t.Fatalf("expected srt format, got %q", track.Codec)
	}
	if track.Method != MethodText || track.Language != "en" {
		t.Fatalf("unexpected track: %+v", track)
	}
	if !strings.HasPrefix(track.Line(false), "Subtitle file (srt): en") {
		t.Fatalf("unexpected line: %q", track.Line(false))
	}
}

func TestDetectMissingInput(t *testing.T) {
	detector := NewWithDependencies(testConfig(), nil, stubProber{}, stubExtractor{}, stubRecognizer{}, nil)
	if _, err := detector.Detect(context.Background(), "/no/such/file.mkv", AllTracks); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestDetectUsesCache(t *testing.T) {
	input := writeInput(t, "movie.mkv", "fake container")
	prober := stubProber{
		probeable: true,
		result: ffprobe.Result{Streams: []ffprobe.Stream{
			subtitleStream(2, "subrip", map[string]string{"language": "eng"}),
		}},
	}
	cache := &memoryCache{}
	detector := NewWithDependencies(testConfig(), nil, prober, stubExtractor{}, stubRecognizer{}, cache)

	first, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if first.FromCache {
		t.Fatal("first run must not come from cache")
	}
	if cache.stored != 1 {
		t.Fatalf("expected one cache store, got %d", cache.stored)
	}

	second, err := detector.Detect(context.Background(), input, AllTracks)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if !second.FromCache {
		t.Fatal("expected second run to come from cache")
	}
	if len(second.Tracks) != 1 || second.Tracks[0].Language != "en" {
		t.Fatalf("unexpected cached tracks: %+v", second.Tracks)
	}
}

func TestTrackLineFormats(t *testing.T) {
	track := Track{Index: 2, Codec: "subrip", Language: "en", Method: MethodMetadata}
	if got := track.Line(true); got != "Stream #2 (subrip): en [metadata]" {
		t.Fatalf("unexpected container line: %q", got)
	}
	unknown := Track{Index: 0, Codec: "sup", Method: MethodOCR}
	if got := unknown.Line(false); got != "Subtitle file (sup): Unknown [ocr-detection]" {
		t.Fatalf("unexpected standalone line: %q", got)
	}
}
