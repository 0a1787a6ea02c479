package detect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/regix1/subdetector/internal/config"
	"github.com/regix1/subdetector/internal/detectcache"
	"github.com/regix1/subdetector/internal/extraction"
	"github.com/regix1/subdetector/internal/ffprobe"
	"github.com/regix1/subdetector/internal/language"
	"github.com/regix1/subdetector/internal/logging"
	"github.com/regix1/subdetector/internal/ocr"
	"github.com/regix1/subdetector/internal/subtitles"
)

// AllTracks selects every subtitle stream in the input.
const AllTracks = -1

// Prober inspects media containers.
type Prober interface {
	Probeable(ctx context.Context, path string) bool
	InspectSubtitles(ctx context.Context, path string) (ffprobe.Result, error)
}

// TrackExtractor pulls subtitle tracks and frames out of inputs.
type TrackExtractor interface {
	ExtractTrack(ctx context.Context, mediaPath string, streamIndex int, codec string, destDir string) (string, error)
	DumpFrames(ctx context.Context, subtitlePath string, destDir string, maxFrames int) ([]string, error)
}

// Recognizer turns subtitle frames into text.
type Recognizer interface {
	Available() bool
	RecognizeFrames(ctx context.Context, frames []string, limit int) (string, error)
}

// ResultCache persists detection results between runs.
type ResultCache interface {
	Lookup(ctx context.Context, key string, dest any) (bool, error)
	Store(ctx context.Context, key string, value any) error
}

// Detector selects and runs the per-track detection strategy:
// metadata first, then text-content detection, then OCR.
type Detector struct {
	cfg        *config.Config
	logger     *slog.Logger
	prober     Prober
	extractor  TrackExtractor
	recognizer Recognizer
	cache      ResultCache
}

// New constructs a Detector wired to the real external tools.
func New(cfg *config.Config, logger *slog.Logger, cache *detectcache.Store) *Detector {
	var resultCache ResultCache
	if cache != nil {
		resultCache = cache
	}
	return NewWithDependencies(
		cfg,
		logger,
		probeAdapter{binary: cfg.Tools.FFprobe},
		extraction.New(cfg.Tools.FFmpeg),
		ocr.New(cfg.Tools.Tesseract, cfg.Detection.OCRLanguages, logger),
		resultCache,
	)
}

// NewWithDependencies constructs a Detector from explicit collaborators.
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, prober Prober, extractor TrackExtractor, recognizer Recognizer, cache ResultCache) *Detector {
	return &Detector{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "detector"),
		prober:     prober,
		extractor:  extractor,
		recognizer: recognizer,
		cache:      cache,
	}
}

// Detect identifies subtitle languages in path. Pass AllTracks or a specific
// container stream index. An empty Tracks slice means no subtitle tracks were
// found (or the selected index does not exist).
func (d *Detector) Detect(ctx context.Context, path string, track int) (Result, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return Result{}, fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(absolute); err != nil {
		return Result{}, fmt.Errorf("input file: %w", err)
	}

	var cacheKey string
	if d.cache != nil {
		cacheKey, err = detectcache.Key(absolute, track)
		if err != nil {
			d.logger.Warn("cache key unavailable", logging.Error(err))
		} else {
			var cached Result
			found, lookupErr := d.cache.Lookup(ctx, cacheKey, &cached)
			if lookupErr != nil {
				d.logger.Warn("cache lookup failed", logging.Error(lookupErr))
			} else if found {
				d.logger.Debug("cache hit", logging.String("source", absolute))
				cached.FromCache = true
				return cached, nil
			}
		}
	}

	result := Result{Source: absolute}
	if d.isContainer(ctx, absolute) {
		result.Container = true
		result.Tracks, err = d.detectContainer(ctx, absolute, track)
	} else {
		result.Tracks, err = d.detectStandalone(ctx, absolute)
	}
	if err != nil {
		return Result{}, err
	}

	if d.cache != nil && cacheKey != "" && len(result.Tracks) > 0 {
		if storeErr := d.cache.Store(ctx, cacheKey, result); storeErr != nil {
			d.logger.Warn("cache store failed", logging.Error(storeErr))
		}
	}
	return result, nil
}

// isContainer distinguishes media containers from standalone subtitle files.
// ffprobe accepts some bare subtitle files, so a known subtitle extension
// wins over a successful probe.
func (d *Detector) isContainer(ctx context.Context, path string) bool {
	if subtitles.HasSubtitleExtension(path) {
		return false
	}
	return d.prober.Probeable(ctx, path)
}

func (d *Detector) detectContainer(ctx context.Context, path string, track int) ([]Track, error) {
	probed, err := d.prober.InspectSubtitles(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe subtitles: %w", err)
	}

	streams := probed.SubtitleStreams()
	if track != AllTracks {
		var selected []ffprobe.Stream
		for _, stream := range streams {
			if stream.Index == track {
				selected = append(selected, stream)
			}
		}
		streams = selected
	}
	if len(streams) == 0 {
		return nil, nil
	}

	var workspace *extraction.Workspace
	defer func() {
		workspace.Cleanup()
	}()

	tracks := make([]Track, 0, len(streams))
	for _, stream := range streams {
		entry := Track{
			Index:  stream.Index,
			Codec:  stream.CodecName,
			Forced: stream.Disposition.Forced != 0,
		}

		if tagged := language.ExtractFromTags(stream.Tags); tagged != "" && tagged != "und" {
			entry.Method = MethodMetadata
			if mapped := language.ToISO2(tagged); mapped != "" {
				entry.Language = mapped
			} else {
				entry.Language = tagged
			}
			tracks = append(tracks, entry)
			continue
		}

		if workspace == nil {
			workspace, err = extraction.NewWorkspace()
			if err != nil {
				return nil, fmt.Errorf("scratch workspace: %w", err)
			}
		}

		switch subtitles.CodecKind(stream.CodecName) {
		case subtitles.KindText:
			entry.Method = MethodText
			d.detectTextTrack(ctx, path, stream, workspace, &entry)
		case subtitles.KindImage:
			entry.Method = MethodOCR
			d.detectImageTrack(ctx, path, stream, workspace, &entry)
		default:
			entry.Method = MethodUnknownFormat
			d.logger.Debug("unclassifiable subtitle codec",
				logging.Int("stream", stream.Index),
				logging.String("codec", stream.CodecName))
		}
		tracks = append(tracks, entry)
	}
	return tracks, nil
}

func (d *Detector) detectTextTrack(ctx context.Context, mediaPath string, stream ffprobe.Stream, workspace *extraction.Workspace, entry *Track) {
	extracted, err := d.extractor.ExtractTrack(ctx, mediaPath, stream.Index, stream.CodecName, workspace.Root())
	if err != nil {
		d.logger.Warn("track extraction failed",
			logging.Int("stream", stream.Index),
			logging.Error(err))
		return
	}
	d.applyTextDetection(extracted, entry)
}

func (d *Detector) detectImageTrack(ctx context.Context, mediaPath string, stream ffprobe.Stream, workspace *extraction.Workspace, entry *Track) {
	if !d.recognizer.Available() {
		d.logger.Warn("ocr engine unavailable, skipping image track",
			logging.Int("stream", stream.Index),
			logging.String("codec", stream.CodecName))
		return
	}

	extracted, err := d.extractor.ExtractTrack(ctx, mediaPath, stream.Index, stream.CodecName, workspace.Root())
	if err != nil {
		d.logger.Warn("track extraction failed",
			logging.Int("stream", stream.Index),
			logging.Error(err))
		return
	}

	framesDir, err := workspace.Subdir(fmt.Sprintf("frames_%d", stream.Index))
	if err != nil {
		d.logger.Warn("frames directory failed", logging.Error(err))
		return
	}
	d.applyOCRDetection(ctx, extracted, framesDir, entry)
}

func (d *Detector) detectStandalone(ctx context.Context, path string) ([]Track, error) {
	entry := Track{
		Index: 0,
		Codec: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}

	switch subtitles.SniffFileKind(path) {
	case subtitles.KindText:
		entry.Method = MethodText
		d.applyTextDetection(path, &entry)
	default:
		entry.Method = MethodOCR
		if !d.recognizer.Available() {
			d.logger.Warn("ocr engine unavailable, skipping image subtitle file",
				logging.String("source", path))
			break
		}
		workspace, err := extraction.NewWorkspace()
		if err != nil {
			return nil, fmt.Errorf("scratch workspace: %w", err)
		}
		defer workspace.Cleanup()
		framesDir, err := workspace.Subdir("frames")
		if err != nil {
			return nil, err
		}
		d.applyOCRDetection(ctx, path, framesDir, &entry)
	}
	return []Track{entry}, nil
}

func (d *Detector) applyTextDetection(subtitlePath string, entry *Track) {
	sample, err := subtitles.Sample(subtitlePath, d.cfg.Detection.SampleLines, d.cfg.Detection.MinLineLength)
	if err != nil {
		d.logger.Warn("subtitle sampling failed", logging.Error(err))
		return
	}
	detection, ok := language.Detect(sample)
	if !ok {
		d.logger.Debug("text detection inconclusive", logging.String("source", subtitlePath))
		return
	}
	entry.Language = detection.Code
	entry.Confidence = detection.Confidence
}

func (d *Detector) applyOCRDetection(ctx context.Context, subtitlePath, framesDir string, entry *Track) {
	frames, err := d.extractor.DumpFrames(ctx, subtitlePath, framesDir, d.cfg.Detection.OCRMaxFrames)
	if err != nil {
		d.logger.Warn("frame dump failed", logging.Error(err))
		return
	}
	if len(frames) == 0 {
		d.logger.Debug("no frames rendered", logging.String("source", subtitlePath))
		return
	}

	text, err := d.recognizer.RecognizeFrames(ctx, frames, d.cfg.Detection.OCRFrameLimit)
	if err != nil {
		d.logger.Warn("ocr failed", logging.Error(err))
		return
	}
	detection, ok := language.Detect(text)
	if !ok {
		d.logger.Debug("ocr detection inconclusive", logging.String("source", subtitlePath))
		return
	}
	entry.Language = detection.Code
	entry.Confidence = detection.Confidence
}

type probeAdapter struct {
	binary string
}

func (p probeAdapter) Probeable(ctx context.Context, path string) bool {
	return ffprobe.Probeable(ctx, p.binary, path)
}

func (p probeAdapter) InspectSubtitles(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.InspectSubtitles(ctx, p.binary, path)
}

// ErrNoTracks indicates the input carried no subtitle tracks.
var ErrNoTracks = errors.New("no subtitle tracks found")
