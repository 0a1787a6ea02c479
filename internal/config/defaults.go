package config

const (
	defaultFFprobeBinary   = "ffprobe"
	defaultFFmpegBinary    = "ffmpeg"
	defaultTesseractBinary = "tesseract"
	defaultSampleLines     = 20
	defaultMinLineLength   = 20
	defaultOCRMaxFrames    = 10
	defaultOCRFrameLimit   = 5
	defaultCachePath       = "~/.cache/subdetector/results.db"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFprobe:   defaultFFprobeBinary,
			FFmpeg:    defaultFFmpegBinary,
			Tesseract: defaultTesseractBinary,
		},
		Detection: Detection{
			SampleLines:   defaultSampleLines,
			MinLineLength: defaultMinLineLength,
			OCRMaxFrames:  defaultOCRMaxFrames,
			OCRFrameLimit: defaultOCRFrameLimit,
			OCRLanguages:  []string{"eng"},
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
