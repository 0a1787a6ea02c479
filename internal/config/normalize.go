package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	c.normalizeDetection()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.Tesseract = strings.TrimSpace(c.Tools.Tesseract)
	if c.Tools.Tesseract == "" {
		c.Tools.Tesseract = defaultTesseractBinary
	}
}

func (c *Config) normalizeDetection() {
	if c.Detection.SampleLines <= 0 {
		c.Detection.SampleLines = defaultSampleLines
	}
	if c.Detection.MinLineLength <= 0 {
		c.Detection.MinLineLength = defaultMinLineLength
	}
	if c.Detection.OCRMaxFrames <= 0 {
		c.Detection.OCRMaxFrames = defaultOCRMaxFrames
	}
	if c.Detection.OCRFrameLimit <= 0 {
		c.Detection.OCRFrameLimit = defaultOCRFrameLimit
	}
	languages := make([]string, 0, len(c.Detection.OCRLanguages))
	for _, lang := range c.Detection.OCRLanguages {
		trimmed := strings.ToLower(strings.TrimSpace(lang))
		if trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	c.Detection.OCRLanguages = languages
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	expanded, err := expandPath(c.Cache.Path)
	if err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	c.Cache.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
