package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/regix1/subdetector/internal/logging"
)

// Engine shells out to tesseract for text recognition on subtitle frames.
type Engine struct {
	Binary    string
	Languages []string
	logger    *slog.Logger
}

// New returns an Engine for the given tesseract binary and language models.
func New(binary string, languages []string, logger *slog.Logger) *Engine {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "tesseract"
	}
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Engine{
		Binary:    binary,
		Languages: languages,
		logger:    logging.NewComponentLogger(logger, "ocr"),
	}
}

// Available reports whether the tesseract binary resolves.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.Binary)
	return err == nil
}

// Recognize runs tesseract over a single image and returns the raw text.
func (e *Engine) Recognize(ctx context.Context, imagePath string) (string, error) {
	if strings.TrimSpace(imagePath) == "" {
		return "", errors.New("ocr: empty image path")
	}
	cmd := exec.CommandContext(ctx, e.Binary, imagePath, "stdout", "-l", strings.Join(e.Languages, "+"))
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(output), nil
}

// RecognizeFrames OCRs up to limit frames and returns the combined non-blank
// text. Per-frame failures are logged and skipped; an error is returned only
// when no frame produced text.
func (e *Engine) RecognizeFrames(ctx context.Context, frames []string, limit int) (string, error) {
	if limit > 0 && len(frames) > limit {
		frames = frames[:limit]
	}
	var texts []string
	for _, frame := range frames {
		text, err := e.Recognize(ctx, frame)
		if err != nil {
			e.logger.Warn("frame recognition failed", logging.String("frame", frame), logging.Error(err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return "", errors.New("ocr: no text recognized in any frame")
	}
	return strings.Join(texts, "\n"), nil
}
