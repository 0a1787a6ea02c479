package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/regix1/subdetector/internal/subtitles"
)

// Extractor shells out to ffmpeg for subtitle track extraction and frame dumps.
type Extractor struct {
	Binary string
}

// New returns an Extractor using the provided ffmpeg binary.
func New(binary string) *Extractor {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Extractor{Binary: binary}
}

// ExtractTrack stream-copies the subtitle track at streamIndex out of the
// container into destDir, naming the file by codec-appropriate extension.
func (e *Extractor) ExtractTrack(ctx context.Context, mediaPath string, streamIndex int, codec string, destDir string) (string, error) {
	if strings.TrimSpace(mediaPath) == "" {
		return "", errors.New("extract track: empty media path")
	}
	ext := subtitles.ExtractExtension(codec)
	outputPath := filepath.Join(destDir, fmt.Sprintf("track_%d.%s", streamIndex, ext))

	cmd := exec.CommandContext(ctx, e.Binary,
		"-y", "-v", "error",
		"-i", mediaPath,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-c", "copy",
		outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg extract stream %d: %w: %s", streamIndex, err, strings.TrimSpace(string(output)))
	}
	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("ffmpeg extract stream %d: no output produced", streamIndex)
	}
	return outputPath, nil
}

// DumpFrames renders up to maxFrames image subtitle frames to PNG files in
// destDir and returns their paths in frame order.
func (e *Extractor) DumpFrames(ctx context.Context, subtitlePath string, destDir string, maxFrames int) ([]string, error) {
	if maxFrames <= 0 {
		maxFrames = 10
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames directory: %w", err)
	}
	pattern := filepath.Join(destDir, "frame_%04d.png")

	cmd := exec.CommandContext(ctx, e.Binary,
		"-y", "-v", "error",
		"-i", subtitlePath,
		"-vf", "select='eq(pict_type,I)'",
		"-vsync", "0",
		"-frames:v", fmt.Sprint(maxFrames),
		pattern,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg dump frames: %w: %s", err, strings.TrimSpace(string(output)))
	}

	frames, err := filepath.Glob(filepath.Join(destDir, "frame_*.png"))
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	sort.Strings(frames)
	return frames, nil
}
