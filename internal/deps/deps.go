// Package deps reports the availability of the external binaries
// subdetector delegates to (ffprobe, ffmpeg, tesseract).
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/regix1/subdetector/internal/config"
)

// Requirement defines an external dependency subdetector relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the requirement set for the configured tool binaries.
func Default(cfg *config.Config) []Requirement {
	tools := config.Default().Tools
	if cfg != nil {
		tools = cfg.Tools
	}
	return []Requirement{
		{
			Name:        "ffprobe",
			Command:     tools.FFprobe,
			Description: "Container and stream metadata inspection",
		},
		{
			Name:        "ffmpeg",
			Command:     tools.FFmpeg,
			Description: "Subtitle track extraction and frame dumps",
		},
		{
			Name:        "tesseract",
			Command:     tools.Tesseract,
			Description: "OCR for image-based subtitle tracks",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional dependencies.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
