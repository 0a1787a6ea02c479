package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// dialogueLine captures the ninth comma-separated field of an ASS Dialogue
// event, which holds the rendered text.
var dialogueLine = regexp.MustCompile(`Dialogue:[^,]*(?:,[^,]*){8},([^\n]*)`)

// overrideTag matches ASS inline override blocks such as {\an8} or {\i1}.
var overrideTag = regexp.MustCompile(`\{\\[^}]*\}`)

// Sample reads a text subtitle file and builds a dialogue sample suitable for
// language detection: formatting stripped, preferring the first maxLines lines
// longer than minLineLength (falling back to any non-blank lines).
func Sample(path string, maxLines, minLineLength int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read subtitle: %w", err)
	}
	content := strings.ToValidUTF8(strings.ReplaceAll(string(data), "\r\n", "\n"), "")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ass", ".ssa":
		content = DialogueText(content)
	default:
		if strings.Contains(content, "-->") {
			content = cueText(content)
		}
	}

	return SampleText(content, maxLines, minLineLength), nil
}

// SampleText selects detection-worthy lines from already-extracted dialogue.
func SampleText(content string, maxLines, minLineLength int) string {
	if maxLines <= 0 {
		maxLines = 20
	}
	all := strings.Split(content, "\n")
	lines := make([]string, 0, len(all))
	for _, line := range all {
		if len(line) > minLineLength {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		for _, line := range all {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// DialogueText extracts the spoken text from ASS/SSA subtitle content,
// dropping the header sections and inline override tags.
func DialogueText(content string) string {
	if idx := strings.Index(content, "[Events]"); idx >= 0 {
		content = content[idx+len("[Events]"):]
	}
	matches := dialogueLine.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return content
	}
	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		texts = append(texts, match[1])
	}
	joined := overrideTag.ReplaceAllString(strings.Join(texts, " "), "")
	// ASS uses \N for hard line breaks inside a single event.
	joined = strings.ReplaceAll(joined, `\N`, "\n")
	return joined
}

// cueText returns only the dialogue lines of SRT/VTT content, skipping cue
// indexes and timestamp lines.
func cueText(content string) string {
	blocks := splitBlocks(content)
	var lines []string
	for _, block := range blocks {
		lines = append(lines, blockTextLines(strings.Split(block, "\n"))...)
	}
	return strings.Join(lines, "\n")
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n\n")
}

func blockTextLines(lines []string) []string {
	start := 0
	if start < len(lines) && isNumeric(lines[start]) {
		start++
	}
	if start < len(lines) && strings.Contains(lines[start], "-->") {
		start++
	}
	if start >= len(lines) {
		return nil
	}
	text := make([]string, 0, len(lines)-start)
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			text = append(text, trimmed)
		}
	}
	return text
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
