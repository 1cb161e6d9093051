package entities

import "strings"

// CountBlocks считает строки, в которых есть хотя бы один непробельный символ.
func CountBlocks(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// SplitParagraphs делит текст на абзацы построчно, пустые строки сохраняются.
func SplitParagraphs(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
