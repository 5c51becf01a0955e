package chunker

import (
	"regexp"
	"strings"
)

// paragraphBoundary matches runs of whitespace containing at least one
// blank line. Handles both \n\n and \r\n\r\n separators.
var paragraphBoundary = regexp.MustCompile(`\r?\n[ \t]*\r?\n\s*`)

// SplitParagraphs divides raw text into paragraph units on blank-line
// boundaries. Each unit is trimmed; empty units are discarded. Order is
// preserved and no paragraph is re-split here.
func SplitParagraphs(text string) []string {
	parts := paragraphBoundary.Split(text, -1)

	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		paragraphs = append(paragraphs, part)
	}

	return paragraphs
}

// countWords returns the whitespace-delimited word count.
func countWords(text string) int {
	return len(strings.Fields(text))
}
