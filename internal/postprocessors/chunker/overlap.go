package chunker

import (
	"strings"
	"unicode/utf8"
)

// BuildOverlap selects trailing sentence material from a just-closed chunk
// to seed the next chunk, staying within a character budget.
//
// Whole sentences are accumulated from the end backward while they fit;
// the first sentence that would exceed the budget contributes only its
// trailing characters up to the remaining allowance, and the walk stops.
// A zero budget produces no overlap.
func BuildOverlap(text string, budget int) string {
	if budget <= 0 {
		return ""
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	var parts []string
	used := 0

	for i := len(sentences) - 1; i >= 0; i-- {
		sentence := sentences[i]

		cost := len(sentence)
		if len(parts) > 0 {
			cost++ // joining space
		}

		if used+cost <= budget {
			parts = append([]string{sentence}, parts...)
			used += cost
			continue
		}

		// Partial-sentence tail within the remaining allowance.
		remaining := budget - used
		if len(parts) > 0 {
			remaining--
		}
		if remaining > 0 {
			start := len(sentence) - remaining
			// Advance to a rune boundary so a multi-byte character is
			// never split; shrinking the tail keeps it within budget.
			for start < len(sentence) && !utf8.RuneStart(sentence[start]) {
				start++
			}
			if tail := sentence[start:]; tail != "" {
				parts = append([]string{tail}, parts...)
			}
		}
		break
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}
