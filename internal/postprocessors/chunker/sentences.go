package chunker

import (
	"strings"
	"unicode"
)

// The completeness vocabulary is a heuristic dispatch table, not a grammar.
// A buffered fragment "reads like a finished clause" when a recognised verb
// is immediately followed by a recognised determiner, pronoun or number word.
// The lists are fixed and swappable without changing the two-pass contract.
var completenessVerbs = wordSet(
	"is", "are", "was", "were", "be", "been",
	"has", "have", "had",
	"does", "do", "did",
	"can", "could", "will", "would", "shall", "should", "may", "might", "must",
	"includes", "include", "included",
	"provides", "provide", "provided",
	"supports", "support", "supported",
	"achieves", "achieve", "achieved",
	"reports", "report", "reported",
	"scores", "score", "scored",
	"shows", "show", "showed", "shown",
	"contains", "contain", "contained",
	"requires", "require", "required",
	"uses", "use", "used",
	"measures", "measure", "measured",
	"exceeds", "exceed", "exceeded",
	"covers", "cover", "covered",
)

var completenessFollowers = wordSet(
	"a", "an", "the",
	"this", "that", "these", "those",
	"it", "its", "their", "our", "all", "any", "each", "every", "some", "no",
	"zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// SplitSentences divides a block of text into sentence units.
//
// Two passes: a naive split at terminal punctuation followed by whitespace
// and an uppercase letter, then a merge pass that accumulates fragments
// until a completeness predicate holds. This is a heuristic, not a
// grammatical parser; known abbreviation edge cases ("Dr. Smith") are
// accepted as approximate.
func SplitSentences(text string) []string {
	fragments := splitNaive(text)

	sentences := make([]string, 0, len(fragments))
	buffer := ""
	for _, fragment := range fragments {
		if buffer == "" {
			buffer = fragment
		} else {
			buffer += " " + fragment
		}
		if isCompleteSentence(buffer) {
			sentences = append(sentences, strings.TrimSpace(buffer))
			buffer = ""
		}
	}

	// Any unflushed buffer is emitted regardless of completeness.
	if trimmed := strings.TrimSpace(buffer); trimmed != "" {
		sentences = append(sentences, trimmed)
	}

	return sentences
}

// splitNaive splits at a terminal punctuation mark immediately followed by
// whitespace and then an uppercase letter. The punctuation stays with the
// left fragment; the whitespace is consumed by neither side.
func splitNaive(text string) []string {
	runes := []rune(text)
	var fragments []string

	start := 0
	i := 0
	for i < len(runes) {
		if !isTerminalPunct(runes[i]) {
			i++
			continue
		}

		// Look ahead: whitespace then an uppercase letter.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || !unicode.IsUpper(runes[j]) {
			i++
			continue
		}

		if frag := strings.TrimSpace(string(runes[start : i+1])); frag != "" {
			fragments = append(fragments, frag)
		}
		start = j
		i = j
	}

	if frag := strings.TrimSpace(string(runes[start:])); frag != "" {
		fragments = append(fragments, frag)
	}

	return fragments
}

func isTerminalPunct(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isCompleteSentence reports whether the buffered text satisfies the
// completeness predicate: it ends in terminal punctuation, or contains a
// recognised verb immediately followed by a recognised follower word.
func isCompleteSentence(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	last := rune(trimmed[len(trimmed)-1])
	if isTerminalPunct(last) {
		return true
	}

	words := strings.Fields(strings.ToLower(trimmed))
	for i := 0; i+1 < len(words); i++ {
		word := strings.Trim(words[i], ",;:()\"'")
		next := strings.Trim(words[i+1], ",;:()\"'")
		if _, ok := completenessVerbs[word]; !ok {
			continue
		}
		if _, ok := completenessFollowers[next]; ok {
			return true
		}
	}

	return false
}
