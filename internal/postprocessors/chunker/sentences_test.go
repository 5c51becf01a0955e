package chunker

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two simple sentences",
			text: "The model scores well. It exceeds the baseline.",
			want: []string{"The model scores well.", "It exceeds the baseline."},
		},
		{
			name: "question and exclamation",
			text: "Does it pass? Yes it does! Good.",
			want: []string{"Does it pass?", "Yes it does!", "Good."},
		},
		{
			name: "no terminal punctuation",
			text: "a bare fragment without an ending",
			want: []string{"a bare fragment without an ending"},
		},
		{
			name: "punctuation before lowercase is not a boundary",
			text: "The score is 89.5 on the benchmark.",
			want: []string{"The score is 89.5 on the benchmark."},
		},
		{
			name: "punctuation at end of text",
			text: "Only one sentence here.",
			want: []string{"Only one sentence here."},
		},
		{
			name: "trailing fragment flushed",
			text: "First sentence. And then a trailing bit",
			want: []string{"First sentence.", "And then a trailing bit"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitNaive_PunctuationStaysLeft(t *testing.T) {
	fragments := splitNaive("One here. Two here.")
	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d: %v", len(fragments), fragments)
	}
	if fragments[0] != "One here." {
		t.Errorf("expected punctuation kept with left fragment, got %q", fragments[0])
	}
}

func TestSplitNaive_RequiresWhitespaceThenUppercase(t *testing.T) {
	// No whitespace after the period, so no boundary.
	fragments := splitNaive("v1.2.Release notes")
	if len(fragments) != 1 {
		t.Errorf("expected 1 fragment, got %d: %v", len(fragments), fragments)
	}
}

func TestIsCompleteSentence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"terminal period", "It works.", true},
		{"terminal question mark", "Does it work?", true},
		{"verb followed by determiner", "The card includes a safety section", true},
		{"verb followed by pronoun", "The report shows its methodology", true},
		{"verb followed by number word", "The suite covers three categories", true},
		{"verb without follower", "The value reported yesterday", false},
		{"no verb", "Benchmark results table", false},
		{"verb with trailing comma matches", "The model supports, a fallback", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCompleteSentence(tt.text); got != tt.want {
				t.Errorf("isCompleteSentence(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
