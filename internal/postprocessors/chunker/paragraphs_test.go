package chunker

import (
	"reflect"
	"testing"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple blank line split",
			text: "first paragraph\n\nsecond paragraph",
			want: []string{"first paragraph", "second paragraph"},
		},
		{
			name: "windows line endings",
			text: "first\r\n\r\nsecond",
			want: []string{"first", "second"},
		},
		{
			name: "blank line with spaces and tabs",
			text: "first\n \t \nsecond",
			want: []string{"first", "second"},
		},
		{
			name: "multiple blank lines collapse",
			text: "first\n\n\n\n\nsecond",
			want: []string{"first", "second"},
		},
		{
			name: "single newline is not a boundary",
			text: "line one\nline two",
			want: []string{"line one\nline two"},
		},
		{
			name: "leading and trailing whitespace trimmed",
			text: "  first  \n\n  second  ",
			want: []string{"first", "second"},
		},
		{
			name: "empty units discarded",
			text: "\n\nfirst\n\n\n\n",
			want: []string{"first"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: "   \n\n   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitParagraphs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitParagraphs_PreservesOrder(t *testing.T) {
	text := "alpha\n\nbeta\n\ngamma\n\ndelta"
	got := SplitParagraphs(text)

	want := []string{"alpha", "beta", "gamma", "delta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected order preserved, got %v", got)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one two three", 3},
		{"  spaced   out  ", 2},
		{"line\nbreaks\tcount", 3},
	}

	for _, tt := range tests {
		if got := countWords(tt.text); got != tt.want {
			t.Errorf("countWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
