package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	normaliser := New()
	mimeTypes := normaliser.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/markdown")
	assert.Contains(t, mimeTypes, "text/x-markdown")
	assert.Len(t, mimeTypes, 2)
}

func TestPriority(t *testing.T) {
	normaliser := New()
	assert.Equal(t, 50, normaliser.Priority())
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	raw := &domain.RawDocument{
		SourceID: "atlas-7b-card",
		URI:      "/path/to/model_card.md",
		MIMEType: "text/markdown",
		Content:  []byte("# Atlas 7B\n\nA general purpose model."),
	}

	result, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, raw.SourceID, doc.SourceID)
	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "Atlas 7B", doc.Title) // Title from first H1
	assert.NotNil(t, doc.Metadata)
	assert.Equal(t, "text/markdown", doc.Metadata["mime_type"])
	assert.Equal(t, "markdown", doc.Metadata["format"])
}

func TestNormalise_NilDocument(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	result, err := normaliser.Normalise(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_Sections(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	content := `# Atlas 7B

A general purpose model.

## Evaluation Results

MMLU score: 89.5 on the 5-shot benchmark.

## Safety

Toxicity rate measured at 0.03.`

	raw := &domain.RawDocument{
		SourceID: "atlas-7b-card",
		URI:      "/cards/atlas.md",
		MIMEType: "text/markdown",
		Content:  []byte(content),
	}

	result, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	require.Len(t, result.Sections, 3)

	assert.Equal(t, "Atlas 7B", result.Sections[0].Title)
	assert.Equal(t, 1, result.Sections[0].Level)
	assert.Equal(t, "Evaluation Results", result.Sections[1].Title)
	assert.Equal(t, 2, result.Sections[1].Level)
	assert.Equal(t, "Safety", result.Sections[2].Title)

	// Offsets index into the normalised content.
	text := result.Document.Content
	for _, sec := range result.Sections {
		require.LessOrEqual(t, sec.End, len(text))
		require.Less(t, sec.Start, sec.End)
		assert.True(t, strings.HasPrefix(text[sec.Start:sec.End], sec.Title))
	}

	evalSection := text[result.Sections[1].Start:result.Sections[1].End]
	assert.Contains(t, evalSection, "MMLU score: 89.5")
	assert.NotContains(t, evalSection, "Toxicity")
}

func TestNormalise_TitleFallbackToFilename(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	raw := &domain.RawDocument{
		SourceID: "notes",
		URI:      "/docs/eval_report-v2.md",
		MIMEType: "text/markdown",
		Content:  []byte("No headings here."),
	}

	result, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "eval report v2", result.Document.Title)
	assert.Empty(t, result.Sections)
}

func TestSplitBlocks_IgnoresHeadingsInFences(t *testing.T) {
	raw := "# Real heading\n\nbody\n\n```\n# not a heading\n```\n\nmore body"

	blocks := splitBlocks(raw)

	var titles []string
	for _, b := range blocks {
		if b.title != "" {
			titles = append(titles, b.title)
		}
	}
	assert.Equal(t, []string{"Real heading"}, titles)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bold and italic markers",
			input:    "The **MMLU** score is __89.5__",
			expected: "The MMLU score is 89.5",
		},
		{
			name:     "inline code keeps text",
			input:    "Reported as `ToxicityRate` in the card",
			expected: "Reported as ToxicityRate in the card",
		},
		{
			name:     "links keep text",
			input:    "See [the eval report](https://example.com/report)",
			expected: "See the eval report",
		},
		{
			name:     "images removed",
			input:    "Before ![chart](img.png) after",
			expected: "Before  after",
		},
		{
			name:     "list markers removed",
			input:    "- first\n- second\n1. third",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "code blocks removed",
			input:    "keep\n```\ndrop this\n```\nkeep too",
			expected: "keep\n\nkeep too",
		},
		{
			name:     "table pipes survive",
			input:    "| Metric | Value |\n| MMLU | 89.5 |",
			expected: "| Metric | Value |\n| MMLU | 89.5 |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripMarkdown(tt.input))
		})
	}
}
