package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected maxChunkSize %d, got %d", DefaultMaxChunkSize, p.maxChunkSize)
		}
		if p.overlapSize != DefaultOverlapSize {
			t.Errorf("expected overlapSize %d, got %d", DefaultOverlapSize, p.overlapSize)
		}
		if p.minChunkSize != DefaultMinChunkSize {
			t.Errorf("expected minChunkSize %d, got %d", DefaultMinChunkSize, p.minChunkSize)
		}
	})

	t.Run("custom sizes", func(t *testing.T) {
		p := New(WithMaxChunkSize(500), WithMinChunkSize(50), WithOverlapSize(100))
		if p.maxChunkSize != 500 {
			t.Errorf("expected maxChunkSize 500, got %d", p.maxChunkSize)
		}
		if p.minChunkSize != 50 {
			t.Errorf("expected minChunkSize 50, got %d", p.minChunkSize)
		}
		if p.overlapSize != 100 {
			t.Errorf("expected overlapSize 100, got %d", p.overlapSize)
		}
	})

	t.Run("zero overlap allowed", func(t *testing.T) {
		p := New(WithOverlapSize(0))
		if p.overlapSize != 0 {
			t.Errorf("expected overlapSize 0, got %d", p.overlapSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithMaxChunkSize(100), WithOverlapSize(150))
		if p.overlapSize >= p.maxChunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("non-positive sizes ignored", func(t *testing.T) {
		p := New(WithMaxChunkSize(0), WithMinChunkSize(-1), WithOverlapSize(-1))
		if p.maxChunkSize != DefaultMaxChunkSize {
			t.Errorf("expected default maxChunkSize, got %d", p.maxChunkSize)
		}
		if p.minChunkSize != DefaultMinChunkSize {
			t.Errorf("expected default minChunkSize, got %d", p.minChunkSize)
		}
		if p.overlapSize != DefaultOverlapSize {
			t.Errorf("expected default overlapSize, got %d", p.overlapSize)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := New()
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty content, got %d", len(chunks))
	}
}

func TestProcessor_Process_SmallContent(t *testing.T) {
	p := New(WithMaxChunkSize(100), WithMinChunkSize(10), WithOverlapSize(20))
	doc := &domain.Document{
		ID:       "test-doc",
		SourceID: "test-source",
		Content:  "This is a small piece of content.",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small content, got %d", len(chunks))
	}

	if chunks[0].DocumentID != doc.ID {
		t.Errorf("expected DocumentID '%s', got '%s'", doc.ID, chunks[0].DocumentID)
	}
	if chunks[0].ID != "test-source_chunk_0" {
		t.Errorf("expected chunk ID derived from source ID, got '%s'", chunks[0].ID)
	}
	if chunks[0].Content != doc.Content {
		t.Error("expected content to match document content")
	}
	if chunks[0].Metadata.Position != 0 {
		t.Errorf("expected position 0, got %d", chunks[0].Metadata.Position)
	}
	if chunks[0].Metadata.TotalChunks != 1 {
		t.Errorf("expected totalChunks 1, got %d", chunks[0].Metadata.TotalChunks)
	}
}

func TestProcessor_Process_FallsBackToDocumentID(t *testing.T) {
	p := New()
	doc := &domain.Document{
		ID:      "doc-42",
		Content: "Some content.",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].ID != "doc-42_chunk_0" {
		t.Errorf("expected ID from document ID, got '%s'", chunks[0].ID)
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	p := New()

	existingChunks := []domain.Chunk{
		{ID: "existing", Content: "should be ignored"},
	}

	doc := &domain.Document{
		ID:      "test-doc",
		Content: "New content to chunk",
	}

	chunks, err := p.Process(context.Background(), doc, existingChunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, chunk := range chunks {
		if chunk.ID == "existing" {
			t.Error("existing chunks should be ignored")
		}
	}
}

// multiParagraphText builds n paragraphs of the given size each.
func multiParagraphText(n, size int) string {
	paras := make([]string, n)
	for i := range paras {
		paras[i] = strings.Repeat(string(rune('a'+i%26)), size)
	}
	return strings.Join(paras, "\n\n")
}

func TestProcessor_ChunkText_MultipleChunks(t *testing.T) {
	p := New(WithMaxChunkSize(50), WithMinChunkSize(10), WithOverlapSize(0))

	text := multiParagraphText(3, 30)
	chunks := p.ChunkText(text, "src")

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	seenIDs := make(map[string]bool)
	for i, chunk := range chunks {
		if seenIDs[chunk.ID] {
			t.Errorf("duplicate chunk ID: %s", chunk.ID)
		}
		seenIDs[chunk.ID] = true

		if chunk.Metadata.Position != i {
			t.Errorf("expected position %d, got %d", i, chunk.Metadata.Position)
		}
		if chunk.Metadata.TotalChunks != 3 {
			t.Errorf("chunk %d: expected totalChunks 3, got %d", i, chunk.Metadata.TotalChunks)
		}
		if chunk.Metadata.CharCount != len(chunk.Content) {
			t.Errorf("chunk %d: charCount %d != content length %d", i, chunk.Metadata.CharCount, len(chunk.Content))
		}
	}
}

func TestProcessor_ChunkText_SizeBound(t *testing.T) {
	// When no single paragraph exceeds the maximum, every chunk except
	// possibly the last stays within it.
	cases := []struct {
		name     string
		max      int
		min      int
		overlap  int
		paras    int
		paraSize int
	}{
		{"no overlap", 50, 10, 0, 6, 30},
		{"with overlap", 80, 20, 15, 5, 40},
		{"wider maximum", 100, 10, 25, 8, 45},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(WithMaxChunkSize(tc.max), WithMinChunkSize(tc.min), WithOverlapSize(tc.overlap))

			text := multiParagraphText(tc.paras, tc.paraSize)
			chunks := p.ChunkText(text, "src")

			if len(chunks) < 2 {
				t.Fatalf("expected multiple chunks, got %d", len(chunks))
			}
			for i, chunk := range chunks[:len(chunks)-1] {
				if len(chunk.Content) > tc.max {
					t.Errorf("chunk %d: length %d exceeds maximum %d", i, len(chunk.Content), tc.max)
				}
			}
		})
	}
}

func TestProcessor_ChunkText_Idempotent(t *testing.T) {
	p := New(WithMaxChunkSize(80), WithMinChunkSize(20), WithOverlapSize(15))

	text := multiParagraphText(5, 40)
	first := p.ChunkText(text, "src")
	second := p.ChunkText(text, "src")

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Content != second[i].Content {
			t.Errorf("chunk %d content differs between passes", i)
		}
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d ID differs between passes", i)
		}
	}
}

func TestProcessor_ChunkText_ParagraphCoverage(t *testing.T) {
	p := New(WithMaxChunkSize(60), WithMinChunkSize(10), WithOverlapSize(0))

	paras := []string{
		"The model was trained on public data.",
		"Safety evaluations were run before release.",
		"The MMLU score is 89.5 on the standard split.",
	}
	text := strings.Join(paras, "\n\n")

	chunks := p.ChunkText(text, "src")

	all := ""
	for _, chunk := range chunks {
		all += chunk.Content + "\n\n"
	}
	for _, para := range paras {
		if !strings.Contains(all, para) {
			t.Errorf("paragraph missing from chunk set: %q", para)
		}
	}
}

func TestProcessor_ChunkText_OversizedParagraphEmittedWhole(t *testing.T) {
	p := New(WithMaxChunkSize(50), WithMinChunkSize(10), WithOverlapSize(0))

	text := strings.Repeat("x", 200)
	chunks := p.ChunkText(text, "src")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for a single oversized paragraph, got %d", len(chunks))
	}
	if len(chunks[0].Content) != 200 {
		t.Errorf("oversized paragraph should be emitted whole, got %d chars", len(chunks[0].Content))
	}
}

func TestProcessor_ChunkText_MinimumGatesEarlyClose(t *testing.T) {
	// With min 40, a 30-char chunk may not close even though appending
	// the next paragraph overflows the 50-char maximum.
	p := New(WithMaxChunkSize(50), WithMinChunkSize(40), WithOverlapSize(0))

	text := multiParagraphText(3, 30)
	chunks := p.ChunkText(text, "src")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Metadata.ParagraphCount != 2 {
		t.Errorf("expected first chunk to hold 2 paragraphs, got %d", chunks[0].Metadata.ParagraphCount)
	}
	if len(chunks[0].Content) <= 50 {
		t.Errorf("expected first chunk to exceed the maximum when the minimum gates, got %d chars", len(chunks[0].Content))
	}
}

func TestProcessor_ChunkText_OverlapSeedsNextChunk(t *testing.T) {
	p := New(WithMaxChunkSize(50), WithMinChunkSize(10), WithOverlapSize(20))

	text := multiParagraphText(2, 40)
	chunks := p.ChunkText(text, "src")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	// The second chunk starts with trailing material from the first.
	seed := strings.Repeat("a", 20)
	if !strings.HasPrefix(chunks[1].Content, seed) {
		t.Errorf("expected second chunk to start with overlap seed, got %q", chunks[1].Content[:30])
	}
}

func TestProcessor_ChunkText_ZeroOverlapProducesNoSeed(t *testing.T) {
	p := New(WithMaxChunkSize(50), WithMinChunkSize(10), WithOverlapSize(0))

	text := multiParagraphText(2, 40)
	chunks := p.ChunkText(text, "src")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if strings.Contains(chunks[1].Content, "a") {
		t.Errorf("expected no overlap material in second chunk, got %q", chunks[1].Content)
	}
}

func TestProcessor_ChunkText_WordAndParagraphCounts(t *testing.T) {
	p := New()

	text := "one two three\n\nfour five"
	chunks := p.ChunkText(text, "src")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata.WordCount != 5 {
		t.Errorf("expected 5 words, got %d", chunks[0].Metadata.WordCount)
	}
	if chunks[0].Metadata.ParagraphCount != 2 {
		t.Errorf("expected 2 paragraphs, got %d", chunks[0].Metadata.ParagraphCount)
	}
	if chunks[0].Metadata.AvgParagraphLength <= 0 {
		t.Errorf("expected positive avg paragraph length, got %f", chunks[0].Metadata.AvgParagraphLength)
	}
}

func TestProcessor_ChunkText_IDsSequential(t *testing.T) {
	p := New(WithMaxChunkSize(50), WithMinChunkSize(10), WithOverlapSize(0))

	text := multiParagraphText(4, 40)
	chunks := p.ChunkText(text, "report")

	for i, chunk := range chunks {
		want := fmt.Sprintf("report_chunk_%d", i)
		if chunk.ID != want {
			t.Errorf("expected ID %s, got %s", want, chunk.ID)
		}
	}
}
