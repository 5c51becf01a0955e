package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/vector/memory"
	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// unitEmbedder maps every text to the same unit vector so ranking is
// driven entirely by the index contents.
type unitEmbedder struct{}

func (unitEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (unitEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (unitEmbedder) Dimensions() int              { return 3 }
func (unitEmbedder) ModelName() string            { return "unit-embed" }
func (unitEmbedder) Ping(_ context.Context) error { return nil }
func (unitEmbedder) Close() error                 { return nil }

func TestSearchService_MissingCollaborators(t *testing.T) {
	ctx := context.Background()
	docStore := memory.NewDocumentStore()

	t.Run("no embedding service", func(t *testing.T) {
		svc := NewSearchService(docStore, nil, vectormem.NewIndex())
		_, err := svc.Search(ctx, "query", 5)
		assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	})

	t.Run("no vector index", func(t *testing.T) {
		svc := NewSearchService(docStore, unitEmbedder{}, nil)
		_, err := svc.Search(ctx, "query", 5)
		assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
	})
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	docStore := memory.NewDocumentStore()
	index := vectormem.NewIndex()

	require.NoError(t, docStore.SaveDocument(ctx, &domain.Document{ID: "doc-1", SourceID: "card"}))
	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{
		{ID: "card_chunk_0", DocumentID: "doc-1", Content: "close match"},
		{ID: "card_chunk_1", DocumentID: "doc-1", Content: "distant match"},
	}))
	require.NoError(t, index.Add(ctx, "card_chunk_0", []float32{1, 0, 0}))
	require.NoError(t, index.Add(ctx, "card_chunk_1", []float32{0, 1, 0}))

	svc := NewSearchService(docStore, unitEmbedder{}, index)

	hits, err := svc.Search(ctx, "anything", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "card_chunk_0", hits[0].Chunk.ID)
	assert.Equal(t, "close match", hits[0].Chunk.Content)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestSearchService_Search_SkipsOrphanedHits(t *testing.T) {
	ctx := context.Background()
	docStore := memory.NewDocumentStore()
	index := vectormem.NewIndex()

	require.NoError(t, docStore.SaveDocument(ctx, &domain.Document{ID: "doc-1", SourceID: "card"}))
	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{
		{ID: "card_chunk_0", DocumentID: "doc-1", Content: "stored"},
	}))
	require.NoError(t, index.Add(ctx, "card_chunk_0", []float32{1, 0, 0}))
	// Indexed but never stored; the index has drifted from the store.
	require.NoError(t, index.Add(ctx, "ghost_chunk", []float32{1, 0, 0}))

	svc := NewSearchService(docStore, unitEmbedder{}, index)

	hits, err := svc.Search(ctx, "anything", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "card_chunk_0", hits[0].Chunk.ID)
}

func TestSearchService_Search_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	docStore := memory.NewDocumentStore()
	index := vectormem.NewIndex()

	chunks := make([]domain.Chunk, 15)
	for i := range chunks {
		id := string(rune('a'+i)) + "_chunk"
		chunks[i] = domain.Chunk{ID: id, DocumentID: "doc-1", Content: "text"}
		require.NoError(t, index.Add(ctx, id, []float32{1, 0, 0}))
	}
	require.NoError(t, docStore.SaveDocument(ctx, &domain.Document{ID: "doc-1"}))
	require.NoError(t, docStore.SaveChunks(ctx, chunks))

	svc := NewSearchService(docStore, unitEmbedder{}, index)

	hits, err := svc.Search(ctx, "anything", 0)
	require.NoError(t, err)
	assert.Len(t, hits, defaultSearchLimit)
}
