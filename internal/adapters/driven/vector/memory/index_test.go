package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

func TestIndex_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()

	require.NoError(t, idx.Add(ctx, "chunk-a", []float32{1, 0, 0}))
	require.NoError(t, idx.Add(ctx, "chunk-b", []float32{0, 1, 0}))
	require.NoError(t, idx.Add(ctx, "chunk-c", []float32{0.9, 0.1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "chunk-a", hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.Equal(t, "chunk-c", hits[1].ChunkID)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestIndex_SearchReturnsAtMostK(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, idx.Add(ctx, id, []float32{1, 1}))
	}

	hits, err := idx.Search(ctx, []float32{1, 1}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndex_AddValidation(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()

	err := idx.Add(ctx, "", []float32{1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = idx.Add(ctx, "chunk-a", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_AddOverwrites(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()

	require.NoError(t, idx.Add(ctx, "chunk-a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "chunk-a", []float32{0, 1}))
	assert.Equal(t, 1, idx.Len())

	hits, err := idx.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
}

func TestIndex_Delete(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()

	require.NoError(t, idx.Add(ctx, "chunk-a", []float32{1, 0}))
	require.NoError(t, idx.Delete(ctx, "chunk-a"))
	assert.Equal(t, 0, idx.Len())

	// Deleting a missing ID is not an error
	assert.NoError(t, idx.Delete(ctx, "chunk-a"))
}

func TestIndex_SearchSkipsDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()

	require.NoError(t, idx.Add(ctx, "chunk-a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "chunk-b", []float32{1, 0, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "chunk-a", hits[0].ChunkID)
}

func TestIndex_SearchEmptyQuery(t *testing.T) {
	idx := NewIndex()

	_, err := idx.Search(context.Background(), nil, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
