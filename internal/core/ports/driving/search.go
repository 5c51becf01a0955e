package driving

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// ChunkHit pairs a matched chunk with its similarity score.
type ChunkHit struct {
	// Chunk is the matched chunk.
	Chunk domain.Chunk

	// Score is the cosine similarity (0-1).
	Score float64
}

// SearchService finds chunks semantically similar to a query.
// Requires both an embedding service and a vector index; returns
// domain.ErrEmbeddingUnavailable or domain.ErrVectorIndexUnavailable
// when the respective collaborator is missing.
type SearchService interface {
	// Search embeds the query and returns the top-k most similar chunks.
	Search(ctx context.Context, query string, k int) ([]ChunkHit, error)
}
