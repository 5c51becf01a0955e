package services

import (
	"context"
	"fmt"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
	"github.com/veridian-labs/modelcheck-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultSearchLimit caps result counts when the caller passes k <= 0.
const defaultSearchLimit = 10

// SearchService finds chunks semantically similar to a query.
type SearchService struct {
	docStore  driven.DocumentStore
	embedding driven.EmbeddingService
	vector    driven.VectorIndex
}

// NewSearchService creates a new search service.
func NewSearchService(
	docStore driven.DocumentStore,
	embedding driven.EmbeddingService,
	vector driven.VectorIndex,
) *SearchService {
	return &SearchService{
		docStore:  docStore,
		embedding: embedding,
		vector:    vector,
	}
}

// Search embeds the query and returns the top-k most similar chunks.
func (s *SearchService) Search(ctx context.Context, query string, k int) ([]driving.ChunkHit, error) {
	if s.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vector == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if k <= 0 {
		k = defaultSearchLimit
	}

	queryVector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vector.Search(ctx, queryVector, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := make([]driving.ChunkHit, 0, len(hits))
	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			// Index and store can drift; skip orphaned hits.
			logger.Debug("chunk %s in index but not in store: %v", hit.ChunkID, err)
			continue
		}
		results = append(results, driving.ChunkHit{
			Chunk: *chunk,
			Score: hit.Similarity,
		})
	}

	return results, nil
}
