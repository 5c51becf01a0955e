package services

import (
	"context"
	"sort"
	"strings"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
	"github.com/veridian-labs/modelcheck-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes stored documents and chunks for display and
// removal. The vector index is optional; when present, deleting a
// document also drops its chunk vectors.
type DocumentService struct {
	docStore driven.DocumentStore
	vector   driven.VectorIndex
}

// NewDocumentService creates a new document service. vector may be nil.
func NewDocumentService(docStore driven.DocumentStore, vector driven.VectorIndex) *DocumentService {
	return &DocumentService{docStore: docStore, vector: vector}
}

// List returns all ingested documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// GetContent returns the concatenated content of all chunks.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if s.docStore == nil {
		return "", domain.ErrNotImplemented
	}

	// Verify document exists
	_, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return "", err
	}

	// Sort by position
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Metadata.Position < chunks[j].Metadata.Position
	})

	var builder strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(chunk.Content)
	}

	return builder.String(), nil
}

// GetDetails returns display metadata for a document.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	chunkCount := 0
	if err == nil {
		chunkCount = len(chunks)
	}

	return &driving.DocumentDetails{
		ID:         doc.ID,
		SourceID:   doc.SourceID,
		Title:      doc.Title,
		URI:        doc.URI,
		ChunkCount: chunkCount,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// Delete removes a document, its chunks, and any indexed chunk vectors.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if s.docStore == nil {
		return domain.ErrNotImplemented
	}

	if s.vector != nil {
		chunks, err := s.docStore.GetChunks(ctx, documentID)
		if err == nil {
			for i := range chunks {
				if err := s.vector.Delete(ctx, chunks[i].ID); err != nil {
					logger.Warn("vector index delete failed for chunk %s: %v", chunks[i].ID, err)
				}
			}
		}
	}

	return s.docStore.DeleteDocument(ctx, documentID)
}

// GetChunks returns the stored chunk set for a document, ordered by position.
func (s *DocumentService) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, err
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Metadata.Position < chunks[j].Metadata.Position
	})
	return chunks, nil
}
