package driving

import (
	"context"
	"time"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// DocumentDetails is connector-agnostic document metadata for display.
type DocumentDetails struct {
	ID         string
	SourceID   string
	Title      string
	URI        string
	ChunkCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentService exposes stored documents and chunks for display.
type DocumentService interface {
	// List returns all ingested documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the concatenated content of all chunks.
	GetContent(ctx context.Context, documentID string) (string, error)

	// GetDetails returns display metadata for a document.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)

	// GetChunks returns the stored chunk set for a document.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// Delete removes a document, its chunks, and any indexed vectors.
	Delete(ctx context.Context, documentID string) error
}
