package driving

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// IngestRequest describes one document to ingest.
type IngestRequest struct {
	// SourceID identifies the logical source. Chunk IDs derive from it.
	SourceID string

	// Title is the human-readable document title.
	Title string

	// URI is the original location of the text.
	URI string

	// Content is the raw documentation text.
	Content string

	// Sections optionally scope chunking to explicit section boundaries.
	Sections []domain.Section
}

// IngestResult summarises one completed ingestion pass.
type IngestResult struct {
	// DocumentID is the stored document's ID.
	DocumentID string

	// ChunkCount is the number of chunks produced.
	ChunkCount int

	// Embedded reports whether chunk embeddings were indexed.
	Embedded bool
}

// IngestService turns raw documentation text into stored, chunked documents.
type IngestService interface {
	// Ingest chunks and stores one document. Re-ingesting the same
	// SourceID replaces the previous document and its chunk set.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)

	// IngestFile reads and ingests a single file.
	IngestFile(ctx context.Context, path, sourceID string) (*IngestResult, error)
}
