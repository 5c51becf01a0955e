package driven

import "context"

// EmbeddingService turns text into vectors for the chunk index.
// Optional: when nil, chunks are stored without embeddings and semantic
// search is disabled. Generation lives here; storage and lookup live in
// VectorIndex.
type EmbeddingService interface {
	// Embed returns the embedding for one text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds all texts, preserving input order. Preferred
	// at ingestion time where a document yields many chunks.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector size the model produces. Must
	// match what the VectorIndex was built with.
	Dimensions() int

	// ModelName returns the embedding model in use.
	ModelName() string

	// Ping checks reachability with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
