package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
	"github.com/veridian-labs/modelcheck-cli/internal/logger"
	"github.com/veridian-labs/modelcheck-cli/internal/normalisers"
	"github.com/veridian-labs/modelcheck-cli/internal/postprocessors/chunker"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns raw documentation text into stored, chunked
// documents. Embedding and vector indexing are optional: with either
// collaborator missing, ingestion still succeeds without semantic search.
type IngestService struct {
	docStore    driven.DocumentStore
	pipeline    driven.PostProcessorPipeline
	normalisers driven.NormaliserRegistry
	embedding   driven.EmbeddingService
	vector      driven.VectorIndex
	processor   *chunker.Processor
}

// NewIngestService creates a new ingest service.
// normalisers may be nil; files are then ingested as raw text.
// embedding and vector may be nil; chunks are then stored without vectors.
func NewIngestService(
	docStore driven.DocumentStore,
	pipeline driven.PostProcessorPipeline,
	normalisers driven.NormaliserRegistry,
	embedding driven.EmbeddingService,
	vector driven.VectorIndex,
	processor *chunker.Processor,
) *IngestService {
	return &IngestService{
		docStore:    docStore,
		pipeline:    pipeline,
		normalisers: normalisers,
		embedding:   embedding,
		vector:      vector,
		processor:   processor,
	}
}

// Ingest chunks and stores one document.
//
// Re-ingesting an existing SourceID replaces the stored document and its
// chunk set with a fresh pass (new chunk IDs); chunks are never updated
// in place.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: empty document content", domain.ErrInvalidInput)
	}
	if req.SourceID == "" {
		return nil, fmt.Errorf("%w: missing source ID", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		SourceID:  req.SourceID,
		URI:       req.URI,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Re-ingestion: drop the previous document so the new chunk set
	// fully replaces the old one.
	if existing, err := s.docStore.FindBySourceID(ctx, req.SourceID); err == nil && existing != nil {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
		if err := s.dropChunks(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	var chunks []domain.Chunk
	if len(req.Sections) > 0 {
		chunks = s.processor.ChunkSections(req.Content, req.Sections, req.SourceID)
		for i := range chunks {
			chunks[i].DocumentID = doc.ID
		}
	} else {
		var err error
		chunks, err = s.pipeline.Process(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("chunking pipeline: %w", err)
		}
	}

	embedded := s.embedChunks(ctx, chunks)

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	if embedded {
		for i := range chunks {
			if err := s.vector.Add(ctx, chunks[i].ID, chunks[i].Embedding); err != nil {
				logger.Warn("vector index add failed for chunk %s: %v", chunks[i].ID, err)
			}
		}
	}

	logger.Info("Ingested %s: %d chunks (embedded=%t)", req.SourceID, len(chunks), embedded)

	return &driving.IngestResult{
		DocumentID: doc.ID,
		ChunkCount: len(chunks),
		Embedded:   embedded,
	}, nil
}

// IngestFile reads and ingests a single file. When a normaliser registry
// is configured the file is normalised by MIME type first, so markdown
// model cards arrive as plain text with their heading sections preserved.
// sourceID defaults to a slug of the file name.
func (s *IngestService) IngestFile(ctx context.Context, path, sourceID string) (*driving.IngestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if sourceID == "" {
		sourceID = slugify(title)
	}

	req := driving.IngestRequest{
		SourceID: sourceID,
		Title:    title,
		URI:      "file://" + path,
		Content:  string(data),
	}

	if s.normalisers != nil {
		raw := &domain.RawDocument{
			SourceID: sourceID,
			URI:      req.URI,
			MIMEType: normalisers.DetectMIMEType(path),
			Content:  data,
		}
		result, err := s.normalisers.Normalise(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("normalise %s: %w", path, err)
		}
		req.Content = result.Document.Content
		req.Sections = result.Sections
		if result.Document.Title != "" {
			req.Title = result.Document.Title
		}
	}

	return s.Ingest(ctx, req)
}

// embedChunks generates and attaches embeddings when both the embedding
// service and vector index are configured. Failure degrades gracefully to
// unembedded ingestion.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) bool {
	if s.embedding == nil || s.vector == nil || len(chunks) == 0 {
		return false
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Warn("embedding batch failed, ingesting without vectors: %v", err)
		return false
	}
	if len(vectors) != len(chunks) {
		logger.Warn("embedding batch returned %d vectors for %d chunks, ingesting without vectors", len(vectors), len(chunks))
		return false
	}

	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return true
}

// dropChunks removes a replaced document's chunks from the vector index.
func (s *IngestService) dropChunks(ctx context.Context, documentID string) error {
	if s.vector == nil {
		return nil
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get chunks for %s: %w", documentID, err)
	}
	for i := range chunks {
		if err := s.vector.Delete(ctx, chunks[i].ID); err != nil {
			logger.Warn("vector index delete failed for chunk %s: %v", chunks[i].ID, err)
		}
	}
	return nil
}

// slugify lowercases and replaces non-alphanumeric runs with hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
