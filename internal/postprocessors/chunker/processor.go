// Package chunker provides a paragraph-preserving text chunking processor.
//
// Documents are split on paragraph boundaries and accumulated into bounded
// chunks. When a chunk closes, trailing sentence material is carried into
// the next chunk so cross-boundary context survives retrieval.
package chunker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// DefaultMaxChunkSize is the default soft maximum characters per chunk.
const DefaultMaxChunkSize = 1000

// DefaultOverlapSize is the default overlap budget in characters.
const DefaultOverlapSize = 200

// DefaultMinChunkSize is the default minimum characters before a chunk
// may be closed early.
const DefaultMinChunkSize = 100

// paragraphJoin separates paragraphs within a chunk.
const paragraphJoin = "\n\n"

// Processor splits document content into paragraph-preserving chunks.
// It implements the PostProcessor interface.
type Processor struct {
	maxChunkSize int
	overlapSize  int
	minChunkSize int

	// preserveSentences and preserveParagraphs are retained for future
	// chunking policy; paragraph preservation is the only one currently
	// enforced by the assembler.
	preserveSentences  bool
	preserveParagraphs bool
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxChunkSize sets the soft maximum chunk size in characters.
func WithMaxChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.maxChunkSize = size
		}
	}
}

// WithOverlapSize sets the overlap budget between chunks in characters.
func WithOverlapSize(size int) Option {
	return func(p *Processor) {
		if size >= 0 {
			p.overlapSize = size
		}
	}
}

// WithMinChunkSize sets the minimum size a chunk must reach before it
// may be closed early.
func WithMinChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.minChunkSize = size
		}
	}
}

// WithPreserveSentences toggles sentence preservation.
func WithPreserveSentences(preserve bool) Option {
	return func(p *Processor) {
		p.preserveSentences = preserve
	}
}

// WithPreserveParagraphs toggles paragraph preservation.
func WithPreserveParagraphs(preserve bool) Option {
	return func(p *Processor) {
		p.preserveParagraphs = preserve
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxChunkSize:       DefaultMaxChunkSize,
		overlapSize:        DefaultOverlapSize,
		minChunkSize:       DefaultMinChunkSize,
		preserveSentences:  true,
		preserveParagraphs: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlapSize >= p.maxChunkSize {
		p.overlapSize = p.maxChunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	sourceID := doc.SourceID
	if sourceID == "" {
		sourceID = doc.ID
	}

	chunks := p.ChunkText(doc.Content, sourceID)
	for i := range chunks {
		chunks[i].DocumentID = doc.ID
	}

	return chunks, nil
}

// ChunkText runs one chunking pass over raw text. Chunk IDs are derived
// from sourceID as "{sourceID}_chunk_{index}".
//
// State is scoped to this one pass; concurrent passes over different
// documents share nothing.
func (p *Processor) ChunkText(text, sourceID string) []domain.Chunk {
	chunks := p.chunkPass(text, sourceID, 0)

	// TotalChunks is only known once the pass completes: backfill.
	for i := range chunks {
		chunks[i].Metadata.TotalChunks = len(chunks)
	}

	return chunks
}

// chunkPass assembles chunks from one block of text. idOffset shifts the
// ordinal used for chunk IDs so section-scoped passes stay unique within
// the document. TotalChunks is left unset for the caller to backfill.
func (p *Processor) chunkPass(text, sourceID string, idOffset int) []domain.Chunk {
	paragraphs := SplitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	current := ""
	var currentParas []string
	index := 0

	for _, para := range paragraphs {
		tentative := para
		if current != "" {
			tentative = current + paragraphJoin + para
		}

		// Close the current chunk only when the append would overflow
		// AND the chunk already meets the minimum. The minimum gates
		// early closing, never output.
		if len(tentative) > p.maxChunkSize && len(current) >= p.minChunkSize {
			chunks = append(chunks, p.buildChunk(current, currentParas, sourceID, index, idOffset))
			index++

			seed := ""
			if p.overlapSize > 0 {
				seed = BuildOverlap(current, p.overlapSize)
			}

			if seed != "" {
				current = seed + paragraphJoin + para
			} else {
				current = para
			}
			currentParas = []string{para}
			continue
		}

		current = tentative
		currentParas = append(currentParas, para)
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, p.buildChunk(current, currentParas, sourceID, index, idOffset))
	}

	return chunks
}

// buildChunk closes the accumulated text as a finished chunk record.
// paras are the source paragraphs contributed to the chunk, excluding any
// overlap-seeded prefix.
func (p *Processor) buildChunk(text string, paras []string, sourceID string, index, idOffset int) domain.Chunk {
	content := strings.TrimSpace(text)

	avgParaLen := 0.0
	if len(paras) > 0 {
		total := 0
		for _, para := range paras {
			total += len(para)
		}
		avgParaLen = float64(total) / float64(len(paras))
	}

	return domain.Chunk{
		ID:      fmt.Sprintf("%s_chunk_%d", sourceID, index+idOffset),
		Content: content,
		Metadata: domain.ChunkMetadata{
			Position:           index,
			CharCount:          len(content),
			WordCount:          countWords(content),
			ParagraphCount:     len(paras),
			AvgParagraphLength: avgParaLen,
			CreatedAt:          time.Now().UTC(),
		},
	}
}
