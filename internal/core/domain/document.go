package domain

import "time"

// Document represents an ingested model-documentation source.
// It is the canonical representation of raw text before chunking.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// SourceID identifies the logical source (model card, eval report).
	// Chunk IDs are derived from this value.
	SourceID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content.
	// This is the complete document text before chunking.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-ingested.
	UpdatedAt time.Time
}

// Chunk represents a retrieval-sized unit within a document.
// Documents are split into chunks that preserve paragraph boundaries.
type Chunk struct {
	// ID is derived from the source ID and an ordinal index:
	// "{sourceID}_chunk_{index}". Unique within a document.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the trimmed text content of this chunk.
	Content string

	// Embedding is the vector representation for semantic search.
	// Populated by the embedding service, not by the chunker.
	Embedding []float32

	// Metadata describes the chunk's position and size.
	Metadata ChunkMetadata
}

// ChunkMetadata carries position and size information for a chunk.
// TotalChunks is only known once the whole chunking pass completes,
// so it is backfilled after all chunks of a document are built.
type ChunkMetadata struct {
	// Position is the ordinal position within the chunking pass.
	Position int

	// TotalChunks is the number of chunks produced by the pass.
	// Identical across every chunk of the same pass.
	TotalChunks int

	// CharCount is the character count of the chunk content.
	CharCount int

	// WordCount is the whitespace-delimited word count.
	WordCount int

	// ParagraphCount is the number of paragraphs contributed to the chunk.
	ParagraphCount int

	// AvgParagraphLength is the mean paragraph length in characters.
	AvgParagraphLength float64

	// CreatedAt is when the chunk was created.
	CreatedAt time.Time

	// SectionTitle is set when section-scoped chunking was used.
	SectionTitle string

	// SectionLevel is the heading level of the section (0 when unused).
	SectionLevel int

	// GlobalPosition is the document-global ordinal when section-scoped
	// chunking renumbers chunks across sections.
	GlobalPosition int
}

// Section describes an explicit region of a document for section-scoped
// chunking. Offsets are byte offsets into the document content.
type Section struct {
	// Title is the section heading text.
	Title string

	// Level is the heading level (1 = top level).
	Level int

	// Start is the byte offset where the section begins.
	Start int

	// End is the byte offset where the section ends (exclusive).
	End int
}
