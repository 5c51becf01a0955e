package driven

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// Normaliser transforms raw documentation into plain text form.
// Each normaliser handles specific MIME types (e.g. Markdown, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise transforms a raw document into a normalised document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Normalisation produces a Document with plain text Content; chunking is
// handled downstream by the post-processor pipeline.
type NormaliseResult struct {
	// Document is the normalised document with Content populated.
	Document domain.Document

	// Sections are heading-delimited regions of Content, when the source
	// format exposes structure. Nil for unstructured formats.
	Sections []domain.Section
}

// NormaliserRegistry selects the appropriate normaliser for a document.
// It maintains a priority-ordered list of normalisers and dispatches
// based on MIME type.
type NormaliserRegistry interface {
	// Normalise transforms a raw document using the best matching normaliser.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
