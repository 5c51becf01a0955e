// Package normalisers converts raw documentation bytes into plain text
// Documents. Each format (Markdown, HTML, plain text) has its own
// normaliser under a subpackage; the Registry picks the best one for a
// given MIME type.
package normalisers

import (
	"context"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
	htmlnorm "github.com/veridian-labs/modelcheck-cli/internal/normalisers/html"
	"github.com/veridian-labs/modelcheck-cli/internal/normalisers/markdown"
	"github.com/veridian-labs/modelcheck-cli/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the highest-priority normaliser
// claiming their MIME type, falling back to plain text for anything
// unrecognised.
type Registry struct {
	byMIME   map[string][]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates an empty registry with a plain text fallback.
func NewRegistry() *Registry {
	return &Registry{
		byMIME:   make(map[string][]driven.Normaliser),
		fallback: plaintext.New(),
	}
}

// NewDefaultRegistry creates a registry with all built-in normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(markdown.New())
	r.Register(htmlnorm.New())
	r.Register(plaintext.New())
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	for _, mimeType := range normaliser.SupportedMIMETypes() {
		list := append(r.byMIME[mimeType], normaliser)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[mimeType] = list
	}
}

// Normalise transforms a raw document using the best matching normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	if list := r.byMIME[baseMIME(raw.MIMEType)]; len(list) > 0 {
		return list[0].Normalise(ctx, raw)
	}

	return r.fallback.Normalise(ctx, raw)
}

// SupportedMIMETypes returns all MIME types with a registered normaliser.
func (r *Registry) SupportedMIMETypes() []string {
	types := make([]string, 0, len(r.byMIME))
	for mimeType := range r.byMIME {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

// baseMIME strips parameters like "; charset=utf-8".
func baseMIME(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// DetectMIMEType guesses the MIME type of a file from its extension.
// Unknown extensions map to text/plain so ingestion never refuses a file.
func DetectMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".html", ".htm":
		return "text/html"
	case ".txt", "":
		return "text/plain"
	}

	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return baseMIME(t)
	}
	return "text/plain"
}
