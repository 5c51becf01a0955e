package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	require.NotNil(t, r)

	types := r.SupportedMIMETypes()
	assert.Contains(t, types, "text/markdown")
	assert.Contains(t, types, "text/html")
	assert.Contains(t, types, "text/plain")
}

func TestRegistry_Normalise_DispatchesByMIME(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	raw := &domain.RawDocument{
		SourceID: "card",
		URI:      "/cards/atlas.md",
		MIMEType: "text/markdown",
		Content:  []byte("# Atlas 7B\n\n**Bold** body."),
	}

	result, err := r.Normalise(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "markdown", result.Document.Metadata["format"])
	assert.Contains(t, result.Document.Content, "Bold body.")
}

func TestRegistry_Normalise_StripsMIMEParameters(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	raw := &domain.RawDocument{
		SourceID: "card",
		URI:      "/cards/atlas.md",
		MIMEType: "text/markdown; charset=utf-8",
		Content:  []byte("# Atlas 7B"),
	}

	result, err := r.Normalise(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "markdown", result.Document.Metadata["format"])
}

func TestRegistry_Normalise_UnknownMIMEFallsBack(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	raw := &domain.RawDocument{
		SourceID: "blob",
		URI:      "/data/metrics.unknown",
		MIMEType: "application/x-unknown",
		Content:  []byte("raw text"),
	}

	result, err := r.Normalise(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "raw text", result.Document.Content)
}

func TestRegistry_Normalise_NilDocument(t *testing.T) {
	r := NewDefaultRegistry()

	result, err := r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/cards/atlas.md", "text/markdown"},
		{"/cards/atlas.markdown", "text/markdown"},
		{"/pages/atlas.html", "text/html"},
		{"/pages/atlas.htm", "text/html"},
		{"/notes/eval.txt", "text/plain"},
		{"/notes/README", "text/plain"},
		{"/data/metrics.json", "application/json"},
		{"/data/blob.xyz123", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectMIMEType(tt.path))
		})
	}
}
