package driven

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// CriteriaExtractor derives structured criteria from a prose policy document.
// Backed by an LLM; its output is untrusted and must be validated before
// storage or evaluation.
type CriteriaExtractor interface {
	// Extract parses policy prose into a criteria map keyed by metric key.
	// Implementations return raw extractor output; callers validate it.
	Extract(ctx context.Context, policyText string) (map[string]domain.Criterion, error)
}
