package driven

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// ComplianceCacheStore caches compliance results keyed by (policyID, modelID).
// A conflicting upsert for the same key overwrites the earlier record.
//
// The cache is a side effect of evaluation, never an input to it: the
// evaluator must produce a correct result with no cache present, and a
// failed write is logged rather than surfaced to the caller.
type ComplianceCacheStore interface {
	// Upsert stores or overwrites the cached result for its
	// (PolicyID, ModelID) key.
	Upsert(ctx context.Context, result *domain.ComplianceResult) error

	// Get retrieves the cached result for a (policyID, modelID) pair.
	// Returns domain.ErrNotFound when no result is cached.
	Get(ctx context.Context, policyID, modelID string) (*domain.ComplianceResult, error)

	// Delete removes the cached result for a (policyID, modelID) pair.
	Delete(ctx context.Context, policyID, modelID string) error
}
