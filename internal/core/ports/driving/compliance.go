package driving

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// ComplianceService audits models against policies.
type ComplianceService interface {
	// Evaluate runs a fresh evaluation of the model against the policy,
	// upserts the result into the compliance cache, and returns it.
	// A cache write failure is logged and does not fail the evaluation.
	Evaluate(ctx context.Context, policyID, modelID string) (*domain.ComplianceResult, error)

	// Cached returns the cached result for a (policyID, modelID) pair.
	// Returns domain.ErrNotFound when nothing has been cached.
	Cached(ctx context.Context, policyID, modelID string) (*domain.ComplianceResult, error)
}
