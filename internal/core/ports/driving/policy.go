package driving

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// PolicyService manages governance policies.
type PolicyService interface {
	// Import validates and stores a structured policy.
	Import(ctx context.Context, policy *domain.Policy) error

	// ExtractAndImport derives criteria from prose via the configured
	// extractor, validates the untrusted output, and stores the policy.
	ExtractAndImport(ctx context.Context, id, name, policyText string) (*domain.Policy, error)

	// Get retrieves a policy by ID.
	Get(ctx context.Context, id string) (*domain.Policy, error)

	// List returns all policies.
	List(ctx context.Context) ([]domain.Policy, error)
}
