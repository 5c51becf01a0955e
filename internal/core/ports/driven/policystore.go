package driven

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// PolicyStore persists policies and their criteria maps.
type PolicyStore interface {
	// Save stores or updates a policy.
	Save(ctx context.Context, policy *domain.Policy) error

	// Get retrieves a policy by ID.
	Get(ctx context.Context, id string) (*domain.Policy, error)

	// List returns all policies, ordered by creation time.
	List(ctx context.Context) ([]domain.Policy, error)

	// Delete removes a policy.
	Delete(ctx context.Context, id string) error
}
