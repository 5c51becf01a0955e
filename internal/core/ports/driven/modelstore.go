package driven

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// ModelStore persists model records and their metric collections.
type ModelStore interface {
	// Save stores or updates a model and its metrics.
	Save(ctx context.Context, model *domain.Model) error

	// Get retrieves a model by ID.
	Get(ctx context.Context, id string) (*domain.Model, error)

	// List returns all models, ordered by creation time.
	List(ctx context.Context) ([]domain.Model, error)

	// Delete removes a model and its metrics.
	Delete(ctx context.Context, id string) error
}
