package driving

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// ModelService manages model records and their metric collections.
type ModelService interface {
	// Import validates and stores a model with its metrics.
	Import(ctx context.Context, model *domain.Model) error

	// Get retrieves a model by ID.
	Get(ctx context.Context, id string) (*domain.Model, error)

	// List returns all models.
	List(ctx context.Context) ([]domain.Model, error)
}
