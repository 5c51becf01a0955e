package services

import (
	"context"
	"fmt"
	"time"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
	"github.com/veridian-labs/modelcheck-cli/internal/logger"
)

// Ensure ModelService implements the interface.
var _ driving.ModelService = (*ModelService)(nil)

// ModelService manages model records and their metric collections.
type ModelService struct {
	modelStore driven.ModelStore
}

// NewModelService creates a new model service.
func NewModelService(modelStore driven.ModelStore) *ModelService {
	return &ModelService{modelStore: modelStore}
}

// Import validates and stores a model with its metrics.
// Metric keys must be unique within the model's collection.
func (s *ModelService) Import(ctx context.Context, model *domain.Model) error {
	if model.ID == "" {
		return fmt.Errorf("%w: model missing ID", domain.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, model.Metrics.Count())
	for _, group := range [][]domain.Metric{model.Metrics.Safety, model.Metrics.Performance, model.Metrics.Governance} {
		for i := range group {
			if group[i].Key == "" {
				return fmt.Errorf("%w: model %q has a metric with no key", domain.ErrInvalidInput, model.ID)
			}
			if _, dup := seen[group[i].Key]; dup {
				return fmt.Errorf("%w: model %q has duplicate metric key %q", domain.ErrInvalidInput, model.ID, group[i].Key)
			}
			seen[group[i].Key] = struct{}{}
		}
	}

	now := time.Now().UTC()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	if err := s.modelStore.Save(ctx, model); err != nil {
		return fmt.Errorf("save model %q: %w", model.ID, err)
	}

	logger.Info("Imported model %s with %d metrics", model.ID, model.Metrics.Count())
	return nil
}

// Get retrieves a model by ID.
func (s *ModelService) Get(ctx context.Context, id string) (*domain.Model, error) {
	return s.modelStore.Get(ctx, id)
}

// List returns all models.
func (s *ModelService) List(ctx context.Context) ([]domain.Model, error) {
	return s.modelStore.List(ctx)
}
