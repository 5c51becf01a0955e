package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
)

// Ensure ModelStore implements the interface.
var _ driven.ModelStore = (*ModelStore)(nil)

// ModelStore is an in-memory implementation of driven.ModelStore.
type ModelStore struct {
	mu     sync.RWMutex
	models map[string]domain.Model
}

// NewModelStore creates a new in-memory model store.
func NewModelStore() *ModelStore {
	return &ModelStore{
		models: make(map[string]domain.Model),
	}
}

// Save stores or updates a model and its metrics.
func (s *ModelStore) Save(_ context.Context, model *domain.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[model.ID] = *model
	return nil
}

// Get retrieves a model by ID.
func (s *ModelStore) Get(_ context.Context, id string) (*domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	model, ok := s.models[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &model, nil
}

// List returns all models, ordered by creation time.
func (s *ModelStore) List(_ context.Context) ([]domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	models := make([]domain.Model, 0, len(s.models))
	for _, model := range s.models {
		models = append(models, model)
	}
	sort.Slice(models, func(i, j int) bool {
		return models[i].CreatedAt.Before(models[j].CreatedAt)
	})
	return models, nil
}

// Delete removes a model and its metrics.
func (s *ModelStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.models, id)
	return nil
}
