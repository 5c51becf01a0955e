package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
)

// Ensure PolicyStore implements the interface.
var _ driven.PolicyStore = (*PolicyStore)(nil)

// PolicyStore is an in-memory implementation of driven.PolicyStore.
type PolicyStore struct {
	mu       sync.RWMutex
	policies map[string]domain.Policy
}

// NewPolicyStore creates a new in-memory policy store.
func NewPolicyStore() *PolicyStore {
	return &PolicyStore{
		policies: make(map[string]domain.Policy),
	}
}

// Save stores or updates a policy.
func (s *PolicyStore) Save(_ context.Context, policy *domain.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[policy.ID] = *policy
	return nil
}

// Get retrieves a policy by ID.
func (s *PolicyStore) Get(_ context.Context, id string) (*domain.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policy, ok := s.policies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &policy, nil
}

// List returns all policies, ordered by creation time.
func (s *PolicyStore) List(_ context.Context) ([]domain.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policies := make([]domain.Policy, 0, len(s.policies))
	for _, policy := range s.policies {
		policies = append(policies, policy)
	}
	sort.Slice(policies, func(i, j int) bool {
		return policies[i].CreatedAt.Before(policies[j].CreatedAt)
	})
	return policies, nil
}

// Delete removes a policy.
func (s *PolicyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.policies, id)
	return nil
}
