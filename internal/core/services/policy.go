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

// Ensure PolicyService implements the interface.
var _ driving.PolicyService = (*PolicyService)(nil)

// PolicyService manages governance policies. Criteria extracted from prose
// arrive via an LLM-backed extractor and are treated as untrusted input:
// they are validated before storage and never silently coerced.
type PolicyService struct {
	policyStore driven.PolicyStore
	extractor   driven.CriteriaExtractor
}

// NewPolicyService creates a new policy service.
// The extractor is optional - when nil, only structured import works.
func NewPolicyService(policyStore driven.PolicyStore, extractor driven.CriteriaExtractor) *PolicyService {
	return &PolicyService{
		policyStore: policyStore,
		extractor:   extractor,
	}
}

// Import validates and stores a structured policy.
func (s *PolicyService) Import(ctx context.Context, policy *domain.Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = now
	}
	policy.UpdatedAt = now

	if err := s.policyStore.Save(ctx, policy); err != nil {
		return fmt.Errorf("save policy %q: %w", policy.ID, err)
	}

	logger.Info("Imported policy %s with %d criteria", policy.ID, len(policy.Criteria))
	return nil
}

// ExtractAndImport derives criteria from prose via the configured extractor,
// validates the untrusted output, and stores the policy. A malformed
// operator, invalid severity, or empty criteria map fails the call.
func (s *PolicyService) ExtractAndImport(ctx context.Context, id, name, policyText string) (*domain.Policy, error) {
	if s.extractor == nil {
		return nil, domain.ErrLLMUnavailable
	}

	criteria, err := s.extractor.Extract(ctx, policyText)
	if err != nil {
		return nil, fmt.Errorf("extract criteria: %w", err)
	}
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: extractor returned no criteria", domain.ErrInvalidInput)
	}

	// Normalise map keys to the criterion's metric key; a later entry for
	// the same key replaces the earlier one.
	normalised := make(map[string]domain.Criterion, len(criteria))
	for _, criterion := range criteria {
		normalised[criterion.MetricKey] = criterion
	}

	policy := &domain.Policy{
		ID:       id,
		Name:     name,
		Criteria: normalised,
	}

	if err := s.Import(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// Get retrieves a policy by ID.
func (s *PolicyService) Get(ctx context.Context, id string) (*domain.Policy, error) {
	return s.policyStore.Get(ctx, id)
}

// List returns all policies.
func (s *PolicyService) List(ctx context.Context) ([]domain.Policy, error) {
	return s.policyStore.List(ctx)
}
