package memory

import (
	"context"
	"sync"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
)

// Ensure ComplianceCache implements the interface.
var _ driven.ComplianceCacheStore = (*ComplianceCache)(nil)

// ComplianceCache is an in-memory implementation of driven.ComplianceCacheStore.
type ComplianceCache struct {
	mu      sync.RWMutex
	results map[cacheKey]domain.ComplianceResult
}

type cacheKey struct {
	policyID string
	modelID  string
}

// NewComplianceCache creates a new in-memory compliance cache.
func NewComplianceCache() *ComplianceCache {
	return &ComplianceCache{
		results: make(map[cacheKey]domain.ComplianceResult),
	}
}

// Upsert stores or overwrites the cached result for its (PolicyID, ModelID) key.
func (c *ComplianceCache) Upsert(_ context.Context, result *domain.ComplianceResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[cacheKey{result.PolicyID, result.ModelID}] = *result
	return nil
}

// Get retrieves the cached result for a (policyID, modelID) pair.
func (c *ComplianceCache) Get(_ context.Context, policyID, modelID string) (*domain.ComplianceResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[cacheKey{policyID, modelID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &result, nil
}

// Delete removes the cached result for a (policyID, modelID) pair.
func (c *ComplianceCache) Delete(_ context.Context, policyID, modelID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, cacheKey{policyID, modelID})
	return nil
}
