package mcp

import (
	"context"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
)

// mockComplianceService is a mock implementation of driving.ComplianceService.
type mockComplianceService struct {
	result *domain.ComplianceResult
	cached *domain.ComplianceResult
	err    error
}

func (m *mockComplianceService) Evaluate(
	_ context.Context,
	_, _ string,
) (*domain.ComplianceResult, error) {
	return m.result, m.err
}

func (m *mockComplianceService) Cached(
	_ context.Context,
	_, _ string,
) (*domain.ComplianceResult, error) {
	return m.cached, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	hits []driving.ChunkHit
	err  error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ int,
) ([]driving.ChunkHit, error) {
	return m.hits, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	details   *driving.DocumentDetails
	chunks    []domain.Chunk
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) GetChunks(_ context.Context, _ string) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockModelService is a mock implementation of driving.ModelService.
type mockModelService struct {
	models []domain.Model
	model  *domain.Model
	err    error
}

func (m *mockModelService) Import(_ context.Context, _ *domain.Model) error {
	return m.err
}

func (m *mockModelService) Get(_ context.Context, _ string) (*domain.Model, error) {
	return m.model, m.err
}

func (m *mockModelService) List(_ context.Context) ([]domain.Model, error) {
	return m.models, m.err
}

// mockPolicyService is a mock implementation of driving.PolicyService.
type mockPolicyService struct {
	policies []domain.Policy
	policy   *domain.Policy
	err      error
}

func (m *mockPolicyService) Import(_ context.Context, _ *domain.Policy) error {
	return m.err
}

func (m *mockPolicyService) ExtractAndImport(
	_ context.Context,
	_, _, _ string,
) (*domain.Policy, error) {
	return m.policy, m.err
}

func (m *mockPolicyService) Get(_ context.Context, _ string) (*domain.Policy, error) {
	return m.policy, m.err
}

func (m *mockPolicyService) List(_ context.Context) ([]domain.Policy, error) {
	return m.policies, m.err
}
