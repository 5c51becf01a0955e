package mcp

import (
	"context"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// EvaluateInput is the input schema for the evaluate_compliance tool.
type EvaluateInput struct {
	PolicyID string `json:"policy_id" jsonschema:"the governance policy to audit against"`
	ModelID  string `json:"model_id" jsonschema:"the model whose documented metrics are audited"`
	Cached   bool   `json:"cached,omitempty" jsonschema:"return the cached result instead of re-evaluating"`
}

// EvaluateOutput is the output schema for the evaluate_compliance tool.
type EvaluateOutput struct {
	PolicyID      string            `json:"policy_id"`
	ModelID       string            `json:"model_id"`
	OverallStatus string            `json:"overall_status"`
	EvaluatedAt   time.Time         `json:"evaluated_at"`
	Criteria      []CriterionOutput `json:"criteria"`
}

// CriterionOutput is the per-criterion outcome in an evaluation result.
type CriterionOutput struct {
	MetricKey         string   `json:"metric_key"`
	Label             string   `json:"label,omitempty"`
	Status            string   `json:"status"`
	ActualValue       float64  `json:"actual_value,omitempty"`
	RequiredValue     float64  `json:"required_value,omitempty"`
	Operator          string   `json:"operator,omitempty"`
	ConfidenceScore   float64  `json:"confidence_score"`
	SupportingPassage string   `json:"supporting_passage,omitempty"`
	AmbiguityFactors  []string `json:"ambiguity_factors,omitempty"`
}

// SearchInput is the input schema for the search_chunks tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find documentation passages"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_chunks tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single chunk hit.
type SearchResultOutput struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "evaluate_compliance",
		Description: "Audit a model's documented metrics against a governance policy",
	}, s.handleEvaluate)

	if s.ports.Search != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_chunks",
			Description: "Semantic search across ingested model documentation",
		}, s.handleSearch)
	}
}

// handleEvaluate handles the evaluate_compliance tool invocation.
func (s *Server) handleEvaluate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, EvaluateOutput, error) {
	var result *domain.ComplianceResult
	var err error

	if input.Cached {
		result, err = s.ports.Compliance.Cached(ctx, input.PolicyID, input.ModelID)
	} else {
		result, err = s.ports.Compliance.Evaluate(ctx, input.PolicyID, input.ModelID)
	}
	if err != nil {
		return nil, EvaluateOutput{}, err
	}

	output := EvaluateOutput{
		PolicyID:      result.PolicyID,
		ModelID:       result.ModelID,
		OverallStatus: string(result.OverallStatus),
		EvaluatedAt:   result.EvaluatedAt,
		Criteria:      make([]CriterionOutput, 0, len(result.Details)),
	}

	for key, detail := range result.Details {
		output.Criteria = append(output.Criteria, CriterionOutput{
			MetricKey:         key,
			Label:             detail.Label,
			Status:            string(detail.Status),
			ActualValue:       detail.ActualValue,
			RequiredValue:     detail.RequiredValue,
			Operator:          string(detail.Operator),
			ConfidenceScore:   detail.ConfidenceScore,
			SupportingPassage: detail.SupportingPassage,
			AmbiguityFactors:  detail.AmbiguityFactors,
		})
	}

	// Map iteration order is random; keep the output stable
	sort.Slice(output.Criteria, func(i, j int) bool {
		return output.Criteria[i].MetricKey < output.Criteria[j].MetricKey
	})

	return nil, output, nil
}

// handleSearch handles the search_chunks tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	hits, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(hits)),
		Count:   len(hits),
	}

	for i := range hits {
		output.Results[i] = SearchResultOutput{
			ChunkID:    hits[i].Chunk.ID,
			DocumentID: hits[i].Chunk.DocumentID,
			Score:      hits[i].Score,
			Content:    hits[i].Chunk.Content,
		}
	}

	return nil, output, nil
}
