package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
)

func TestServer_handleEvaluate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns evaluation result", func(t *testing.T) {
		mockCompliance := &mockComplianceService{
			result: &domain.ComplianceResult{
				PolicyID:      "pol-1",
				ModelID:       "mdl-1",
				OverallStatus: domain.OverallFailCritical,
				EvaluatedAt:   now,
				Details: map[string]domain.EvaluationDetail{
					"ToxicityRate": {
						Status:          domain.EvaluationFail,
						ConfidenceScore: 0.95,
						ActualValue:     0.12,
						RequiredValue:   0.05,
						Operator:        domain.OperatorLTE,
						Label:           "Toxicity rate",
					},
					"MMLUScore": {
						Status:          domain.EvaluationPass,
						ConfidenceScore: 0.95,
						ActualValue:     89.5,
						RequiredValue:   85,
						Operator:        domain.OperatorGTE,
						Label:           "MMLU score",
					},
				},
			},
		}

		ports := &Ports{Compliance: mockCompliance}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := EvaluateInput{PolicyID: "pol-1", ModelID: "mdl-1"}
		_, output, err := server.handleEvaluate(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "pol-1", output.PolicyID)
		assert.Equal(t, "mdl-1", output.ModelID)
		assert.Equal(t, "FAIL_CRITICAL", output.OverallStatus)
		assert.Equal(t, now, output.EvaluatedAt)
		require.Len(t, output.Criteria, 2)

		// Criteria are sorted by metric key.
		assert.Equal(t, "MMLUScore", output.Criteria[0].MetricKey)
		assert.Equal(t, "PASS", output.Criteria[0].Status)
		assert.Equal(t, "ToxicityRate", output.Criteria[1].MetricKey)
		assert.Equal(t, "FAIL", output.Criteria[1].Status)
		assert.Equal(t, 0.12, output.Criteria[1].ActualValue)
		assert.Equal(t, "LTE", output.Criteria[1].Operator)
	})

	t.Run("cached flag uses cached result", func(t *testing.T) {
		mockCompliance := &mockComplianceService{
			cached: &domain.ComplianceResult{
				PolicyID:      "pol-1",
				ModelID:       "mdl-1",
				OverallStatus: domain.OverallPass,
				EvaluatedAt:   now,
				Details:       map[string]domain.EvaluationDetail{},
			},
		}

		ports := &Ports{Compliance: mockCompliance}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := EvaluateInput{PolicyID: "pol-1", ModelID: "mdl-1", Cached: true}
		_, output, err := server.handleEvaluate(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "PASS", output.OverallStatus)
		assert.Empty(t, output.Criteria)
	})

	t.Run("returns error on evaluation failure", func(t *testing.T) {
		mockCompliance := &mockComplianceService{
			err: errors.New("policy not found"),
		}

		ports := &Ports{Compliance: mockCompliance}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := EvaluateInput{PolicyID: "missing", ModelID: "mdl-1"}
		_, _, err = server.handleEvaluate(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "policy not found")
	})
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns chunk hits", func(t *testing.T) {
		mockSearch := &mockSearchService{
			hits: []driving.ChunkHit{
				{
					Chunk: domain.Chunk{
						ID:         "chunk-1",
						DocumentID: "doc-1",
						Content:    "Toxicity rate measured at 0.03 on the standard benchmark.",
					},
					Score: 0.92,
				},
			},
		}

		ports := &Ports{Compliance: &mockComplianceService{}, Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "toxicity", Limit: 5}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "chunk-1", output.Results[0].ChunkID)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, 0.92, output.Results[0].Score)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		ports := &Ports{Compliance: &mockComplianceService{}, Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "test", Limit: 0}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{
			err: errors.New("search failed"),
		}

		ports := &Ports{Compliance: &mockComplianceService{}, Search: mockSearch}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "test"}
		_, _, err = server.handleSearch(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}
