package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/storage/memory"
	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// longContext exceeds the strong-confidence threshold.
var longContext = strings.Repeat("The documented evaluation methodology is described here. ", 2)

func metricsWith(metrics ...domain.Metric) *domain.ModelMetrics {
	m := &domain.ModelMetrics{}
	for _, metric := range metrics {
		switch metric.Category {
		case domain.MetricCategorySafety:
			m.Safety = append(m.Safety, metric)
		case domain.MetricCategoryGovernance:
			m.Governance = append(m.Governance, metric)
		default:
			m.Performance = append(m.Performance, metric)
		}
	}
	return m
}

func TestEvaluateCriterion_Operators(t *testing.T) {
	tests := []struct {
		name     string
		operator domain.ComparisonOperator
		actual   float64
		required float64
		want     domain.EvaluationStatus
	}{
		{"GTE above threshold", domain.OperatorGTE, 85, 80, domain.EvaluationPass},
		{"GTE at threshold", domain.OperatorGTE, 80, 80, domain.EvaluationPass},
		{"GTE below threshold", domain.OperatorGTE, 79.9, 80, domain.EvaluationFail},
		{"GTE required 90 fails at 85", domain.OperatorGTE, 85, 90, domain.EvaluationFail},
		{"LTE below threshold", domain.OperatorLTE, 0.03, 0.05, domain.EvaluationPass},
		{"LTE at threshold", domain.OperatorLTE, 0.05, 0.05, domain.EvaluationPass},
		{"LTE above threshold", domain.OperatorLTE, 0.12, 0.05, domain.EvaluationFail},
		{"EQ equal", domain.OperatorEQ, 1, 1, domain.EvaluationPass},
		{"EQ not equal", domain.OperatorEQ, 0, 1, domain.EvaluationFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criterion := &domain.Criterion{
				MetricKey:     "SomeMetric",
				RequiredValue: tt.required,
				Operator:      tt.operator,
				Severity:      domain.SeverityMajor,
			}
			metric := &domain.Metric{
				Key:           "SomeMetric",
				Value:         tt.actual,
				SourceContext: longContext,
			}

			detail := EvaluateCriterion(criterion, metric)

			assert.Equal(t, tt.want, detail.Status)
			assert.Equal(t, tt.actual, detail.ActualValue)
			assert.Equal(t, tt.required, detail.RequiredValue)
			assert.Equal(t, tt.operator, detail.Operator)
		})
	}
}

func TestEvaluateCriterion_MissingMetric(t *testing.T) {
	criterion := &domain.Criterion{
		MetricKey:     "Undocumented",
		RequiredValue: 1,
		Operator:      domain.OperatorGTE,
		Severity:      domain.SeverityCritical,
	}

	detail := EvaluateCriterion(criterion, nil)

	assert.Equal(t, domain.EvaluationNA, detail.Status)
	assert.Zero(t, detail.ConfidenceScore)
	assert.NotEmpty(t, detail.AmbiguityFactors)
	assert.NotEmpty(t, detail.SupportingPassage)
}

func TestEvaluateCriterion_NumericStringCoerced(t *testing.T) {
	criterion := &domain.Criterion{
		MetricKey:     "MMLUScore",
		RequiredValue: 85,
		Operator:      domain.OperatorGTE,
		Severity:      domain.SeverityMajor,
	}
	metric := &domain.Metric{
		Key:           "MMLUScore",
		Value:         "89.5",
		SourceContext: longContext,
	}

	detail := EvaluateCriterion(criterion, metric)

	assert.Equal(t, domain.EvaluationPass, detail.Status)
	assert.Equal(t, 89.5, detail.ActualValue)
}

func TestEvaluateCriterion_NonNumericValue(t *testing.T) {
	criterion := &domain.Criterion{
		MetricKey:     "AuditCoverage",
		RequiredValue: 0.9,
		Operator:      domain.OperatorGTE,
		Severity:      domain.SeverityMajor,
	}
	metric := &domain.Metric{
		Key:           "AuditCoverage",
		Value:         "extensive",
		SourceContext: longContext,
		SourceURI:     "file:///card.md",
	}

	detail := EvaluateCriterion(criterion, metric)

	assert.Equal(t, domain.EvaluationNA, detail.Status)
	assert.Zero(t, detail.ConfidenceScore)
	assert.NotEmpty(t, detail.AmbiguityFactors)
	assert.Equal(t, "file:///card.md", detail.SourceURI)
}

func TestEvaluateCriterion_UnrecognisedOperator(t *testing.T) {
	criterion := &domain.Criterion{
		MetricKey:     "MMLUScore",
		RequiredValue: 85,
		Operator:      domain.ComparisonOperator("APPROX"),
		Severity:      domain.SeverityMajor,
	}
	metric := &domain.Metric{Key: "MMLUScore", Value: 89.5}

	detail := EvaluateCriterion(criterion, metric)

	assert.Equal(t, domain.EvaluationNA, detail.Status)
	assert.NotEmpty(t, detail.AmbiguityFactors)
}

func TestEvaluateCriterion_Confidence(t *testing.T) {
	criterion := &domain.Criterion{
		MetricKey:     "MMLUScore",
		RequiredValue: 85,
		Operator:      domain.OperatorGTE,
		Severity:      domain.SeverityMajor,
	}

	t.Run("long context scores strong", func(t *testing.T) {
		metric := &domain.Metric{
			Key:           "MMLUScore",
			Value:         89.5,
			SourceContext: strings.Repeat("x", 60),
		}
		detail := EvaluateCriterion(criterion, metric)

		assert.Equal(t, 0.95, detail.ConfidenceScore)
		assert.Empty(t, detail.AmbiguityFactors)
	})

	t.Run("short context scores weak with advisories", func(t *testing.T) {
		metric := &domain.Metric{
			Key:           "MMLUScore",
			Value:         89.5,
			SourceContext: strings.Repeat("x", 10),
		}
		detail := EvaluateCriterion(criterion, metric)

		assert.Equal(t, 0.70, detail.ConfidenceScore)
		assert.Len(t, detail.AmbiguityFactors, 2)
	})

	t.Run("confidence never gates status", func(t *testing.T) {
		metric := &domain.Metric{Key: "MMLUScore", Value: 89.5}
		detail := EvaluateCriterion(criterion, metric)

		assert.Equal(t, domain.EvaluationPass, detail.Status)
	})
}

func TestEvaluatePolicy_SeverityPrecedence(t *testing.T) {
	metrics := metricsWith(
		domain.Metric{Key: "Passing", Value: 100.0, Category: domain.MetricCategoryPerformance},
		domain.Metric{Key: "Failing", Value: 0.0, Category: domain.MetricCategoryPerformance},
	)

	criterion := func(key string, severity domain.Severity) domain.Criterion {
		return domain.Criterion{
			MetricKey:     key,
			RequiredValue: 50,
			Operator:      domain.OperatorGTE,
			Severity:      severity,
		}
	}

	tests := []struct {
		name     string
		criteria map[string]domain.Criterion
		want     domain.OverallStatus
	}{
		{
			name: "all pass",
			criteria: map[string]domain.Criterion{
				"Passing": criterion("Passing", domain.SeverityCritical),
			},
			want: domain.OverallPass,
		},
		{
			name: "critical failure wins",
			criteria: map[string]domain.Criterion{
				"Passing": criterion("Passing", domain.SeverityMajor),
				"Failing": criterion("Failing", domain.SeverityCritical),
			},
			want: domain.OverallFailCritical,
		},
		{
			name: "major failure warns",
			criteria: map[string]domain.Criterion{
				"Passing": criterion("Passing", domain.SeverityCritical),
				"Failing": criterion("Failing", domain.SeverityMajor),
			},
			want: domain.OverallWarnMajor,
		},
		{
			name: "minor failure warns",
			criteria: map[string]domain.Criterion{
				"Failing": criterion("Failing", domain.SeverityMinor),
			},
			want: domain.OverallWarnMajor,
		},
		{
			name: "missing metric never gates the verdict",
			criteria: map[string]domain.Criterion{
				"Passing": criterion("Passing", domain.SeverityMajor),
				"Absent":  criterion("Absent", domain.SeverityCritical),
			},
			want: domain.OverallPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := &domain.Policy{ID: "pol-1", Criteria: tt.criteria}

			result := EvaluatePolicy(policy, metrics)

			assert.Equal(t, tt.want, result.OverallStatus)
			assert.Len(t, result.Details, len(tt.criteria))
			assert.False(t, result.EvaluatedAt.IsZero())
		})
	}
}

func TestComplianceService_Evaluate(t *testing.T) {
	ctx := context.Background()
	policyStore := memory.NewPolicyStore()
	modelStore := memory.NewModelStore()
	cache := memory.NewComplianceCache()

	require.NoError(t, policyStore.Save(ctx, &domain.Policy{
		ID: "eu-baseline",
		Criteria: map[string]domain.Criterion{
			"MMLUScore": {
				MetricKey:     "MMLUScore",
				RequiredValue: 85,
				Operator:      domain.OperatorGTE,
				Severity:      domain.SeverityMajor,
			},
			"ToxicityRate": {
				MetricKey:     "ToxicityRate",
				RequiredValue: 0.05,
				Operator:      domain.OperatorLTE,
				Severity:      domain.SeverityCritical,
			},
		},
	}))
	require.NoError(t, modelStore.Save(ctx, &domain.Model{
		ID: "atlas-7b",
		Metrics: domain.ModelMetrics{
			Safety: []domain.Metric{
				{Key: "ToxicityRate", Value: 0.12, Category: domain.MetricCategorySafety, SourceContext: longContext},
			},
			Performance: []domain.Metric{
				{Key: "MMLUScore", Value: 89.5, Category: domain.MetricCategoryPerformance, SourceContext: longContext},
			},
		},
	}))

	svc := NewComplianceService(policyStore, modelStore, cache)

	result, err := svc.Evaluate(ctx, "eu-baseline", "atlas-7b")
	require.NoError(t, err)

	assert.Equal(t, "eu-baseline", result.PolicyID)
	assert.Equal(t, "atlas-7b", result.ModelID)
	assert.Equal(t, domain.OverallFailCritical, result.OverallStatus)
	assert.Equal(t, domain.EvaluationPass, result.Details["MMLUScore"].Status)
	assert.Equal(t, domain.EvaluationFail, result.Details["ToxicityRate"].Status)

	// Evaluation result lands in the cache.
	cached, err := svc.Cached(ctx, "eu-baseline", "atlas-7b")
	require.NoError(t, err)
	assert.Equal(t, result.OverallStatus, cached.OverallStatus)
}

func TestComplianceService_Evaluate_PolicyWithoutCriteria(t *testing.T) {
	ctx := context.Background()
	policyStore := memory.NewPolicyStore()
	modelStore := memory.NewModelStore()

	require.NoError(t, policyStore.Save(ctx, &domain.Policy{ID: "empty"}))
	require.NoError(t, modelStore.Save(ctx, &domain.Model{ID: "atlas-7b"}))

	svc := NewComplianceService(policyStore, modelStore, nil)

	_, err := svc.Evaluate(ctx, "empty", "atlas-7b")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplianceService_Evaluate_UnknownIDs(t *testing.T) {
	ctx := context.Background()
	policyStore := memory.NewPolicyStore()
	modelStore := memory.NewModelStore()

	require.NoError(t, policyStore.Save(ctx, &domain.Policy{
		ID: "pol-1",
		Criteria: map[string]domain.Criterion{
			"M": {MetricKey: "M", RequiredValue: 1, Operator: domain.OperatorGTE, Severity: domain.SeverityMajor},
		},
	}))

	svc := NewComplianceService(policyStore, modelStore, nil)

	_, err := svc.Evaluate(ctx, "missing", "any")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Evaluate(ctx, "pol-1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplianceService_Cached_NoCache(t *testing.T) {
	svc := NewComplianceService(memory.NewPolicyStore(), memory.NewModelStore(), nil)

	_, err := svc.Cached(context.Background(), "pol-1", "mod-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplianceService_CacheOverwrite(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewComplianceCache()

	first := &domain.ComplianceResult{PolicyID: "p", ModelID: "m", OverallStatus: domain.OverallPass}
	second := &domain.ComplianceResult{PolicyID: "p", ModelID: "m", OverallStatus: domain.OverallWarnMajor}

	require.NoError(t, cache.Upsert(ctx, first))
	require.NoError(t, cache.Upsert(ctx, second))

	got, err := cache.Get(ctx, "p", "m")
	require.NoError(t, err)
	assert.Equal(t, domain.OverallWarnMajor, got.OverallStatus)
}
