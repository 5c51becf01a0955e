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

// Ensure ComplianceService implements the interface.
var _ driving.ComplianceService = (*ComplianceService)(nil)

// Confidence scoring constants, derived from evidentiary strength.
const (
	// confidenceStrong applies when the metric's source context exceeds
	// minContextLength characters.
	confidenceStrong = 0.95

	// confidenceWeak applies when source context is short or absent.
	confidenceWeak = 0.70

	// ambiguityThreshold: evaluations below this confidence carry
	// advisory ambiguity factors.
	ambiguityThreshold = 0.75

	// minContextLength is the source-context length needed for a
	// strong-confidence evaluation.
	minContextLength = 50
)

// Fixed advisory strings attached to evaluation outcomes.
const (
	noteMetricNotDocumented = "metric is not documented for this model"
	noteMetricNotFound      = "no supporting passage found"
	noteShortContext        = "supporting passage is short; the documented value may lack context"
	noteManualReview        = "manual review of the source documentation is recommended"
	noteValueNotNumeric     = "documented value could not be parsed as a number"
	noteBadOperator         = "criterion has an unrecognised comparison operator"
)

// ComplianceService audits a model's documented metrics against a policy's
// quantitative criteria. Evaluation itself is a pure function of
// (policy, metrics); the cache upsert is a fire-and-forget side effect.
type ComplianceService struct {
	policyStore driven.PolicyStore
	modelStore  driven.ModelStore
	cache       driven.ComplianceCacheStore
}

// NewComplianceService creates a new compliance service.
// The cache is optional - when nil, results are simply not cached.
func NewComplianceService(
	policyStore driven.PolicyStore,
	modelStore driven.ModelStore,
	cache driven.ComplianceCacheStore,
) *ComplianceService {
	return &ComplianceService{
		policyStore: policyStore,
		modelStore:  modelStore,
		cache:       cache,
	}
}

// Evaluate loads the policy and model, runs a fresh evaluation, and upserts
// the result into the compliance cache. A cache write failure is logged and
// never invalidates the returned result.
func (s *ComplianceService) Evaluate(ctx context.Context, policyID, modelID string) (*domain.ComplianceResult, error) {
	policy, err := s.policyStore.Get(ctx, policyID)
	if err != nil {
		return nil, fmt.Errorf("get policy %q: %w", policyID, err)
	}
	if len(policy.Criteria) == 0 {
		return nil, fmt.Errorf("%w: policy %q has no criteria", domain.ErrInvalidInput, policyID)
	}

	model, err := s.modelStore.Get(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("get model %q: %w", modelID, err)
	}

	result := EvaluatePolicy(policy, &model.Metrics)
	result.PolicyID = policyID
	result.ModelID = modelID

	logger.Info("Evaluated model %s against policy %s: %s", modelID, policyID, result.OverallStatus)

	if s.cache != nil {
		if err := s.cache.Upsert(ctx, result); err != nil {
			logger.Warn("compliance cache upsert failed for (%s, %s): %v", policyID, modelID, err)
		}
	}

	return result, nil
}

// Cached returns the cached result for a (policyID, modelID) pair.
func (s *ComplianceService) Cached(ctx context.Context, policyID, modelID string) (*domain.ComplianceResult, error) {
	if s.cache == nil {
		return nil, domain.ErrNotFound
	}
	return s.cache.Get(ctx, policyID, modelID)
}

// EvaluatePolicy runs every criterion in the policy against the model's
// metrics and combines the outcomes into an overall verdict.
//
// Verdict precedence: any critical-severity failure wins FAIL_CRITICAL;
// any other failure wins WARN_MAJOR; otherwise PASS. N/A outcomes never
// affect the verdict.
func EvaluatePolicy(policy *domain.Policy, metrics *domain.ModelMetrics) *domain.ComplianceResult {
	details := make(map[string]domain.EvaluationDetail, len(policy.Criteria))

	anyFailed := false
	criticalFailed := false

	for key, criterion := range policy.Criteria {
		detail := EvaluateCriterion(&criterion, metrics.FindMetric(criterion.MetricKey))
		details[key] = detail

		if detail.Status == domain.EvaluationFail {
			anyFailed = true
			if criterion.Severity == domain.SeverityCritical {
				criticalFailed = true
			}
		}
	}

	overall := domain.OverallPass
	switch {
	case criticalFailed:
		overall = domain.OverallFailCritical
	case anyFailed:
		overall = domain.OverallWarnMajor
	}

	return &domain.ComplianceResult{
		PolicyID:      policy.ID,
		OverallStatus: overall,
		Details:       details,
		EvaluatedAt:   time.Now().UTC(),
	}
}

// EvaluateCriterion performs the typed threshold comparison for one
// criterion against the matched metric (nil when the metric key is not
// documented for the model).
//
// Confidence is advisory metadata derived from evidentiary strength; it
// never gates the PASS/FAIL status. Malformed input (non-numeric value,
// unrecognised operator) surfaces as N/A with an explanatory ambiguity
// factor rather than an error - a distinguishable outcome, never a silent
// wrong verdict.
func EvaluateCriterion(criterion *domain.Criterion, metric *domain.Metric) domain.EvaluationDetail {
	if metric == nil {
		return domain.EvaluationDetail{
			Status:            domain.EvaluationNA,
			ConfidenceScore:   0,
			SupportingPassage: noteMetricNotFound,
			AmbiguityFactors:  []string{noteMetricNotDocumented},
		}
	}

	actual, err := metric.NumericValue()
	if err != nil {
		return domain.EvaluationDetail{
			Status:            domain.EvaluationNA,
			ConfidenceScore:   0,
			SupportingPassage: metric.SourceContext,
			SourceURI:         metric.SourceURI,
			AmbiguityFactors:  []string{noteValueNotNumeric},
		}
	}

	var passed bool
	switch criterion.Operator {
	case domain.OperatorGTE:
		passed = actual >= criterion.RequiredValue
	case domain.OperatorLTE:
		passed = actual <= criterion.RequiredValue
	case domain.OperatorEQ:
		passed = actual == criterion.RequiredValue
	default:
		return domain.EvaluationDetail{
			Status:            domain.EvaluationNA,
			ConfidenceScore:   0,
			SupportingPassage: metric.SourceContext,
			SourceURI:         metric.SourceURI,
			AmbiguityFactors:  []string{noteBadOperator},
		}
	}

	confidence := confidenceWeak
	if len(metric.SourceContext) > minContextLength {
		confidence = confidenceStrong
	}

	var ambiguity []string
	if confidence < ambiguityThreshold {
		ambiguity = []string{noteShortContext, noteManualReview}
	}

	status := domain.EvaluationFail
	if passed {
		status = domain.EvaluationPass
	}

	return domain.EvaluationDetail{
		Status:            status,
		ConfidenceScore:   confidence,
		SupportingPassage: metric.SourceContext,
		SourceURI:         metric.SourceURI,
		AmbiguityFactors:  ambiguity,
		ActualValue:       actual,
		RequiredValue:     criterion.RequiredValue,
		Operator:          criterion.Operator,
		Label:             criterion.Label,
	}
}
