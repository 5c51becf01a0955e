package domain

import "time"

// EvaluationStatus is the outcome of evaluating a single criterion.
type EvaluationStatus string

// Per-criterion outcomes.
const (
	// EvaluationPass means the documented value satisfies the criterion.
	EvaluationPass EvaluationStatus = "PASS"

	// EvaluationFail means the documented value violates the criterion.
	EvaluationFail EvaluationStatus = "FAIL"

	// EvaluationNA means the metric is not documented for the model,
	// or its value could not be compared. Never affects the verdict.
	EvaluationNA EvaluationStatus = "N/A"
)

// OverallStatus is the aggregate verdict for one model-policy pairing.
type OverallStatus string

// Aggregate verdicts, in precedence order.
const (
	// OverallFailCritical: at least one critical-severity criterion failed.
	OverallFailCritical OverallStatus = "FAIL_CRITICAL"

	// OverallWarnMajor: at least one non-critical criterion failed.
	OverallWarnMajor OverallStatus = "WARN_MAJOR"

	// OverallPass: every evaluated criterion passed or was N/A.
	OverallPass OverallStatus = "PASS"
)

// EvaluationDetail is the per-criterion outcome within a compliance result.
type EvaluationDetail struct {
	// Status is PASS, FAIL or N/A.
	Status EvaluationStatus

	// ConfidenceScore estimates evidentiary strength in [0,1].
	// Advisory metadata only; it never gates the status.
	ConfidenceScore float64

	// SupportingPassage is the source context backing the evaluation.
	SupportingPassage string

	// SourceURI links to the documentation the metric came from.
	SourceURI string

	// AmbiguityFactors are human-readable caveats attached to
	// low-confidence evaluations. Nil when there are none.
	AmbiguityFactors []string

	// ActualValue is the coerced metric value. Set on PASS/FAIL only.
	ActualValue float64

	// RequiredValue is the criterion threshold. Set on PASS/FAIL only.
	RequiredValue float64

	// Operator is the comparison applied. Set on PASS/FAIL only.
	Operator ComparisonOperator

	// Label is the criterion's display name. Set on PASS/FAIL only.
	Label string
}

// ComplianceResult is the verdict of auditing one model against one policy.
// It is produced fresh on every evaluation; the cache is a side effect.
type ComplianceResult struct {
	// ModelID identifies the audited model.
	ModelID string

	// PolicyID identifies the policy audited against.
	PolicyID string

	// OverallStatus is the aggregate verdict.
	OverallStatus OverallStatus

	// Details maps metric key to the per-criterion outcome.
	Details map[string]EvaluationDetail

	// EvaluatedAt is when the evaluation ran.
	EvaluatedAt time.Time
}
