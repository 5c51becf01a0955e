package domain

import (
	"fmt"
	"time"
)

// ComparisonOperator defines how an actual metric value is compared
// against a criterion's required value.
type ComparisonOperator string

// Available comparison operators.
const (
	// OperatorGTE passes when actual >= required.
	OperatorGTE ComparisonOperator = "GTE"

	// OperatorLTE passes when actual <= required.
	OperatorLTE ComparisonOperator = "LTE"

	// OperatorEQ passes when actual == required.
	OperatorEQ ComparisonOperator = "EQ"
)

// IsValid returns true if the operator is recognised.
func (o ComparisonOperator) IsValid() bool {
	switch o {
	case OperatorGTE, OperatorLTE, OperatorEQ:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o ComparisonOperator) String() string {
	return string(o)
}

// Symbol returns the operator as a display symbol.
func (o ComparisonOperator) Symbol() string {
	switch o {
	case OperatorGTE:
		return ">="
	case OperatorLTE:
		return "<="
	case OperatorEQ:
		return "=="
	default:
		return "?"
	}
}

// Severity is a criterion's priority tier. Lower values are more severe.
type Severity int

// Available severity tiers.
const (
	// SeverityCritical failures fail the whole audit.
	SeverityCritical Severity = 1

	// SeverityMajor failures downgrade the audit to a warning.
	SeverityMajor Severity = 2

	// SeverityMinor failures downgrade the audit to a warning.
	SeverityMinor Severity = 3
)

// IsValid returns true if the severity is recognised.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityMajor, SeverityMinor:
		return true
	default:
		return false
	}
}

// String returns the tier name.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityMajor:
		return "major"
	case SeverityMinor:
		return "minor"
	default:
		return "unknown"
	}
}

// Criterion is one quantitative requirement within a policy.
// Criteria are keyed by metric key within a policy; a policy cannot hold
// two criteria for the same metric key.
type Criterion struct {
	// MetricKey names the model metric this criterion applies to.
	MetricKey string

	// RequiredValue is the threshold or exact value to compare against.
	RequiredValue float64

	// Operator is the comparison to apply (GTE, LTE, EQ).
	Operator ComparisonOperator

	// Severity controls how a failure affects the aggregate verdict.
	Severity Severity

	// Label is the human-readable name shown in reports.
	Label string
}

// Validate checks the criterion's required fields.
// Criteria often arrive from an LLM-backed extractor and are untrusted.
func (c *Criterion) Validate() error {
	if c.MetricKey == "" {
		return fmt.Errorf("%w: criterion missing metric key", ErrInvalidInput)
	}
	if !c.Operator.IsValid() {
		return fmt.Errorf("%w: criterion %q has unrecognised operator %q", ErrInvalidInput, c.MetricKey, c.Operator)
	}
	if !c.Severity.IsValid() {
		return fmt.Errorf("%w: criterion %q has unrecognised severity %d", ErrInvalidInput, c.MetricKey, c.Severity)
	}
	return nil
}

// Policy is a user-defined set of quantitative criteria a model's
// documented metrics are audited against.
type Policy struct {
	// ID is the unique identifier for the policy.
	ID string

	// Name is the human-readable policy name.
	Name string

	// Description explains the policy's intent.
	Description string

	// Criteria maps metric key to the criterion for that key.
	// A later write for the same key replaces the earlier one.
	Criteria map[string]Criterion

	// CreatedAt is when the policy was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the policy was last updated.
	UpdatedAt time.Time
}

// Validate checks the policy holds at least one well-formed criterion.
func (p *Policy) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: policy missing ID", ErrInvalidInput)
	}
	if len(p.Criteria) == 0 {
		return fmt.Errorf("%w: policy %q has no criteria", ErrInvalidInput, p.ID)
	}
	for key, criterion := range p.Criteria {
		if key != criterion.MetricKey {
			return fmt.Errorf("%w: policy %q criteria map key %q does not match metric key %q",
				ErrInvalidInput, p.ID, key, criterion.MetricKey)
		}
		if err := criterion.Validate(); err != nil {
			return err
		}
	}
	return nil
}
