package domain

import (
	"fmt"
	"strconv"
	"time"
)

// MetricCategory classifies a metric into one of three groups.
type MetricCategory string

// Available metric categories.
const (
	// MetricCategorySafety covers safety evaluations (refusal rates, red-team scores).
	MetricCategorySafety MetricCategory = "safety"

	// MetricCategoryPerformance covers capability benchmarks (MMLU, HumanEval).
	MetricCategoryPerformance MetricCategory = "performance"

	// MetricCategoryGovernance covers process and provenance facts (audit coverage, data lineage).
	MetricCategoryGovernance MetricCategory = "governance"
)

// IsValid returns true if the metric category is recognised.
func (c MetricCategory) IsValid() bool {
	switch c {
	case MetricCategorySafety, MetricCategoryPerformance, MetricCategoryGovernance:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c MetricCategory) String() string {
	return string(c)
}

// Metric is one documented quantitative or boolean fact about a model.
// The key is unique within a model's metric collection.
type Metric struct {
	// Key identifies the metric (e.g. "MMLUScore").
	Key string

	// Value is the documented value. Numeric, or a numeric string as
	// extracted from documentation; coerced at evaluation time.
	Value any

	// Category classifies the metric.
	Category MetricCategory

	// SourceContext is the free-text passage the value was taken from.
	// Used as evidentiary support for compliance verdicts.
	SourceContext string

	// SourceURI links back to the documentation the metric came from.
	SourceURI string
}

// NumericValue coerces the metric value to a float64.
// Accepts native numeric types and numeric strings.
func (m *Metric) NumericValue() (float64, error) {
	switch v := m.Value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: metric %q value %q is not numeric", ErrValueNotNumeric, m.Key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: metric %q has unsupported value type %T", ErrValueNotNumeric, m.Key, m.Value)
	}
}

// ModelMetrics holds a model's metrics in the three category groups.
type ModelMetrics struct {
	// Safety metrics.
	Safety []Metric

	// Performance metrics.
	Performance []Metric

	// Governance metrics.
	Governance []Metric
}

// FindMetric locates the first metric whose key matches exactly, searching
// all three groups. Returns nil when the key is not documented.
// Matching is exact; no fuzzy or case-insensitive lookup.
func (m *ModelMetrics) FindMetric(key string) *Metric {
	for _, group := range [][]Metric{m.Safety, m.Performance, m.Governance} {
		for i := range group {
			if group[i].Key == key {
				return &group[i]
			}
		}
	}
	return nil
}

// Count returns the total number of metrics across all groups.
func (m *ModelMetrics) Count() int {
	return len(m.Safety) + len(m.Performance) + len(m.Governance)
}

// Model represents an AI model whose documentation is being audited.
type Model struct {
	// ID is the unique identifier for the model.
	ID string

	// Name is the human-readable model name.
	Name string

	// Provider is the organisation that published the model.
	Provider string

	// Metrics is the model's documented metric collection.
	Metrics ModelMetrics

	// CreatedAt is when the model record was first imported.
	CreatedAt time.Time

	// UpdatedAt is when the model record was last updated.
	UpdatedAt time.Time
}
