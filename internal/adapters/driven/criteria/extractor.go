// Package criteria provides an LLM-backed criteria extractor.
// It turns prose governance policies into structured criteria maps.
package criteria

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.CriteriaExtractor = (*Extractor)(nil)

// extractMaxTokens bounds the response size for one policy document.
const extractMaxTokens = 2048

// defaultExtractPrompt is the fallback prompt when no PromptStore is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultExtractPrompt = `Extract quantitative compliance criteria from the governance policy below.

Return ONLY a JSON object mapping metric keys to criteria, nothing else. Each criterion has:
- "metric_key": the exact metric identifier (e.g. "MMLUScore", "RefusalRate")
- "required_value": the numeric threshold
- "operator": one of "GTE" (at least), "LTE" (at most), "EQ" (exactly)
- "severity": 1 (critical), 2 (major) or 3 (minor)
- "label": a short human-readable name

Example:
{"MMLUScore": {"metric_key": "MMLUScore", "required_value": 85.0, "operator": "GTE", "severity": 1, "label": "General knowledge"}}

Skip requirements that are not quantitative. Do not invent thresholds.

Policy:
%s

JSON:`

// criterionPayload is the JSON shape the LLM is asked to produce.
type criterionPayload struct {
	MetricKey     string  `json:"metric_key"`
	RequiredValue float64 `json:"required_value"`
	Operator      string  `json:"operator"`
	Severity      int     `json:"severity"`
	Label         string  `json:"label"`
}

// Extractor parses policy prose into criteria using an LLM.
type Extractor struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewExtractor creates a criteria extractor backed by the given LLM.
// The prompt store is optional; when nil the embedded default prompt is used.
func NewExtractor(llm driven.LLMService, promptStore driven.PromptStore) *Extractor {
	return &Extractor{
		llm:         llm,
		promptStore: promptStore,
	}
}

// Extract parses policy prose into a criteria map keyed by metric key.
// The returned map is raw LLM output; callers validate it before use.
func (e *Extractor) Extract(ctx context.Context, policyText string) (map[string]domain.Criterion, error) {
	if e.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if strings.TrimSpace(policyText) == "" {
		return nil, fmt.Errorf("%w: empty policy text", domain.ErrInvalidInput)
	}

	prompt := fmt.Sprintf(e.loadPrompt(), policyText)

	raw, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   extractMaxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("extract criteria: %w", err)
	}

	payload, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	criteria := make(map[string]domain.Criterion, len(payload))
	for key, c := range payload {
		if c.MetricKey == "" {
			c.MetricKey = key
		}
		criteria[key] = domain.Criterion{
			MetricKey:     c.MetricKey,
			RequiredValue: c.RequiredValue,
			Operator:      domain.ComparisonOperator(c.Operator),
			Severity:      domain.Severity(c.Severity),
			Label:         c.Label,
		}
	}

	return criteria, nil
}

// loadPrompt returns the extraction prompt template.
func (e *Extractor) loadPrompt() string {
	if e.promptStore == nil {
		return defaultExtractPrompt
	}
	prompt, err := e.promptStore.Load(driven.PromptCriteriaExtract)
	if err != nil {
		return defaultExtractPrompt
	}
	return prompt
}

// parseResponse extracts the JSON object from an LLM response.
// Models sometimes wrap JSON in markdown fences or prose; the parser
// takes the outermost braces and decodes what is between them.
func parseResponse(raw string) (map[string]criterionPayload, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in extractor response", domain.ErrInvalidInput)
	}

	var payload map[string]criterionPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: decode extractor response: %v", domain.ErrInvalidInput, err)
	}

	return payload, nil
}
