package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

var (
	evaluateJSON    bool
	evaluateNoCache bool
)

// Report colours, shared with nothing else; the CLI is otherwise plain.
var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [policy-id] [model-id]",
	Short: "Audit a model against a policy",
	Long: `Evaluates a model's documented metrics against a policy's criteria and
prints a per-criterion compliance report.

A previously cached verdict for the pair is reused when present; --no-cache
forces a fresh evaluation (which also refreshes the cache).`,
	Args: cobra.ExactArgs(2),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "output the result as JSON")
	evaluateCmd.Flags().BoolVar(&evaluateNoCache, "no-cache", false, "force a fresh evaluation")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if complianceService == nil {
		return errors.New("compliance service not configured")
	}

	policyID, modelID := args[0], args[1]
	ctx := cmd.Context()

	var result *domain.ComplianceResult
	var err error
	fromCache := false

	if !evaluateNoCache {
		result, err = complianceService.Cached(ctx, policyID, modelID)
		if err == nil {
			fromCache = true
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("reading cached result: %w", err)
		}
	}

	if result == nil {
		result, err = complianceService.Evaluate(ctx, policyID, modelID)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
	}

	if evaluateJSON {
		return printResultJSON(cmd, result)
	}

	printResultReport(cmd, result, fromCache)
	return nil
}

// resultJSON mirrors domain.ComplianceResult with stable JSON field names.
type resultJSON struct {
	ModelID       string                `json:"model_id"`
	PolicyID      string                `json:"policy_id"`
	OverallStatus string                `json:"overall_status"`
	Details       map[string]detailJSON `json:"details"`
	EvaluatedAt   string                `json:"evaluated_at"`
}

type detailJSON struct {
	Status            string   `json:"status"`
	ConfidenceScore   float64  `json:"confidence_score"`
	SupportingPassage string   `json:"supporting_passage,omitempty"`
	SourceURI         string   `json:"source_uri,omitempty"`
	AmbiguityFactors  []string `json:"ambiguity_factors,omitempty"`
	ActualValue       float64  `json:"actual_value"`
	RequiredValue     float64  `json:"required_value"`
	Operator          string   `json:"operator,omitempty"`
	Label             string   `json:"label,omitempty"`
}

func printResultJSON(cmd *cobra.Command, result *domain.ComplianceResult) error {
	out := resultJSON{
		ModelID:       result.ModelID,
		PolicyID:      result.PolicyID,
		OverallStatus: string(result.OverallStatus),
		Details:       make(map[string]detailJSON, len(result.Details)),
		EvaluatedAt:   result.EvaluatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	for key, d := range result.Details {
		out.Details[key] = detailJSON{
			Status:            string(d.Status),
			ConfidenceScore:   d.ConfidenceScore,
			SupportingPassage: d.SupportingPassage,
			SourceURI:         d.SourceURI,
			AmbiguityFactors:  d.AmbiguityFactors,
			ActualValue:       d.ActualValue,
			RequiredValue:     d.RequiredValue,
			Operator:          string(d.Operator),
			Label:             d.Label,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printResultReport(cmd *cobra.Command, result *domain.ComplianceResult, fromCache bool) {
	cmd.Println(headerStyle.Render(fmt.Sprintf("Compliance Report: %s vs %s", result.ModelID, result.PolicyID)))

	when := result.EvaluatedAt.Format("2006-01-02 15:04:05")
	if fromCache {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("Cached result from %s (use --no-cache to re-evaluate)", when)))
	} else {
		cmd.Println(mutedStyle.Render("Evaluated at " + when))
	}
	cmd.Println()

	keys := make([]string, 0, len(result.Details))
	for key := range result.Details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		detail := result.Details[key]
		cmd.Printf("  %s  %s", renderStatus(detail.Status), key)
		if detail.Label != "" {
			cmd.Printf(" (%s)", detail.Label)
		}
		cmd.Println()

		switch detail.Status {
		case domain.EvaluationPass, domain.EvaluationFail:
			cmd.Printf("         documented %g, required %s %g (confidence %.2f)\n",
				detail.ActualValue, detail.Operator.Symbol(), detail.RequiredValue, detail.ConfidenceScore)
		case domain.EvaluationNA:
			cmd.Printf("         %s\n", mutedStyle.Render("metric not documented"))
		}

		for _, factor := range detail.AmbiguityFactors {
			cmd.Printf("         %s\n", mutedStyle.Render("! "+factor))
		}
	}

	cmd.Println()
	cmd.Printf("Overall: %s\n", renderOverall(result.OverallStatus))
}

func renderStatus(status domain.EvaluationStatus) string {
	switch status {
	case domain.EvaluationPass:
		return passStyle.Render("PASS")
	case domain.EvaluationFail:
		return failStyle.Render("FAIL")
	default:
		return mutedStyle.Render(" N/A")
	}
}

func renderOverall(status domain.OverallStatus) string {
	switch status {
	case domain.OverallPass:
		return passStyle.Render(string(status))
	case domain.OverallWarnMajor:
		return warnStyle.Render(string(status))
	default:
		return failStyle.Render(string(status))
	}
}
