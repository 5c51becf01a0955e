package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

var (
	policyExtractID   string
	policyExtractName string
)

var policyCmd = &cobra.Command{
	Use:     "policy",
	Aliases: []string{"policies"},
	Short:   "Manage governance policies",
	Long:    `Import, extract, and inspect governance policies and their criteria.`,
}

var policyImportCmd = &cobra.Command{
	Use:   "import [file.toml]",
	Short: "Import a structured policy from a TOML file",
	Long: `Imports a policy whose criteria are declared in a TOML file:

  id = "eu-baseline"
  name = "EU Deployment Baseline"
  description = "Minimum bar for EU deployments."

  [[criteria]]
  metric_key = "MMLUScore"
  operator = "GTE"
  required_value = 85.0
  severity = 2
  label = "MMLU benchmark floor"

Operators are GTE, LTE, EQ. Severity is 1 (critical), 2 (major), or
3 (minor). A repeated metric_key keeps the last entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicyImport,
}

var policyExtractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract criteria from a prose policy document",
	Long: `Reads a prose policy document and derives quantitative criteria from it
using the configured LLM. The extracted criteria are validated before the
policy is stored; extraction that yields no usable criteria fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicyExtract,
}

var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored policies",
	Args:  cobra.NoArgs,
	RunE:  runPolicyList,
}

var policyGetCmd = &cobra.Command{
	Use:     "show [policy-id]",
	Aliases: []string{"get"},
	Short:   "Show a policy and its criteria",
	Args:    cobra.ExactArgs(1),
	RunE:    runPolicyGet,
}

func init() {
	policyExtractCmd.Flags().StringVar(&policyExtractID, "id", "", "policy ID (required)")
	policyExtractCmd.Flags().StringVar(&policyExtractName, "name", "", "policy name (defaults to the ID)")
	_ = policyExtractCmd.MarkFlagRequired("id")

	policyCmd.AddCommand(policyImportCmd)
	policyCmd.AddCommand(policyExtractCmd)
	policyCmd.AddCommand(policyListCmd)
	policyCmd.AddCommand(policyGetCmd)
	rootCmd.AddCommand(policyCmd)
}

// policyFile is the TOML import format for a structured policy.
type policyFile struct {
	ID          string          `toml:"id"`
	Name        string          `toml:"name"`
	Description string          `toml:"description"`
	Criteria    []criterionFile `toml:"criteria"`
}

type criterionFile struct {
	MetricKey     string  `toml:"metric_key"`
	Operator      string  `toml:"operator"`
	RequiredValue float64 `toml:"required_value"`
	Severity      int     `toml:"severity"`
	Label         string  `toml:"label"`
}

func runPolicyImport(cmd *cobra.Command, args []string) error {
	if policyService == nil {
		return errors.New("policy service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var pf policyFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	policy := &domain.Policy{
		ID:          pf.ID,
		Name:        pf.Name,
		Description: pf.Description,
		Criteria:    make(map[string]domain.Criterion, len(pf.Criteria)),
	}
	for _, c := range pf.Criteria {
		policy.Criteria[c.MetricKey] = domain.Criterion{
			MetricKey:     c.MetricKey,
			RequiredValue: c.RequiredValue,
			Operator:      domain.ComparisonOperator(c.Operator),
			Severity:      domain.Severity(c.Severity),
			Label:         c.Label,
		}
	}

	if err := policyService.Import(cmd.Context(), policy); err != nil {
		return fmt.Errorf("importing policy: %w", err)
	}

	cmd.Printf("Policy %s imported (%d criteria).\n", policy.ID, len(policy.Criteria))
	return nil
}

func runPolicyExtract(cmd *cobra.Command, args []string) error {
	if policyService == nil {
		return errors.New("policy service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	name := policyExtractName
	if name == "" {
		name = policyExtractID
	}

	policy, err := policyService.ExtractAndImport(cmd.Context(), policyExtractID, name, string(data))
	if err != nil {
		return fmt.Errorf("extracting policy: %w", err)
	}

	cmd.Printf("Policy %s extracted and imported (%d criteria):\n\n", policy.ID, len(policy.Criteria))
	printCriteria(cmd, policy.Criteria)
	return nil
}

func runPolicyList(cmd *cobra.Command, _ []string) error {
	if policyService == nil {
		return errors.New("policy service not configured")
	}

	policies, err := policyService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list policies: %w", err)
	}

	if len(policies) == 0 {
		cmd.Println("No policies stored.")
		return nil
	}

	cmd.Println("Policies:")
	cmd.Println()
	for i := range policies {
		cmd.Printf("  %s\n", policies[i].ID)
		cmd.Printf("    Name:     %s\n", policies[i].Name)
		cmd.Printf("    Criteria: %d\n", len(policies[i].Criteria))
		cmd.Println()
	}

	cmd.Printf("Total: %d policies\n", len(policies))
	return nil
}

func runPolicyGet(cmd *cobra.Command, args []string) error {
	if policyService == nil {
		return errors.New("policy service not configured")
	}

	policy, err := policyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get policy: %w", err)
	}

	cmd.Printf("Policy: %s\n\n", policy.ID)
	cmd.Printf("  Name: %s\n", policy.Name)
	if policy.Description != "" {
		cmd.Printf("  Description: %s\n", policy.Description)
	}
	cmd.Printf("  Created: %s\n\n", policy.CreatedAt.Format("2006-01-02 15:04:05"))

	printCriteria(cmd, policy.Criteria)
	return nil
}

// printCriteria lists criteria in metric-key order for stable output.
func printCriteria(cmd *cobra.Command, criteria map[string]domain.Criterion) {
	keys := make([]string, 0, len(criteria))
	for key := range criteria {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cmd.Println("  Criteria:")
	for _, key := range keys {
		c := criteria[key]
		cmd.Printf("    %s %s %g  [%s]", c.MetricKey, c.Operator.Symbol(), c.RequiredValue, c.Severity)
		if c.Label != "" {
			cmd.Printf("  %s", c.Label)
		}
		cmd.Println()
	}
}
