package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

var modelCmd = &cobra.Command{
	Use:     "models",
	Aliases: []string{"model"},
	Short:   "Manage model records",
	Long:    `Import and inspect AI model records and their documented metrics.`,
}

var modelImportCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Import a model from a JSON file",
	Long: `Imports a model record with its metric collection from a JSON file.

The file holds a single model object:

  {
    "id": "atlas-7b",
    "name": "Atlas 7B",
    "provider": "Veridian Labs",
    "metrics": {
      "safety":      [{"key": "ToxicityRate", "value": 0.03, "source_context": "...", "source_uri": "..."}],
      "performance": [{"key": "MMLUScore", "value": 71.2}],
      "governance":  []
    }
  }

Importing an existing model ID replaces the stored record.`,
	Args: cobra.ExactArgs(1),
	RunE: runModelImport,
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported models",
	Args:  cobra.NoArgs,
	RunE:  runModelList,
}

var modelGetCmd = &cobra.Command{
	Use:     "show [model-id]",
	Aliases: []string{"get"},
	Short:   "Show a model and its metrics",
	Args:    cobra.ExactArgs(1),
	RunE:    runModelGet,
}

func init() {
	modelCmd.AddCommand(modelImportCmd)
	modelCmd.AddCommand(modelListCmd)
	modelCmd.AddCommand(modelGetCmd)
	rootCmd.AddCommand(modelCmd)
}

// modelFile is the JSON import format for a model record.
type modelFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Metrics  struct {
		Safety      []metricFile `json:"safety"`
		Performance []metricFile `json:"performance"`
		Governance  []metricFile `json:"governance"`
	} `json:"metrics"`
}

type metricFile struct {
	Key           string `json:"key"`
	Value         any    `json:"value"`
	SourceContext string `json:"source_context,omitempty"`
	SourceURI     string `json:"source_uri,omitempty"`
}

func runModelImport(cmd *cobra.Command, args []string) error {
	if modelService == nil {
		return errors.New("model service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	model := &domain.Model{
		ID:       mf.ID,
		Name:     mf.Name,
		Provider: mf.Provider,
		Metrics: domain.ModelMetrics{
			Safety:      toMetrics(mf.Metrics.Safety, domain.MetricCategorySafety),
			Performance: toMetrics(mf.Metrics.Performance, domain.MetricCategoryPerformance),
			Governance:  toMetrics(mf.Metrics.Governance, domain.MetricCategoryGovernance),
		},
	}

	if err := modelService.Import(cmd.Context(), model); err != nil {
		return fmt.Errorf("importing model: %w", err)
	}

	cmd.Printf("Model %s imported (%d metrics).\n", model.ID, model.Metrics.Count())
	return nil
}

func toMetrics(files []metricFile, category domain.MetricCategory) []domain.Metric {
	metrics := make([]domain.Metric, 0, len(files))
	for _, f := range files {
		metrics = append(metrics, domain.Metric{
			Key:           f.Key,
			Value:         f.Value,
			Category:      category,
			SourceContext: f.SourceContext,
			SourceURI:     f.SourceURI,
		})
	}
	return metrics
}

func runModelList(cmd *cobra.Command, _ []string) error {
	if modelService == nil {
		return errors.New("model service not configured")
	}

	models, err := modelService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(models) == 0 {
		cmd.Println("No models imported.")
		return nil
	}

	cmd.Println("Models:")
	cmd.Println()
	for i := range models {
		cmd.Printf("  %s\n", models[i].ID)
		cmd.Printf("    Name:     %s\n", models[i].Name)
		cmd.Printf("    Provider: %s\n", models[i].Provider)
		cmd.Printf("    Metrics:  %d\n", models[i].Metrics.Count())
		cmd.Println()
	}

	cmd.Printf("Total: %d models\n", len(models))
	return nil
}

func runModelGet(cmd *cobra.Command, args []string) error {
	if modelService == nil {
		return errors.New("model service not configured")
	}

	model, err := modelService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get model: %w", err)
	}

	cmd.Printf("Model: %s\n\n", model.ID)
	cmd.Printf("  Name:     %s\n", model.Name)
	cmd.Printf("  Provider: %s\n", model.Provider)
	cmd.Printf("  Imported: %s\n", model.CreatedAt.Format("2006-01-02 15:04:05"))

	printMetricGroup(cmd, "Safety", model.Metrics.Safety)
	printMetricGroup(cmd, "Performance", model.Metrics.Performance)
	printMetricGroup(cmd, "Governance", model.Metrics.Governance)

	return nil
}

func printMetricGroup(cmd *cobra.Command, label string, metrics []domain.Metric) {
	if len(metrics) == 0 {
		return
	}

	cmd.Printf("\n  %s:\n", label)
	for i := range metrics {
		cmd.Printf("    %s = %v", metrics[i].Key, metrics[i].Value)
		if metrics[i].SourceURI != "" {
			cmd.Printf("  (%s)", metrics[i].SourceURI)
		}
		cmd.Println()
	}
}
