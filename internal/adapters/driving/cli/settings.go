package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/ai"
	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers used for criteria extraction and
semantic search.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used to extract criteria from policy prose.`,
	RunE:  runSettingsLLM,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used for semantic chunk search.`,
	RunE:  runSettingsEmbedding,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	llm := loadLLMSettings()
	embedding := loadEmbeddingSettings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	cmd.Println("[LLM]")
	printProviderSettings(cmd, llm.Provider, llm.Model, llm.BaseURL, llm.APIKey, llm.IsConfigured())
	cmd.Println()

	cmd.Println("[Embedding]")
	printProviderSettings(cmd, embedding.Provider, embedding.Model, embedding.BaseURL, embedding.APIKey, embedding.IsConfigured())
	cmd.Println()

	if !llm.IsConfigured() {
		cmd.Println("Note: policy extraction from prose needs an LLM provider.")
		cmd.Println("Run 'modelcheck settings llm' to configure.")
	}
	if !embedding.IsConfigured() {
		cmd.Println("Note: semantic search needs an embedding provider.")
		cmd.Println("Run 'modelcheck settings embedding' to configure.")
	}

	return nil
}

func printProviderSettings(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if provider.IsLocal() && baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	settings := &domain.LLMSettings{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
	}

	// Validate connectivity before persisting.
	cmd.Print("Validating configuration... ")
	if err := ai.ValidateLLMConfig(settings); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	if err := saveLLMSettings(settings); err != nil {
		return fmt.Errorf("saving LLM settings: %w", err)
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultEmbeddingModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	settings := &domain.EmbeddingSettings{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
	}

	// Validate connectivity before persisting.
	cmd.Print("Validating configuration... ")
	if err := ai.ValidateEmbeddingConfig(settings); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	if err := saveEmbeddingSettings(settings); err != nil {
		return fmt.Errorf("saving embedding settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	cmd.Println("Re-run 'modelcheck ingest' on existing documents to index their chunks.")
	return nil
}

// loadLLMSettings reads the LLM provider settings from config.
func loadLLMSettings() *domain.LLMSettings {
	if configStore == nil {
		return &domain.LLMSettings{}
	}
	return &domain.LLMSettings{
		Provider: domain.AIProvider(configStore.GetString("llm.provider")),
		Model:    configStore.GetString("llm.model"),
		BaseURL:  configStore.GetString("llm.base_url"),
		APIKey:   configStore.GetString("llm.api_key"),
	}
}

// loadEmbeddingSettings reads the embedding provider settings from config.
func loadEmbeddingSettings() *domain.EmbeddingSettings {
	if configStore == nil {
		return &domain.EmbeddingSettings{}
	}
	return &domain.EmbeddingSettings{
		Provider: domain.AIProvider(configStore.GetString("embedding.provider")),
		Model:    configStore.GetString("embedding.model"),
		BaseURL:  configStore.GetString("embedding.base_url"),
		APIKey:   configStore.GetString("embedding.api_key"),
	}
}

func saveLLMSettings(settings *domain.LLMSettings) error {
	for key, value := range map[string]string{
		"llm.provider": settings.Provider.String(),
		"llm.model":    settings.Model,
		"llm.base_url": settings.BaseURL,
		"llm.api_key":  settings.APIKey,
	} {
		if err := configStore.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func saveEmbeddingSettings(settings *domain.EmbeddingSettings) error {
	for key, value := range map[string]string{
		"embedding.provider": settings.Provider.String(),
		"embedding.model":    settings.Model,
		"embedding.base_url": settings.BaseURL,
		"embedding.api_key":  settings.APIKey,
	} {
		if err := configStore.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
