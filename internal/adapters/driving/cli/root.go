// Package cli implements the modelcheck command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/ai"
	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/config/file"
	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/criteria"
	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/storage/sqlite"
	"github.com/veridian-labs/modelcheck-cli/internal/adapters/driven/vector/memory"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driving"
	"github.com/veridian-labs/modelcheck-cli/internal/core/services"
	"github.com/veridian-labs/modelcheck-cli/internal/logger"
	"github.com/veridian-labs/modelcheck-cli/internal/normalisers"
	"github.com/veridian-labs/modelcheck-cli/internal/postprocessors"
	"github.com/veridian-labs/modelcheck-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired by initServices before any subcommand runs.
var (
	store       *sqlite.Store
	configStore *file.ConfigStore

	ingestService     driving.IngestService
	documentService   driving.DocumentService
	modelService      driving.ModelService
	policyService     driving.PolicyService
	complianceService driving.ComplianceService
	searchService     driving.SearchService

	llmService       driven.LLMService
	embeddingService driven.EmbeddingService

	chunkProcessor *chunker.Processor
)

var rootCmd = &cobra.Command{
	Use:   "modelcheck",
	Short: "Audit AI model documentation against governance policies",
	Long: `modelcheck ingests model documentation (model cards, eval reports),
stores the documented metrics, and evaluates them against the quantitative
criteria of governance policies.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		// Cheap commands run without touching storage.
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}

		return initServices(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices opens storage and wires the core services. AI-backed
// collaborators (LLM, embeddings) are optional; commands that need them
// report the missing configuration at call time.
func initServices(ctx context.Context) error {
	var err error

	configStore, err = file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	store, err = sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}

	promptStore, err := file.NewPromptStore(configStore.GetString("prompts.dir"))
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	llmService = createLLMService()
	embeddingService = createEmbeddingService()

	docStore := store.DocumentStore()

	var vectorIndex driven.VectorIndex
	if embeddingService != nil {
		index := memory.NewIndex()
		if err := loadVectorIndex(ctx, docStore, index); err != nil {
			logger.Warn("rebuilding vector index: %v", err)
		}
		vectorIndex = index
	}

	chunkProcessor = chunker.New(chunkerOptions()...)
	pipeline := postprocessors.NewPipeline(chunkProcessor)
	registry := normalisers.NewDefaultRegistry()

	ingestService = services.NewIngestService(docStore, pipeline, registry, embeddingService, vectorIndex, chunkProcessor)
	documentService = services.NewDocumentService(docStore, vectorIndex)
	modelService = services.NewModelService(store.ModelStore())
	policyService = services.NewPolicyService(store.PolicyStore(), criteria.NewExtractor(llmService, promptStore))
	complianceService = services.NewComplianceService(store.PolicyStore(), store.ModelStore(), store.ComplianceCacheStore())
	searchService = services.NewSearchService(docStore, embeddingService, vectorIndex)

	return nil
}

// createLLMService builds the configured LLM adapter, or nil when the
// settings are incomplete.
func createLLMService() driven.LLMService {
	settings := loadLLMSettings()
	if !settings.IsConfigured() {
		return nil
	}

	svc, err := ai.CreateLLMService(settings)
	if err != nil {
		logger.Warn("LLM service unavailable: %v", err)
		return nil
	}
	return svc
}

// createEmbeddingService builds the configured embedding adapter, or nil
// when the settings are incomplete.
func createEmbeddingService() driven.EmbeddingService {
	settings := loadEmbeddingSettings()
	if !settings.IsConfigured() {
		return nil
	}

	svc, err := ai.CreateEmbeddingService(settings)
	if err != nil {
		logger.Warn("embedding service unavailable: %v", err)
		return nil
	}
	return svc
}

// loadVectorIndex rebuilds the in-memory vector index from the stored
// chunk embeddings. The index lives for the process only; embeddings
// persist in the metadata store.
func loadVectorIndex(ctx context.Context, docStore driven.DocumentStore, index driven.VectorIndex) error {
	docs, err := docStore.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	loaded := 0
	for i := range docs {
		chunks, err := docStore.GetChunks(ctx, docs[i].ID)
		if err != nil {
			return fmt.Errorf("loading chunks for %s: %w", docs[i].ID, err)
		}
		for j := range chunks {
			if len(chunks[j].Embedding) == 0 {
				continue
			}
			if err := index.Add(ctx, chunks[j].ID, chunks[j].Embedding); err != nil {
				return fmt.Errorf("indexing chunk %s: %w", chunks[j].ID, err)
			}
			loaded++
		}
	}

	logger.Debug("vector index rebuilt with %d chunk embeddings", loaded)
	return nil
}

// chunkerOptions reads chunker tuning from config, falling back to the
// chunker's own defaults for unset keys. Ingest flags, when set, take
// precedence over config.
func chunkerOptions() []chunker.Option {
	var opts []chunker.Option

	if size := configStore.GetInt("chunker.max_chunk_size"); size > 0 {
		opts = append(opts, chunker.WithMaxChunkSize(size))
	}
	if size := configStore.GetInt("chunker.min_chunk_size"); size > 0 {
		opts = append(opts, chunker.WithMinChunkSize(size))
	}
	if size := configStore.GetInt("chunker.overlap_size"); size > 0 {
		opts = append(opts, chunker.WithOverlapSize(size))
	}

	if ingestMaxChunkSize > 0 {
		opts = append(opts, chunker.WithMaxChunkSize(ingestMaxChunkSize))
	}
	if ingestMinChunkSize > 0 {
		opts = append(opts, chunker.WithMinChunkSize(ingestMinChunkSize))
	}
	if ingestOverlap > 0 {
		opts = append(opts, chunker.WithOverlapSize(ingestOverlap))
	}

	return opts
}
