package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chunksSearchLimit int

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Inspect and search stored chunks",
}

var chunksStatsCmd = &cobra.Command{
	Use:   "stats [doc-id]",
	Short: "Validate a document's chunk set",
	Long: `Computes size statistics for the document's stored chunks and flags
problems (undersized or oversized chunks, inconsistent counts). The report
is diagnostic only; flagged chunks remain stored and searchable.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunksStats,
}

var chunksSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantic search over stored chunks",
	Long: `Embeds the query and returns the most similar stored chunks.
Requires an embedding provider (see "modelcheck settings embedding").`,
	Args: cobra.ExactArgs(1),
	RunE: runChunksSearch,
}

func init() {
	chunksSearchCmd.Flags().IntVarP(&chunksSearchLimit, "limit", "n", 10, "maximum number of results")

	chunksCmd.AddCommand(chunksStatsCmd)
	chunksCmd.AddCommand(chunksSearchCmd)
	rootCmd.AddCommand(chunksCmd)
}

func runChunksStats(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if chunkProcessor == nil {
		return errors.New("chunker not configured")
	}

	chunks, err := documentService.GetChunks(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}

	report, err := chunkProcessor.ValidateChunks(chunks)
	if err != nil {
		return fmt.Errorf("failed to validate chunks: %w", err)
	}

	cmd.Printf("Chunk stats for %s:\n\n", args[0])
	cmd.Printf("  Chunks:      %d\n", report.TotalChunks)
	cmd.Printf("  Total chars: %d\n", report.TotalChars)
	cmd.Printf("  Avg chars:   %.1f\n", report.AvgChars)
	cmd.Printf("  Min chars:   %d\n", report.MinChars)
	cmd.Printf("  Max chars:   %d\n", report.MaxChars)

	if report.OK() {
		cmd.Println("\nNo issues found.")
		return nil
	}

	cmd.Printf("\nIssues (%d):\n", len(report.Issues))
	for _, issue := range report.Issues {
		cmd.Printf("  - %s\n", issue)
	}
	return nil
}

func runChunksSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	hits, err := searchService.Search(cmd.Context(), args[0], chunksSearchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		cmd.Println("No matching chunks.")
		return nil
	}

	for i, hit := range hits {
		title := hit.Chunk.Metadata.SectionTitle
		if title == "" {
			title = hit.Chunk.DocumentID
		}
		cmd.Printf("[%d] %s (%.3f)\n", i+1, title, hit.Score)
		cmd.Printf("    %s\n\n", excerpt(hit.Chunk.Content, 200))
	}
	return nil
}

// excerpt truncates content to a single display line.
func excerpt(content string, max int) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
