package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veridian-labs/modelcheck-cli/internal/connectors/filesystem"
	"github.com/veridian-labs/modelcheck-cli/internal/logger"
)

var (
	ingestSourceID string
	ingestWatch    bool

	ingestMaxChunkSize int
	ingestMinChunkSize int
	ingestOverlap      int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest model documentation",
	Long: `Chunks and stores model documentation (model cards, eval reports).

The path may be a single file or a directory; directories are walked and
every markdown, HTML, and text file is ingested. Re-ingesting a file
replaces its previous chunk set.

With --watch, the directory is monitored and files are re-ingested as
they change.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestSourceID, "source", "s", "", "source ID for a single file (defaults to a slug of the file name)")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "watch the directory and re-ingest on change")
	ingestCmd.Flags().IntVar(&ingestMaxChunkSize, "max-chunk-size", 0, "maximum chunk size in characters (overrides config)")
	ingestCmd.Flags().IntVar(&ingestMinChunkSize, "min-chunk-size", 0, "minimum chunk size in characters (overrides config)")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", 0, "overlap between chunks in characters (overrides config)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	ctx := cmd.Context()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		if ingestSourceID != "" {
			return errors.New("--source applies to single files only")
		}
		if err := ingestDir(ctx, cmd, path); err != nil {
			return err
		}
	} else {
		if ingestWatch {
			return errors.New("--watch requires a directory")
		}
		result, err := ingestService.IngestFile(ctx, path, ingestSourceID)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		printIngestResult(cmd, path, result.ChunkCount, result.Embedded)
	}

	if ingestWatch {
		return watchDir(ctx, cmd, path)
	}
	return nil
}

// ingestDir walks the directory and ingests every documentation file.
func ingestDir(ctx context.Context, cmd *cobra.Command, root string) error {
	count := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isHiddenName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHiddenName(d.Name()) || !isDocumentationFile(path) {
			return nil
		}

		result, err := ingestService.IngestFile(ctx, path, "")
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			return nil
		}
		printIngestResult(cmd, path, result.ChunkCount, result.Embedded)
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}

	cmd.Printf("Ingested %d documents.\n", count)
	return nil
}

// watchDir monitors the directory and re-ingests documentation files as
// they change. Removed files have their documents deleted. Blocks until
// the context is cancelled.
func watchDir(ctx context.Context, cmd *cobra.Command, root string) error {
	watcher := filesystem.NewWatcher(root)

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl-C to stop)...\n", root)

	for change := range changes {
		switch change.Type {
		case filesystem.ChangeUpdated:
			if !isDocumentationFile(change.Path) {
				continue
			}
			result, err := ingestService.IngestFile(ctx, change.Path, "")
			if err != nil {
				logger.Warn("re-ingest %s: %v", change.Path, err)
				continue
			}
			printIngestResult(cmd, change.Path, result.ChunkCount, result.Embedded)

		case filesystem.ChangeRemoved:
			if err := removeDocumentForPath(ctx, change.Path); err != nil {
				logger.Warn("remove document for %s: %v", change.Path, err)
			} else {
				cmd.Printf("  removed %s\n", change.Path)
			}
		}
	}

	return nil
}

// removeDocumentForPath deletes the document whose URI matches the path.
func removeDocumentForPath(ctx context.Context, path string) error {
	docs, err := documentService.List(ctx)
	if err != nil {
		return err
	}

	uri := "file://" + path
	for i := range docs {
		if docs[i].URI == uri {
			return documentService.Delete(ctx, docs[i].ID)
		}
	}
	return nil
}

func printIngestResult(cmd *cobra.Command, path string, chunkCount int, embedded bool) {
	suffix := ""
	if embedded {
		suffix = ", indexed"
	}
	cmd.Printf("  %s: %d chunks%s\n", path, chunkCount, suffix)
}

// isDocumentationFile reports whether the file extension is a format
// modelcheck ingests.
func isDocumentationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt", ".html", ".htm":
		return true
	default:
		return false
	}
}

// isHiddenName reports whether the base name is dot-prefixed.
func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
