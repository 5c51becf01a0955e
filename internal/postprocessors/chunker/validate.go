package chunker

import (
	"fmt"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// oversizeFactor flags chunks more than 1.5x the configured maximum.
const oversizeFactor = 1.5

// ValidationReport summarises size statistics and issues for a finished
// chunk set. It is a diagnostic: it never mutates or rejects chunks.
type ValidationReport struct {
	// TotalChunks is the number of chunks inspected.
	TotalChunks int

	// TotalChars is the combined character count.
	TotalChars int

	// AvgChars is the mean chunk size in characters.
	AvgChars float64

	// MinChars is the smallest chunk size.
	MinChars int

	// MaxChars is the largest chunk size.
	MaxChars int

	// Issues lists human-readable problems found, one per flagged chunk.
	Issues []string
}

// OK returns true when no issues were flagged.
func (r *ValidationReport) OK() bool {
	return len(r.Issues) == 0
}

// ValidateChunks computes size statistics for a finished chunk set and
// flags chunks missing required fields, below the minimum size, or more
// than 1.5x the maximum.
//
// An empty chunk set is a caller contract violation: averages are
// undefined, so this fails fast rather than reporting.
func (p *Processor) ValidateChunks(chunks []domain.Chunk) (*ValidationReport, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: cannot validate empty chunk set", domain.ErrInvalidInput)
	}

	report := &ValidationReport{
		TotalChunks: len(chunks),
		MinChars:    len(chunks[0].Content),
	}

	for i := range chunks {
		chunk := &chunks[i]
		size := len(chunk.Content)

		report.TotalChars += size
		if size < report.MinChars {
			report.MinChars = size
		}
		if size > report.MaxChars {
			report.MaxChars = size
		}

		if chunk.ID == "" {
			report.Issues = append(report.Issues, fmt.Sprintf("chunk %d: missing ID", i))
		}
		if chunk.Content == "" {
			report.Issues = append(report.Issues, fmt.Sprintf("chunk %s: empty content", chunk.ID))
		}
		if chunk.Metadata.TotalChunks != len(chunks) {
			report.Issues = append(report.Issues,
				fmt.Sprintf("chunk %s: totalChunks %d != set size %d", chunk.ID, chunk.Metadata.TotalChunks, len(chunks)))
		}
		if size < p.minChunkSize {
			report.Issues = append(report.Issues,
				fmt.Sprintf("chunk %s: %d chars below minimum %d", chunk.ID, size, p.minChunkSize))
		}
		if float64(size) > float64(p.maxChunkSize)*oversizeFactor {
			report.Issues = append(report.Issues,
				fmt.Sprintf("chunk %s: %d chars exceeds 1.5x maximum %d", chunk.ID, size, p.maxChunkSize))
		}
	}

	report.AvgChars = float64(report.TotalChars) / float64(len(chunks))

	return report, nil
}
