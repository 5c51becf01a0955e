// Package postprocessors turns normalised model documentation into
// retrieval-sized chunks. The only built-in stage is the chunker; the
// pipeline shape allows later stages (chunk enrichment, filtering) to
// slot in behind it.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
	"github.com/veridian-labs/modelcheck-cli/internal/logger"
)

var _ driven.PostProcessorPipeline = Pipeline(nil)

// Pipeline runs an ordered list of post-processors over a document.
// Each stage receives the chunks produced by the one before it; the
// first stage receives none and is expected to create them.
type Pipeline []driven.PostProcessor

// NewPipeline builds a pipeline from the given stages, in order.
func NewPipeline(stages ...driven.PostProcessor) Pipeline {
	return Pipeline(stages)
}

// Process feeds the document through every stage and returns the final
// chunk set. A stage error aborts the run.
func (p Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk
	for _, stage := range p {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		chunks, err = stage.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", stage.Name(), err)
		}
		logger.Debug("processor %s produced %d chunks for document %s", stage.Name(), len(chunks), doc.ID)
	}
	return chunks, nil
}
