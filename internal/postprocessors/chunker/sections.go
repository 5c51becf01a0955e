package chunker

import (
	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
)

// ChunkSections runs an independent chunking pass per section, then
// renumbers a document-global ordinal across the concatenated set and
// recomputes TotalChunks over the whole document.
//
// Section offsets outside the text are clamped; sections that clamp to
// nothing contribute no chunks.
func (p *Processor) ChunkSections(text string, sections []domain.Section, sourceID string) []domain.Chunk {
	if len(sections) == 0 {
		return p.ChunkText(text, sourceID)
	}

	var all []domain.Chunk

	for _, section := range sections {
		start, end := clampRange(section.Start, section.End, len(text))
		if start >= end {
			continue
		}

		// idOffset keeps chunk IDs unique across sections.
		chunks := p.chunkPass(text[start:end], sourceID, len(all))
		for i := range chunks {
			chunks[i].Metadata.SectionTitle = section.Title
			chunks[i].Metadata.SectionLevel = section.Level
			chunks[i].Metadata.GlobalPosition = len(all) + i
		}
		all = append(all, chunks...)
	}

	for i := range all {
		all[i].Metadata.TotalChunks = len(all)
	}

	return all
}

func clampRange(start, end, limit int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	return start, end
}
