package markdown

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/modelcheck-cli/internal/core/domain"
	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown model cards and eval reports.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific, higher than the plaintext fallback
}

// Normalise converts a markdown document to plain text and records the
// heading-delimited sections of the result. Sections let the chunker
// respect the document's own structure, so an "Evaluation Results"
// section of a model card stays within its own chunks.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(raw.Content)

	title := extractTitle(rawContent, raw.URI)
	content, sections := normaliseContent(rawContent)

	now := time.Now()
	doc := domain.Document{
		ID:        uuid.New().String(),
		SourceID:  raw.SourceID,
		URI:       raw.URI,
		Title:     title,
		Content:   content,
		Metadata:  copyMetadata(raw.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["format"] = "markdown"

	return &driven.NormaliseResult{
		Document: doc,
		Sections: sections,
	}, nil
}

// headingLine matches an ATX heading at the start of a line.
var headingLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// block is a heading plus the body text that follows it, up to the
// next heading. A document's preamble is a block with no heading.
type block struct {
	level int
	title string
	body  string
}

// normaliseContent strips markdown formatting and maps each heading block
// onto a Section over the stripped text. Offsets are byte positions into
// the returned content.
func normaliseContent(raw string) (string, []domain.Section) {
	blocks := splitBlocks(raw)

	var b strings.Builder
	var sections []domain.Section

	for _, blk := range blocks {
		body := stripMarkdown(blk.body)
		if blk.title == "" && body == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		start := b.Len()

		if blk.title != "" {
			b.WriteString(blk.title)
			if body != "" {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(body)

		if blk.title != "" {
			sections = append(sections, domain.Section{
				Title: blk.title,
				Level: blk.level,
				Start: start,
				End:   b.Len(),
			})
		}
	}

	return b.String(), sections
}

// splitBlocks cuts the raw markdown at heading lines, skipping headings
// inside fenced code blocks.
func splitBlocks(raw string) []block {
	lines := strings.Split(raw, "\n")

	var blocks []block
	current := block{}
	var body []string
	inFence := false

	flush := func() {
		current.body = strings.Join(body, "\n")
		blocks = append(blocks, current)
		body = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if m := headingLine.FindStringSubmatch(line); m != nil && !inFence {
			flush()
			current = block{level: len(m[1]), title: strings.TrimSpace(m[2])}
			continue
		}
		body = append(body, line)
	}
	flush()

	return blocks
}

// extractTitle takes the first H1 heading, falling back to the filename.
func extractTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	filename := filepath.Base(uri)
	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// Pre-compiled patterns for markdown stripping.
var (
	codeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	blockquote   = regexp.MustCompile(`(?m)^>\s*`)
	hr           = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes markdown formatting for plain text content.
// Inline code keeps its text and tables are kept as-is; metric names and
// values often live in backticks and table cells, and both must survive
// into the chunk text for evaluation evidence.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = blockquote.ReplaceAllString(content, "")
	content = hr.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = multiNewline.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
