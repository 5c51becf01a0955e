package domain

// RawDocument represents unprocessed documentation as read from a source,
// before normalisation into a Document.
type RawDocument struct {
	// SourceID identifies the logical source the bytes came from.
	SourceID string

	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type (e.g. "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains source-specific key-value pairs.
	Metadata map[string]any
}
