package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("llm.provider", "chunker.max_chunk_size");
// implementations handle persistence and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value. Returns "" when the key is
	// missing or holds a different type.
	GetString(key string) string

	// GetInt retrieves an integer value. Returns 0 when the key is
	// missing or holds a different type.
	GetInt(key string) int

	// Set stores a value and persists it immediately.
	Set(key string, value any) error
}
