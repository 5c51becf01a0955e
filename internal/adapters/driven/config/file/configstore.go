package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/veridian-labs/modelcheck-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore persists configuration as TOML. In memory the store is a
// flat dot-notation map; on disk the dotted keys become TOML tables, so
// "llm.provider" is written as a [llm] section with a provider key.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	data map[string]any
}

// NewConfigStore opens (or creates) the config file under configDir.
// An empty configDir defaults to ~/.modelcheck.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".modelcheck")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, "config.toml"),
		data: make(map[string]any),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		// TOML integers decode as int64.
		return int(v)
	default:
		return 0
	}
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.path
}

// save writes the flat map back to disk as nested TOML tables.
// Caller must hold the lock.
func (s *ConfigStore) save() error {
	out, err := toml.Marshal(nest(s.data))
	if err != nil {
		return err
	}
	// API keys live here, so keep the file private.
	return os.WriteFile(s.path, out, 0600)
}

// load reads the config file. A missing file leaves the store empty.
func (s *ConfigStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var tree map[string]any
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = flatten(tree, "")
	s.mu.Unlock()
	return nil
}

// flatten converts nested TOML tables into dot-notation keys:
// {"llm": {"provider": "ollama"}} becomes {"llm.provider": "ollama"}.
func flatten(tree map[string]any, prefix string) map[string]any {
	flat := make(map[string]any, len(tree))
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			for k, v := range flatten(sub, full) {
				flat[k] = v
			}
			continue
		}
		flat[full] = value
	}
	return flat
}

// nest is the inverse of flatten: dot-notation keys become nested maps
// so the written TOML groups related keys into sections.
func nest(flat map[string]any) map[string]any {
	tree := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := tree
		for _, part := range parts[:len(parts)-1] {
			sub, ok := node[part].(map[string]any)
			if !ok {
				sub = make(map[string]any)
				node[part] = sub
			}
			node = sub
		}
		node[parts[len(parts)-1]] = value
	}
	return tree
}
