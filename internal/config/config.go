// Package config handles repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/paperfeed/internal/query"
)

// Config represents repository configuration stored in .paperfeed/config.json.
type Config struct {
	Backend       string `json:"backend"`                  // State backend: file or sqlite
	DefaultWindow string `json:"default_window,omitempty"` // Day count or "all"
	DefaultSort   string `json:"default_sort,omitempty"`   // One of the query sort orders
}

const (
	PaperfeedDir  = ".paperfeed"
	ConfigFile    = "config.json"
	StateFile     = "state.json"
	StateDBFile   = "state.db"
	CacheDir      = "cache"
	IndexFile     = "index.db"
	RootEnvVar    = "PF_ROOT"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ValidBackends lists the supported state backends.
var ValidBackends = []string{BackendFile, BackendSQLite}

// Default returns the configuration written by "pf init".
func Default() *Config {
	return &Config{
		Backend:       BackendFile,
		DefaultWindow: query.WindowAll,
		DefaultSort:   string(query.DateDesc),
	}
}

// PaperfeedPath returns the path to the .paperfeed directory from a root path.
func PaperfeedPath(root string) string {
	return filepath.Join(root, PaperfeedDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, PaperfeedDir, ConfigFile)
}

// StatePath returns the state file for the configured backend.
func (c *Config) StatePath(root string) string {
	if c.Backend == BackendSQLite {
		return filepath.Join(root, PaperfeedDir, StateDBFile)
	}
	return filepath.Join(root, PaperfeedDir, StateFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, PaperfeedDir, CacheDir)
}

// IndexPath returns the path to the search index from a root path.
func IndexPath(root string) string {
	return filepath.Join(root, PaperfeedDir, CacheDir, IndexFile)
}

// IsRepository checks if the given path contains a paperfeed repository.
func IsRepository(root string) bool {
	info, err := os.Stat(PaperfeedPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a paperfeed repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a paperfeed repository (no %s directory found)", PaperfeedDir)
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
// Missing fields take their defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := ValidateBackend(c.Backend); err != nil {
		return err
	}
	if _, err := query.ParseWindow(c.DefaultWindow); err != nil {
		return fmt.Errorf("invalid default_window: %w", err)
	}
	if _, err := query.ParseOrder(c.DefaultSort); err != nil {
		return fmt.Errorf("invalid default_sort: %w", err)
	}
	return nil
}

// Set assigns a field by its JSON name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		if err := ValidateBackend(value); err != nil {
			return err
		}
		c.Backend = value
	case "default_window":
		if _, err := query.ParseWindow(value); err != nil {
			return err
		}
		c.DefaultWindow = value
	case "default_sort":
		if _, err := query.ParseOrder(value); err != nil {
			return err
		}
		c.DefaultSort = value
	default:
		return fmt.Errorf("unknown config key: %s (valid: backend, default_window, default_sort)", key)
	}
	return nil
}

// ValidateBackend checks that the backend value is valid.
func ValidateBackend(backend string) error {
	for _, valid := range ValidBackends {
		if backend == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid backend: %s (valid: %v)", backend, ValidBackends)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
