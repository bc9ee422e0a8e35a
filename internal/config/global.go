package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/pf/config.yml.
type GlobalConfig struct {
	Root           string   `yaml:"root,omitempty"`
	Keywords       []string `yaml:"keywords,omitempty"`
	HighlightOpen  string   `yaml:"highlight_open,omitempty"`
	HighlightClose string   `yaml:"highlight_close,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "pf"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Default keyword highlight markers for terminal output.
const (
	DefaultHighlightOpen  = "**"
	DefaultHighlightClose = "**"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pf/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.Root != "" {
		cfg.Root = ExpandPath(cfg.Root)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetRoot returns the configured fallback repository root.
func GetRoot() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.Root
}

// GetKeywords returns the seed keyword list.
func GetKeywords() []string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return nil
	}
	return cfg.Keywords
}

// HighlightMarkers returns the open/close markers wrapped around keyword
// hits in human output.
func HighlightMarkers() (string, string) {
	open, close := DefaultHighlightOpen, DefaultHighlightClose
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return open, close
	}
	if cfg.HighlightOpen != "" {
		open = cfg.HighlightOpen
	}
	if cfg.HighlightClose != "" {
		close = cfg.HighlightClose
	}
	return open, close
}

// ErrRootNotConfigured is returned when root is not set in config.
var ErrRootNotConfigured = errors.New("root not configured")

// ErrRootNotExist is returned when the configured root is not a repository.
var ErrRootNotExist = errors.New("root is not a paperfeed repository")

// ValidateRoot returns the root from global config after validation.
func ValidateRoot() (string, error) {
	path := GetRoot()
	if path == "" {
		return "", ErrRootNotConfigured
	}
	if !IsRepository(path) {
		return "", fmt.Errorf("%w: %s", ErrRootNotExist, path)
	}
	return path, nil
}

// HelpfulConfigMessage returns a helpful message when no repository is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No paperfeed repository found.

Run "pf init" in a directory, set %s, or create %s:
  mkdir -p %s
  echo 'root: /path/to/your/feed' > %s`,
		RootEnvVar,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
