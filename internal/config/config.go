// Package config handles the global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/bib/config.yml.
type GlobalConfig struct {
	DefaultBib   string `yaml:"default_bib,omitempty"`   // bib file used when none is given
	PDFDir       string `yaml:"pdf_dir,omitempty"`       // where linked PDFs live
	IndexPath    string `yaml:"index_path,omitempty"`    // key/DOI index database
	XploreAPIKey string `yaml:"xplore_api_key,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "bib"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// IndexFile is the default index database name, stored next to
	// the config file.
	IndexFile = "index.db"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bib/config.yml.
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

// Load loads the global configuration file. Returns an empty config
// (not an error) if the file doesn't exist.
func Load() (*GlobalConfig, error) {
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

	cfg.DefaultBib = ExpandPath(cfg.DefaultBib)
	cfg.PDFDir = ExpandPath(cfg.PDFDir)
	cfg.IndexPath = ExpandPath(cfg.IndexPath)

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetCache clears the cached global config. Useful for testing.
func ResetCache() {
	globalConfigCache = nil
}

// GetXploreAPIKey returns the search API key from global config.
func GetXploreAPIKey() string {
	cfg, _ := Load()
	return cfg.XploreAPIKey
}

// GetDefaultBib returns the configured default bib file path.
func GetDefaultBib() string {
	cfg, _ := Load()
	return cfg.DefaultBib
}

// GetIndexPath returns the index database path, defaulting to
// index.db next to the config file.
func GetIndexPath() string {
	cfg, _ := Load()
	if cfg.IndexPath != "" {
		return cfg.IndexPath
	}
	path := GlobalConfigPath()
	if path == "" {
		return IndexFile
	}
	return filepath.Join(filepath.Dir(path), IndexFile)
}

// ExpandPath expands ~ to the user's home directory. Returns the
// original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
