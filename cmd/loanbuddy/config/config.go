// Package config loads and saves LOAN-BUDDY user preferences and data-file
// locations from <data-dir>/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"loanbuddy/internal/logging"
)

// Config holds user preferences and the locations of the data files. Empty
// path fields resolve to defaults inside the data directory.
type Config struct {
	Theme        string         `json:"theme"` // "light" or "dark"
	CorpusFile   string         `json:"corpus_file"`
	CatalogDir   string         `json:"catalog_dir"`
	DocumentsDir string         `json:"documents_dir"`
	RecordsFile  string         `json:"records_file"`
	CounterFile  string         `json:"counter_file"`
	Logging      logging.Config `json:"logging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Theme: "light",
	}
}

// DataDir returns the directory where config and data files live.
func DataDir() (string, error) {
	// Prefer a project-local .loanbuddy directory if present or creatable
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".loanbuddy")
		if stat, err := os.Stat(localDir); (err == nil && stat.IsDir()) || os.IsNotExist(err) {
			return localDir, nil
		}
	}

	// Fallback to home-level config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".loanbuddy"), nil
}

// ConfigFile returns the full path to the config file
func ConfigFile(dataDir string) string {
	return filepath.Join(dataDir, "config.json")
}

// Load reads the configuration from disk and fills unset paths with
// defaults under the data directory. A missing config file yields defaults.
func Load(dataDir string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigFile(dataDir))
	if err != nil && !os.IsNotExist(err) {
		return cfg.resolve(dataDir), err
	}
	if err == nil {
		if jerr := json.Unmarshal(data, &cfg); jerr != nil {
			return DefaultConfig().resolve(dataDir), jerr
		}
	}

	return cfg.resolve(dataDir), nil
}

// Save writes the configuration to disk
func Save(dataDir string, cfg Config) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigFile(dataDir), data, 0644)
}

// resolve fills empty path fields with their defaults under dataDir.
func (c Config) resolve(dataDir string) Config {
	if c.CorpusFile == "" {
		c.CorpusFile = filepath.Join(dataDir, "corpus.txt")
	}
	if c.CatalogDir == "" {
		c.CatalogDir = filepath.Join(dataDir, "catalog")
	}
	if c.DocumentsDir == "" {
		c.DocumentsDir = filepath.Join(dataDir, "documents")
	}
	if c.RecordsFile == "" {
		c.RecordsFile = filepath.Join(dataDir, "applications.txt")
	}
	if c.CounterFile == "" {
		c.CounterFile = filepath.Join(dataDir, "counter.txt")
	}
	return c
}
