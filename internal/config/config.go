// Package config provides configuration loading and structs for the Fluent server.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvDataPath overrides the corpus CSV path when set.
const EnvDataPath = "FLUENT_DATA"

// Variant tags a model configuration with its engine implementation.
type Variant string

const (
	// VariantFingerprint uses the external semantic-fingerprint service.
	VariantFingerprint Variant = "fingerprint"
	// VariantWindows uses local sliding-window TF-IDF similarity.
	VariantWindows Variant = "windows"
	// VariantKeywords uses a memory-only Bleve keyword index.
	VariantKeywords Variant = "keywords"
)

// Config holds all configuration for the application.
type Config struct {
	Debug        bool          `yaml:"debug"`
	Server       ServerConfig  `yaml:"server"`
	Corpus       CorpusConfig  `yaml:"corpus"`
	DefaultModel string        `yaml:"default_model"`
	Models       []ModelConfig `yaml:"models"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig holds the sample-data source settings.
type CorpusConfig struct {
	DataPath string `yaml:"data_path"`
}

// ModelConfig configures one named model. Variant selects the engine
// implementation; exactly the matching options struct is consumed.
type ModelConfig struct {
	Name        string             `yaml:"name"`
	Variant     Variant            `yaml:"variant"`
	Fingerprint *FingerprintConfig `yaml:"fingerprint,omitempty"`
	Windows     *WindowsConfig     `yaml:"windows,omitempty"`
}

// FingerprintConfig holds options for the fingerprint variant. Credentials
// are read from the named environment variables at startup; their absence
// is a fatal startup error, never a per-request one.
type FingerprintConfig struct {
	Mode        string `yaml:"mode"` // "word" or "document"
	Endpoint    string `yaml:"endpoint"`
	RetinaEnv   string `yaml:"retina_env"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// WindowsConfig holds options for the sliding-window variant.
type WindowsConfig struct {
	WindowSize    int `yaml:"window_size"`
	WindowOverlap int `yaml:"window_overlap"`
}

// Load reads and parses the config file at path and applies defaults.
// A missing file yields the default configuration; any other read or parse
// failure is an error. The FLUENT_DATA environment variable, when set,
// overrides the corpus data path.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if dataPath := os.Getenv(EnvDataPath); dataPath != "" {
		cfg.Corpus.DataPath = dataPath
	}
	return &cfg, nil
}
