package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/smstxn/internal/merchantindex"
)

// FileName is the default config file name.
const FileName = "smstxn.yaml"

// Environment overrides.
const (
	EnvMerchantIndex = "SMSTXN_MERCHANT_INDEX"
	EnvLogLevel      = "SMSTXN_LOG_LEVEL"
	EnvOffline       = "SMSTXN_OFFLINE"
)

// Config represents the top-level smstxn.yaml configuration.
type Config struct {
	MerchantIndex MerchantIndexConfig `yaml:"merchant_index"`
	Lexicon       LexiconConfig       `yaml:"lexicon"`
	Log           LogConfig           `yaml:"log"`
}

// MerchantIndexConfig locates the merchant tag index fetched at startup.
type MerchantIndexConfig struct {
	Source   string        `yaml:"source"` // http(s) URL or file path
	Timeout  time.Duration `yaml:"timeout"`
	Disabled bool          `yaml:"disabled"`
}

// LexiconConfig selects the rule tables.
type LexiconConfig struct {
	Path             string `yaml:"path"` // "" uses the built-in tables
	StopwordLanguage string `yaml:"stopword_language"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a smstxn.yaml file from disk. Fields absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		MerchantIndex: MerchantIndexConfig{
			Source:  merchantindex.DefaultSource,
			Timeout: 10 * time.Second,
		},
		Lexicon: LexiconConfig{
			StopwordLanguage: "english",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyEnv overlays environment overrides. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvMerchantIndex)); v != "" {
		c.MerchantIndex.Source = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if offline, err := strconv.ParseBool(strings.TrimSpace(getenv(EnvOffline))); err == nil && offline {
		c.MerchantIndex.Disabled = true
	}
}

// IndexSource returns the merchant index source, or "" when the index is disabled.
func (c *Config) IndexSource() string {
	if c.MerchantIndex.Disabled {
		return ""
	}
	return c.MerchantIndex.Source
}
