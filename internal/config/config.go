// Package config provides configuration management for karas.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/karas-cli/pkg/karas"
)

// Output formats for converted documents.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Config holds the karas configuration.
type Config struct {
	StartHeadingLevel int      `yaml:"start_heading_level,omitempty"`
	Format            string   `yaml:"format,omitempty"`
	DisabledPlugins   []string `yaml:"disabled_plugins,omitempty"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.StartHeadingLevel == 0 {
		c.StartHeadingLevel = karas.DefaultStartHeadingLevel
	}
	if c.Format == "" {
		c.Format = FormatHTML
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.StartHeadingLevel < 1 || c.StartHeadingLevel > 6 {
		return fmt.Errorf("start_heading_level must be between 1 and 6, got %d", c.StartHeadingLevel)
	}

	switch c.Format {
	case FormatHTML, FormatMarkdown:
	case "":
		return errors.New("format is required")
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatHTML, FormatMarkdown, c.Format)
	}

	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if level := os.Getenv("KARAS_HEADING_LEVEL"); level != "" {
		if n, err := strconv.Atoi(level); err == nil {
			c.StartHeadingLevel = n
		}
	}
	if format := os.Getenv("KARAS_FORMAT"); format != "" {
		c.Format = strings.ToLower(format)
	}
	if disabled := os.Getenv("KARAS_DISABLED_PLUGINS"); disabled != "" {
		c.DisabledPlugins = splitList(disabled)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "karas", "config.yml")
	}

	// Fall back to ~/.config/karas/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".karas", "config.yml")
	}

	return filepath.Join(home, ".config", "karas", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides it with environment
// variables and fills defaults. A missing file yields the defaults.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
