// Package config provides configuration management for duplexmd.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/duplexmd/duplexmd/pkg/duplex"
)

// Config holds the default render options applied by the duplexmd CLI.
// Command-line flags override these per invocation.
type Config struct {
	ClassPrefix     string `yaml:"class_prefix,omitempty"`
	InlineStyles    bool   `yaml:"inline_styles,omitempty"`
	Bidirectional   bool   `yaml:"bidirectional,omitempty"`
	LazyLinefeeds   bool   `yaml:"lazy_linefeeds,omitempty"`
	AllowUnsafeURLs bool   `yaml:"allow_unsafe_urls,omitempty"`
	Highlight       bool   `yaml:"highlight,omitempty"`
	HighlightStyle  string `yaml:"highlight_style,omitempty"`
}

// Options translates the stored defaults into engine options. The fence
// plugin is attached by the command layer so this package stays free of
// the highlighter dependency.
func (c *Config) Options() duplex.Options {
	return duplex.Options{
		ClassPrefix:     c.ClassPrefix,
		InlineStyles:    c.InlineStyles,
		Bidirectional:   c.Bidirectional,
		LazyLinefeeds:   c.LazyLinefeeds,
		AllowUnsafeURLs: c.AllowUnsafeURLs,
	}
}

// Validate checks that the stored values are usable.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.ClassPrefix, " \t\"'<>") {
		return errors.New("class_prefix must not contain whitespace or markup characters")
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Variables override existing values only when set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("DUPLEXMD_CLASS_PREFIX"); v != "" {
		c.ClassPrefix = v
	}
	if v := os.Getenv("DUPLEXMD_HIGHLIGHT_STYLE"); v != "" {
		c.HighlightStyle = v
	}
	if v, ok := envBool("DUPLEXMD_INLINE_STYLES"); ok {
		c.InlineStyles = v
	}
	if v, ok := envBool("DUPLEXMD_BIDIRECTIONAL"); ok {
		c.Bidirectional = v
	}
	if v, ok := envBool("DUPLEXMD_LAZY_LINEFEEDS"); ok {
		c.LazyLinefeeds = v
	}
	if v, ok := envBool("DUPLEXMD_ALLOW_UNSAFE_URLS"); ok {
		c.AllowUnsafeURLs = v
	}
	if v, ok := envBool("DUPLEXMD_HIGHLIGHT"); ok {
		c.Highlight = v
	}
}

func envBool(name string) (bool, bool) {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "duplexmd", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".duplexmd", "config.yml")
	}
	return filepath.Join(home, ".config", "duplexmd", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
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

// LoadWithEnv loads configuration from file and overrides with
// environment variables. A missing file starts from an empty config.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
	}
	cfg.LoadFromEnv()
	return cfg, nil
}
