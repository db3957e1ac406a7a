// Package config provides configuration management for orghtml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/orghtml/pkg/org"
)

// Config holds the orghtml configuration.
type Config struct {
	SkipTables          bool              `yaml:"skip_tables,omitempty"`
	SkipSyntaxHighlight bool              `yaml:"skip_syntax_highlight,omitempty"`
	ExportFootnotes     bool              `yaml:"export_footnotes,omitempty"`
	FootnotesTitle      string            `yaml:"footnotes_title,omitempty"`
	ExportHeadingNumber bool              `yaml:"export_heading_number,omitempty"`
	ExportTodo          bool              `yaml:"export_todo,omitempty"`
	UseSubSuperscripts  bool              `yaml:"use_sub_superscripts,omitempty"`
	LinkAbbrevs         map[string]string `yaml:"link_abbrevs,omitempty"`
	MarkupFile          string            `yaml:"markup_file,omitempty"`
	HighlightStyle      string            `yaml:"highlight_style,omitempty"`
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if c.FootnotesTitle != "" && strings.TrimSpace(c.FootnotesTitle) == "" {
		return errors.New("footnotes_title must not be blank")
	}
	for k := range c.LinkAbbrevs {
		if strings.TrimSpace(k) == "" {
			return errors.New("link_abbrevs keys must not be blank")
		}
	}
	if c.MarkupFile != "" {
		if info, err := os.Stat(c.MarkupFile); err == nil && info.IsDir() {
			return fmt.Errorf("markup_file %s is a directory", c.MarkupFile)
		}
	}
	return nil
}

// ToOptions converts the configuration into engine options.
func (c *Config) ToOptions() org.Options {
	opts := org.DefaultOptions()
	opts.SkipTables = c.SkipTables
	opts.SkipSyntaxHighlight = c.SkipSyntaxHighlight
	opts.ExportFootnotes = c.ExportFootnotes
	if c.FootnotesTitle != "" {
		opts.FootnotesTitle = c.FootnotesTitle
	}
	opts.ExportHeadingNumber = c.ExportHeadingNumber
	opts.ExportTodo = c.ExportTodo
	opts.UseSubSuperscripts = c.UseSubSuperscripts
	opts.LinkAbbrevs = c.LinkAbbrevs
	opts.MarkupFile = c.MarkupFile
	return opts
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	loadBool("ORGHTML_SKIP_TABLES", &c.SkipTables)
	loadBool("ORGHTML_SKIP_SYNTAX_HIGHLIGHT", &c.SkipSyntaxHighlight)
	loadBool("ORGHTML_EXPORT_FOOTNOTES", &c.ExportFootnotes)
	loadBool("ORGHTML_EXPORT_HEADING_NUMBER", &c.ExportHeadingNumber)
	loadBool("ORGHTML_EXPORT_TODO", &c.ExportTodo)
	loadBool("ORGHTML_USE_SUB_SUPERSCRIPTS", &c.UseSubSuperscripts)
	if title := os.Getenv("ORGHTML_FOOTNOTES_TITLE"); title != "" {
		c.FootnotesTitle = title
	}
	if file := os.Getenv("ORGHTML_MARKUP_FILE"); file != "" {
		c.MarkupFile = file
	}
	if style := os.Getenv("ORGHTML_HIGHLIGHT_STYLE"); style != "" {
		c.HighlightStyle = style
	}
}

// loadBool sets *dst from a boolean environment variable; unparseable values are ignored.
func loadBool(name string, dst *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}

// EnvVars lists the environment variables read by LoadFromEnv.
func EnvVars() []string {
	return []string{
		"ORGHTML_SKIP_TABLES", "ORGHTML_SKIP_SYNTAX_HIGHLIGHT", "ORGHTML_EXPORT_FOOTNOTES",
		"ORGHTML_EXPORT_HEADING_NUMBER", "ORGHTML_EXPORT_TODO", "ORGHTML_USE_SUB_SUPERSCRIPTS",
		"ORGHTML_FOOTNOTES_TITLE", "ORGHTML_MARKUP_FILE", "ORGHTML_HIGHLIGHT_STYLE",
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "orghtml", "config.yml")
	}

	// Fall back to ~/.config/orghtml/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".orghtml", "config.yml")
	}

	return filepath.Join(home, ".config", "orghtml", "config.yml")
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

	if err := os.WriteFile(path, data, 0644); err != nil {
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

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file yields an empty configuration; a malformed one is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
