package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the editor configuration file.
const ConfigFile = "logic.toml"

// Config represents a logic.toml editor configuration file.
type Config struct {
	Format      FormatConfig      `toml:"format"`
	Suggestions SuggestionsConfig `toml:"suggestions"`

	// Theme maps a style name (keyword, identifier, literal, operator,
	// placeholder, punctuation, selection) to a colour.
	Theme map[string]string `toml:"theme,omitempty"`
}

type FormatConfig struct {
	// Indent is the number of spaces per indentation level.
	Indent int `toml:"indent,omitempty"`
}

type SuggestionsConfig struct {
	// Fuzzy enables subsequence matching in addition to prefix and
	// substring matching. Defaults to true.
	Fuzzy *bool `toml:"fuzzy,omitempty"`

	// Limit caps the number of rows offered, not counting headers. Zero
	// means no limit.
	Limit int `toml:"limit,omitempty"`
}

// DefaultConfig is used when no logic.toml is found.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads a logic.toml file from the given path.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if config.Format.Indent < 0 {
		return nil, fmt.Errorf("parsing %s: negative indent %d", path, config.Format.Indent)
	}
	for style := range config.Theme {
		if !knownThemeKey(style) {
			return nil, fmt.Errorf("parsing %s: unknown theme style %q", path, style)
		}
	}
	return config, nil
}

// FindConfig searches for a logic.toml file starting from dir and walking up
// to parent directories, stopping at a .git boundary. Returns ("", nil, nil)
// if not found.
func FindConfig(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			config, err := LoadConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// FormatOptions converts the [format] section.
func (c *Config) FormatOptions() FormatOptions {
	opts := DefaultFormatOptions()
	if c != nil && c.Format.Indent > 0 {
		opts.Indent = strings.Repeat(" ", c.Format.Indent)
	}
	return opts
}

// SuggestOptions converts the [suggestions] section.
func (c *Config) SuggestOptions() SuggestOptions {
	opts := DefaultSuggestOptions()
	if c == nil {
		return opts
	}
	if c.Suggestions.Fuzzy != nil {
		opts.Fuzzy = *c.Suggestions.Fuzzy
	}
	opts.Limit = c.Suggestions.Limit
	return opts
}

// ThemeOrDefault builds a terminal theme from the [theme] section on top of the
// default theme.
func (c *Config) ThemeOrDefault() Theme {
	theme := DefaultTheme()
	if c == nil {
		return theme
	}
	for style, color := range c.Theme {
		theme = theme.WithColor(style, color)
	}
	return theme
}
