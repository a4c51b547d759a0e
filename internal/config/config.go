package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the iconclip configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	UI        UIConfig        `yaml:"ui"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

// CatalogConfig holds catalog API settings.
type CatalogConfig struct {
	BaseURL string `yaml:"base_url"` // Proxy base; absolute, or a path resolved against origin
	Origin  string `yaml:"origin"`   // Origin used when base_url is a bare path
	Family  string `yaml:"family"`   // Icon family slug to search in
	PerPage int    `yaml:"per_page"` // Search page size
}

// UIConfig holds picker settings.
type UIConfig struct {
	DebounceMs int `yaml:"debounce_ms"` // Quiet period before a keystroke triggers a search
	Columns    int `yaml:"columns"`     // Tile grid columns (0 = derive from width)
}

// ClipboardConfig holds clipboard settings.
type ClipboardConfig struct {
	// Command overrides multi-format tool detection. Parsed shell-style;
	// the SVG markup is piped to its stdin. Empty means auto-detect.
	Command string `yaml:"command"`
}

// CacheConfig holds local SVG cache settings.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"` // Cache downloaded SVGs in the local store
	Path    string `yaml:"path"`    // Database path (empty = default under data dir)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (empty = default under data dir)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: "/api/icons",
			Origin:  "http://127.0.0.1:8787",
			Family:  "flat-color",
			PerPage: 100,
		},
		UI: UIConfig{
			DebounceMs: 500,
			Columns:    0,
		},
		Clipboard: ClipboardConfig{
			Command: "",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "",
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file. A missing file
// yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
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

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Catalog.Family == "" {
		return errors.New("catalog.family must not be empty")
	}
	if c.Catalog.PerPage < 1 {
		return errors.New("catalog.per_page must be at least 1")
	}
	if c.UI.DebounceMs < 0 {
		return errors.New("ui.debounce_ms must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Get retrieves a configuration value by dot-separated key, e.g.
// "catalog.family" or "ui.debounce_ms".
func (c *Config) Get(key string) (string, error) {
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return "", errors.New("key must be in format 'section.key'")
	}

	switch section {
	case "catalog":
		return c.getCatalogField(field)
	case "ui":
		return c.getUIField(field)
	case "clipboard":
		return c.getClipboardField(field)
	case "cache":
		return c.getCacheField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return errors.New("key must be in format 'section.key'")
	}

	switch section {
	case "catalog":
		return c.setCatalogField(field, value)
	case "ui":
		return c.setUIField(field, value)
	case "clipboard":
		return c.setClipboardField(field, value)
	case "cache":
		return c.setCacheField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func (c *Config) getCatalogField(field string) (string, error) {
	switch field {
	case "base_url":
		return c.Catalog.BaseURL, nil
	case "origin":
		return c.Catalog.Origin, nil
	case "family":
		return c.Catalog.Family, nil
	case "per_page":
		return strconv.Itoa(c.Catalog.PerPage), nil
	default:
		return "", fmt.Errorf("unknown field: catalog.%s", field)
	}
}

func (c *Config) setCatalogField(field, value string) error {
	switch field {
	case "base_url":
		c.Catalog.BaseURL = value
	case "origin":
		c.Catalog.Origin = value
	case "family":
		c.Catalog.Family = value
	case "per_page":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("catalog.per_page must be an integer: %w", err)
		}
		c.Catalog.PerPage = n
	default:
		return fmt.Errorf("unknown field: catalog.%s", field)
	}
	return nil
}

func (c *Config) getUIField(field string) (string, error) {
	switch field {
	case "debounce_ms":
		return strconv.Itoa(c.UI.DebounceMs), nil
	case "columns":
		return strconv.Itoa(c.UI.Columns), nil
	default:
		return "", fmt.Errorf("unknown field: ui.%s", field)
	}
}

func (c *Config) setUIField(field, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("ui.%s must be an integer: %w", field, err)
	}
	switch field {
	case "debounce_ms":
		c.UI.DebounceMs = n
	case "columns":
		c.UI.Columns = n
	default:
		return fmt.Errorf("unknown field: ui.%s", field)
	}
	return nil
}

func (c *Config) getClipboardField(field string) (string, error) {
	switch field {
	case "command":
		return c.Clipboard.Command, nil
	default:
		return "", fmt.Errorf("unknown field: clipboard.%s", field)
	}
}

func (c *Config) setClipboardField(field, value string) error {
	switch field {
	case "command":
		c.Clipboard.Command = value
	default:
		return fmt.Errorf("unknown field: clipboard.%s", field)
	}
	return nil
}

func (c *Config) getCacheField(field string) (string, error) {
	switch field {
	case "enabled":
		return strconv.FormatBool(c.Cache.Enabled), nil
	case "path":
		return c.Cache.Path, nil
	default:
		return "", fmt.Errorf("unknown field: cache.%s", field)
	}
}

func (c *Config) setCacheField(field, value string) error {
	switch field {
	case "enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		c.Cache.Enabled = b
	case "path":
		c.Cache.Path = value
	default:
		return fmt.Errorf("unknown field: cache.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}
