// Package config loads the nodeview settings file.
//
// Config file locations (priority order):
//  1. $NODEVIEW_CONFIG
//  2. ./nodeview.yaml
//  3. $XDG_CONFIG_HOME/nodeview/config.yaml
//  4. ~/.config/nodeview/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/nodeview/pkg/layout"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the settings file.
type Config struct {
	Version int `yaml:"version"`

	Window WindowConfig `yaml:"window"`

	// Theme names the theme selected at startup.
	Theme string `yaml:"theme"`

	// ThemesFile is an optional TOML or YAML theme pack merged over the
	// built-in themes.
	ThemesFile string `yaml:"themes_file,omitempty"`

	// Script is an optional scene script loaded at startup.
	Script string `yaml:"script,omitempty"`

	Layout layout.Metrics `yaml:"layout"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title" validate:"required"`
	Width  int    `yaml:"width" validate:"gte=200"`
	Height int    `yaml:"height" validate:"gte=200"`
}

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "NODEVIEW_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "nodeview.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "nodeview"
)

var validate = validator.New()

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultConfig returns the settings used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Window: WindowConfig{
			Title:  "nodeview",
			Width:  1024,
			Height: 768,
		},
		Theme:  "TEST",
		Layout: layout.DefaultMetrics(),
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width == 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.Layout.SocketSize == 0 {
		c.Layout.SocketSize = d.Layout.SocketSize
	}
	if c.Layout.CharWidth == 0 {
		c.Layout.CharWidth = d.Layout.CharWidth
	}
	if c.Layout.LineHeight == 0 {
		c.Layout.LineHeight = d.Layout.LineHeight
	}
	if c.Layout.MinWidth == 0 {
		c.Layout.MinWidth = d.Layout.MinWidth
	}
}

// resolvePaths makes file references relative to the config file.
func (c *Config) resolvePaths(dir string) {
	for _, p := range []*string{&c.ThemesFile, &c.Script} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// FindConfigPath searches for the config file in priority order.
// Returns empty string if no config file found
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
