package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mythoslabs/mythos/internal/deeplink"
	"github.com/mythoslabs/mythos/internal/logging"
)

type Config struct {
	App struct {
		Name  string `yaml:"name"`
		Title string `yaml:"title"`
		// URL loads the frontend from a dev server instead of the embedded assets.
		URL    string `yaml:"url"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"app"`
	DeepLink struct {
		Scheme string `yaml:"scheme"`
		Policy string `yaml:"policy"`
	} `yaml:"deep_link"`
	// Bus tunes the in-process event bus used by headless runs.
	Bus struct {
		BufferSize  int           `yaml:"buffer_size"`
		EmitTimeout time.Duration `yaml:"emit_timeout"`
	} `yaml:"bus"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.App.Name = "Mythos"
	c.App.Title = "Mythos"
	c.App.Width = 1280
	c.App.Height = 860
	c.DeepLink.Scheme = "mythos"
	c.DeepLink.Policy = "lenient"
	c.Bus.BufferSize = 512
	c.Bus.EmitTimeout = 5 * time.Second
	c.Log.Level = "info"
	return c
}

// LoadFromBytes loads configuration from YAML bytes with environment variable
// expansion, on top of Default.
func LoadFromBytes(data []byte) (Config, error) {
	c := Default()
	if err := c.merge(data); err != nil {
		return c, err
	}
	return c, nil
}

// MergeFile overlays the YAML file at path. A missing file is not an error
// when optional is true.
func (c *Config) MergeFile(path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := c.merge(data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) merge(data []byte) error {
	expanded := os.ExpandEnv(string(data))
	return yaml.Unmarshal([]byte(expanded), c)
}

// Validate checks values that would otherwise fail late, inside the GUI loop.
func (c Config) Validate() error {
	if c.App.Name == "" {
		return errors.New("app.name is required")
	}
	if c.App.Width <= 0 || c.App.Height <= 0 {
		return fmt.Errorf("app window size %dx%d is invalid", c.App.Width, c.App.Height)
	}
	if err := deeplink.ValidateScheme(c.DeepLink.Scheme); err != nil {
		return fmt.Errorf("deep_link.scheme: %w", err)
	}
	if _, err := deeplink.ParsePolicy(c.DeepLink.Policy); err != nil {
		return fmt.Errorf("deep_link.policy: %w", err)
	}
	if c.Bus.BufferSize <= 0 || c.Bus.EmitTimeout <= 0 {
		return fmt.Errorf("bus buffer_size and emit_timeout must be positive")
	}
	return nil
}

// DeepLinkPolicy returns the parsed failure policy. Call Validate first.
func (c Config) DeepLinkPolicy() deeplink.Policy {
	p, _ := deeplink.ParsePolicy(c.DeepLink.Policy)
	return p
}

// ApplyLogging sets the global log level from Log.Level.
func (c Config) ApplyLogging() error {
	if c.Log.Level == "" {
		return nil
	}
	return logging.SetLevel(c.Log.Level)
}
