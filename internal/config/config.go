// Package config loads the pdfnav YAML configuration, layered over defaults.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Viewer ViewerConfig `yaml:"viewer"`
}

type ServerConfig struct {
	// URL is the push channel endpoint; the HTTP base is derived from it.
	URL string `yaml:"url"`
}

type ViewerConfig struct {
	// PollInterval is the fixed reconciliation cadence. It is deliberately
	// not backed off on failure: the poll is the eventual-consistency
	// backstop for push events the channel dropped.
	PollInterval   time.Duration `yaml:"poll_interval"`
	DefaultZoom    int           `yaml:"default_zoom"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "ws://127.0.0.1:5000/ws",
		},
		Viewer: ViewerConfig{
			PollInterval:   800 * time.Millisecond,
			DefaultZoom:    100,
			MaxUploadBytes: 16 << 20,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
