// Package config loads the conch CLI configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBannerRefresh is used when the config file does not set one.
const DefaultBannerRefresh = 250 * time.Millisecond

// Config holds the settings read from conch.yaml.
type Config struct {
	Prompt        string        `yaml:"prompt"`
	LogLevel      string        `yaml:"log_level"`
	Color         bool          `yaml:"color"`
	BannerRefresh time.Duration `yaml:"banner_refresh"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Prompt:        "> ",
		LogLevel:      "info",
		Color:         true,
		BannerRefresh: DefaultBannerRefresh,
	}
}

// Load reads a YAML configuration file and merges it over the defaults.
// A missing file at the default path is not an error; the caller decides
// whether an explicitly requested path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.BannerRefresh <= 0 {
		cfg.BannerRefresh = DefaultBannerRefresh
	}
	return cfg, nil
}
