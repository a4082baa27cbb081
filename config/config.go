// Package config loads orderbookd's runtime settings: built-in
// defaults, overridden by an optional YAML file, overridden in turn by
// environment variables and flags at the call site.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds orderbookd's boundary settings. None of these fields
// reach the core; they only shape the transports and logging sink.
type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	WSListenAddr string `yaml:"ws_listen_addr"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
}

// Default returns the built-in settings used when no file or
// environment override is present.
func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		WSListenAddr: ":8081",
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

// Load reads a YAML file at path and applies its fields over the
// built-in defaults. An empty path is not an error: callers pass it to
// skip file loading entirely. A file that cannot be read or parsed is
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides overrides fields from environment variables when
// present, following the corpus's getEnv fallback idiom.
func (c Config) ApplyEnvOverrides() Config {
	c.ListenAddr = getEnv("ORDERBOOKD_LISTEN_ADDR", c.ListenAddr)
	c.WSListenAddr = getEnv("ORDERBOOKD_WS_LISTEN_ADDR", c.WSListenAddr)
	c.LogLevel = getEnv("ORDERBOOKD_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("ORDERBOOKD_LOG_FORMAT", c.LogFormat)
	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
