// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Editor transports.
const (
	TransportStdio = "stdio"
	TransportLSP   = "lsp"
	TransportDBus  = "dbus"
)

// Default configuration values.
const (
	DefaultLogLevel  = "warn"
	DefaultTransport = TransportStdio
)

// Config represents the pipecue configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Host   HostConfig   `toml:"host"`
	Notify NotifyConfig `toml:"notify"`
	Assets AssetsConfig `toml:"assets"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// HostConfig selects how the editor talks to pipecue.
type HostConfig struct {
	Transport string `toml:"transport"` // stdio, lsp, dbus
}

// NotifyConfig holds user-visible notification options.
type NotifyConfig struct {
	Desktop bool `toml:"desktop"` // Also send freedesktop notifications
}

// AssetsConfig overrides the install location of the bundled sounds.
type AssetsConfig struct {
	Dir string `toml:"dir"` // Empty = next to the binary
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Host: HostConfig{
			Transport: DefaultTransport,
		},
		Notify: NotifyConfig{
			Desktop: true,
		},
		Assets: AssetsConfig{
			Dir: "", // Auto-detect
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pipecue", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values that have a closed set of choices.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch c.Host.Transport {
	case TransportStdio, TransportLSP, TransportDBus:
	default:
		return fmt.Errorf("unknown host transport %q (want stdio, lsp or dbus)", c.Host.Transport)
	}

	return nil
}

// ParseLevel converts a config log level to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", level)
	}
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
