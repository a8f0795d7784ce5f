// Package config loads application configuration: defaults, then an
// optional TOML file, then TRIPDECK_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Log    LogConfig
}

// ServerConfig holds trip directory service settings.
type ServerConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DataConfig holds local storage settings.
type DataConfig struct {
	Dir string
}

// LogConfig holds logging settings. The TUI owns the terminal, so logs go
// to a file.
type LogConfig struct {
	Path  string
	Level string
}

// PrefsPath returns the device preference database location.
func (c Config) PrefsPath() string {
	return filepath.Join(c.Data.Dir, "tripdeck.db")
}

// Load reads configuration from file and env. Env var overrides use prefix
// TRIPDECK_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("server.base_url", "http://localhost:3333")
	v.SetDefault("server.timeout", "10s")
	v.SetDefault("data.dir", filepath.Join(home, ".local", "share", "tripdeck"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "share", "tripdeck", "tripdeck.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TRIPDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "tripdeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TRIPDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	c.Server.BaseURL = strings.TrimRight(v.GetString("server.base_url"), "/")
	c.Server.Timeout = v.GetDuration("server.timeout")
	c.Data.Dir = v.GetString("data.dir")
	c.Log.Path = v.GetString("log.path")
	c.Log.Level = v.GetString("log.level")

	if c.Server.BaseURL == "" {
		return Config{}, fmt.Errorf("server.base_url must not be empty")
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 10 * time.Second
	}
	return c, nil
}

// ParseLevel maps the configured level name onto a slog level. Unknown
// names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
