package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// NotifyConfig is the configuration of the notification hook. It holds only
// string fields so that loading it cannot fail on a malformed tasks setting,
// and it resolves the log directory lazily.
type NotifyConfig struct {
	// RulesFile is an optional YAML file with notification rewrite rules.
	RulesFile string `envconfig:"DESKHOOKS_NOTIFY_RULES"`

	CacheHome string `envconfig:"XDG_CACHE_HOME"`
	CacheDir  string `envconfig:"DESKHOOKS_CACHE_DIR"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadNotify reads NotifyConfig from environment variables.
func LoadNotify() (*NotifyConfig, error) {
	var c NotifyConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading notify config: %w", err)
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
func (c *NotifyConfig) SlogLevel() slog.Level {
	return parseLevel(c.LogLevel)
}

// LogDir resolves the shared log directory under the cache directory.
func (c *NotifyConfig) LogDir() (string, error) {
	dir, err := resolveCacheDir(c.CacheHome, c.CacheDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
