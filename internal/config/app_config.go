package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

const (
	// cacheSubdir is the directory under the cache root that holds the token cache and logs.
	cacheSubdir = "waybar-google-tasks"

	defaultTaskList = "My Tasks"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// CacheHome is the XDG cache root. Defaults to ~/.cache.
	CacheHome string `envconfig:"XDG_CACHE_HOME"`

	// CacheDir overrides the full cache directory. Defaults to <CacheHome>/waybar-google-tasks.
	CacheDir string `envconfig:"DESKHOOKS_CACHE_DIR"`

	// CredentialsFile is the Google OAuth client secrets file.
	// Defaults to credentials.json next to the executable.
	CredentialsFile string `envconfig:"DESKHOOKS_CREDENTIALS_FILE"`

	// TaskList is the title of the Google Tasks list to display.
	TaskList string `envconfig:"DESKHOOKS_TASK_LIST" default:"My Tasks"`

	// MaxTaskLists caps the number of task lists requested per page.
	MaxTaskLists int64 `envconfig:"DESKHOOKS_MAX_TASK_LISTS" default:"10"`

	// Fallback makes the tasks widget print a degraded tooltip instead of failing.
	Fallback bool `envconfig:"DESKHOOKS_TASKS_FALLBACK" default:"false"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads AppConfig from environment variables using envconfig and resolves
// the cache directory and credentials path defaults.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dir, err := resolveCacheDir(c.CacheHome, c.CacheDir)
	if err != nil {
		return nil, err
	}
	c.CacheDir = dir

	if c.TaskList == "" {
		c.TaskList = defaultTaskList
	}

	if c.CredentialsFile == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolving executable path: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		c.CredentialsFile = filepath.Join(filepath.Dir(exe), "credentials.json")
	}

	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	return parseLevel(c.LogLevel)
}

// resolveCacheDir returns override when set, else <cacheHome or ~/.cache>/waybar-google-tasks.
func resolveCacheDir(cacheHome, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, cacheSubdir), nil
}

func parseLevel(level string) slog.Level {
	switch level {
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

// LogDir returns the path to the log directory.
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.CacheDir, "logs")
}

// TokenFile returns the path to the cached OAuth token.
func (c *AppConfig) TokenFile() string {
	return filepath.Join(c.CacheDir, "token.json")
}
