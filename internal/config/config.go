// Package config loads runtime settings from defaults, an optional YAML
// file and PBI_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "pbi"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PBI"
	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Config holds all runtime configuration.
type Config struct {
	// DB is the SQLite path. Empty selects the default data directory.
	DB     string       `mapstructure:"db"`
	Export ExportConfig `mapstructure:"export"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Log    LogConfig    `mapstructure:"log"`
}

// ExportConfig configures the spreadsheet export.
type ExportConfig struct {
	// URL of the web app. Empty disables export.
	URL string `mapstructure:"url"`
	// Timeout bounds one submission including retries.
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
}

// RetryConfig configures export backoff.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// AdminConfig configures the admin HTTP view.
type AdminConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// Secret signs session tokens. Empty means a random per-process secret.
	Secret     string        `mapstructure:"secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File receives logs while the TUI owns the terminal. Empty selects
	// pbi.log in the data directory.
	File string `mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts: 3,
				InitialWait: 1 * time.Second,
				MaxWait:     10 * time.Second,
				Multiplier:  2.0,
			},
		},
		Admin: AdminConfig{
			Addr:       "127.0.0.1:8080",
			Username:   "admin",
			Password:   "admin",
			SessionTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath, when set, must exist and is used exclusively.
	ConfigFilePath string
	// ConfigDirPath overrides the directory searched for config.yaml.
	ConfigDirPath string
}

// Load resolves the configuration. It returns the config file used, or ""
// when only defaults and the environment applied.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("db", defaults.DB)
	v.SetDefault("export.url", defaults.Export.URL)
	v.SetDefault("export.timeout", defaults.Export.Timeout)
	v.SetDefault("export.retry.max_attempts", defaults.Export.Retry.MaxAttempts)
	v.SetDefault("export.retry.initial_wait", defaults.Export.Retry.InitialWait)
	v.SetDefault("export.retry.max_wait", defaults.Export.Retry.MaxWait)
	v.SetDefault("export.retry.multiplier", defaults.Export.Retry.Multiplier)
	v.SetDefault("admin.addr", defaults.Admin.Addr)
	v.SetDefault("admin.username", defaults.Admin.Username)
	v.SetDefault("admin.password", defaults.Admin.Password)
	v.SetDefault("admin.secret", defaults.Admin.Secret)
	v.SetDefault("admin.session_ttl", defaults.Admin.SessionTTL)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolved := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		resolved = opts.ConfigFilePath
	} else {
		dir := opts.ConfigDirPath
		if dir == "" {
			d, err := ConfigDir()
			if err != nil {
				return nil, "", err
			}
			dir = d
		}
		if p := filepath.Join(dir, ConfigFileName); fileExists(p) {
			resolved = p
		}
	}

	if resolved != "" {
		v.SetConfigFile(resolved)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", resolved, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	r := c.Export.Retry
	if r.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("export.retry.max_attempts must be >= 1, got %d", r.MaxAttempts))
	}
	if r.InitialWait < 0 || r.MaxWait < 0 {
		errs = append(errs, errors.New("export.retry waits must not be negative"))
	}
	if r.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("export.retry.multiplier must be >= 1, got %g", r.Multiplier))
	}
	if c.Export.Timeout < 0 {
		errs = append(errs, errors.New("export.timeout must not be negative"))
	}
	if c.Admin.SessionTTL <= 0 {
		errs = append(errs, errors.New("admin.session_ttl must be positive"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/pbi, falling back to ~/.config/pbi.
func ConfigDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
