// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Remote  RemoteConfig  `mapstructure:"remote"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RemoteConfig holds catalog gateway configuration
type RemoteConfig struct {
	URL     string        `mapstructure:"url"`     // Gateway base URL
	APIKey  string        `mapstructure:"api_key"` // Write-access key
	Role    string        `mapstructure:"role"`    // "viewer" or "admin"
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache tuning configuration
type CacheConfig struct {
	Dir             string        `mapstructure:"dir"`              // Local store directory
	FreshnessWindow time.Duration `mapstructure:"freshness_window"` // Durable store staleness threshold
	MemoryTTL       time.Duration `mapstructure:"memory_ttl"`       // In-memory tier lifetime
	RefreshDelay    time.Duration `mapstructure:"refresh_delay"`    // Background refresh deferral
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{
			URL:     "",
			APIKey:  "",
			Role:    "viewer",
			Timeout: 8 * time.Second,
		},
		Cache: CacheConfig{
			Dir:             defaultCachePath(),
			FreshnessWindow: 10 * time.Minute,
			MemoryTTL:       30 * time.Second,
			RefreshDelay:    75 * time.Millisecond,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "barback", "barback.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "barback", "barback.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "barback")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "barback")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "barback", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "barback", "cache")
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("BARBACK")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves the current configuration to file
func Save(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("remote.url", cfg.Remote.URL)
	viper.Set("remote.api_key", cfg.Remote.APIKey)
	viper.Set("remote.role", cfg.Remote.Role)
	viper.Set("remote.timeout", cfg.Remote.Timeout)

	viper.Set("cache.dir", cfg.Cache.Dir)
	viper.Set("cache.freshness_window", cfg.Cache.FreshnessWindow)
	viper.Set("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.Set("cache.refresh_delay", cfg.Cache.RefreshDelay)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the gateway URL is set
func (c *Config) IsConfigured() bool {
	return c.Remote.URL != ""
}

// ClearCache removes all locally cached catalog data
func ClearCache(cfg *Config) error {
	dir := cfg.Cache.Dir
	if dir == "" {
		dir = defaultCachePath()
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
