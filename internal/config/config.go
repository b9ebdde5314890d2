// Package config loads tasklist settings from defaults, an optional YAML
// file, and TODO_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppDir is the per-project directory holding slot files and config.
	AppDir = ".tasklist"

	// ConfigFile is the config file name inside AppDir.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TODO"

	// DefaultStorageKey names the persisted slot when none is configured.
	DefaultStorageKey = "todo_items_v1"
)

// Backend names accepted by the storage_backend setting.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// ID strategies accepted by the id_strategy setting.
const (
	IDStrategyTime = "time"
	IDStrategyUUID = "uuid"
)

// Config holds resolved settings.
type Config struct {
	// ProjectDir anchors relative storage paths. Defaults to the working directory.
	ProjectDir string `mapstructure:"project_dir"`

	// Backend selects the slot backend: json, sqlite, postgres, redis or memory.
	Backend string `mapstructure:"storage_backend"`

	// JSONDir overrides the directory holding JSON slot files.
	JSONDir string `mapstructure:"json_dir"`

	// SQLitePath overrides the SQLite database path.
	SQLitePath string `mapstructure:"sqlite_path"`

	// PostgresURL is the connection string for the postgres backend.
	PostgresURL string `mapstructure:"postgres_url"`

	// RedisURL is the redis:// URL for the redis backend.
	RedisURL string `mapstructure:"redis_url"`

	// StorageKey names the persisted slot.
	StorageKey string `mapstructure:"storage_key"`

	// IDStrategy selects id generation: time or uuid.
	IDStrategy string `mapstructure:"id_strategy"`

	// MetricsAddr, when set, makes long-running front ends serve Prometheus
	// metrics on this address (e.g. "127.0.0.1:9464").
	MetricsAddr string `mapstructure:"metrics_addr"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
}

// Load builds a Config.
//
// If configFile is non-empty it must exist and parse. Otherwise
// <project_dir>/.tasklist/config.yaml is read when present. Environment
// variables (TODO_STORAGE_BACKEND, TODO_SQLITE_PATH, ...) override both.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	projectDir := strings.TrimSpace(v.GetString("project_dir"))
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		projectDir = cwd
	}

	if configFile == "" {
		candidate := filepath.Join(projectDir, AppDir, ConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.ProjectDir == "" {
		cfg.ProjectDir = projectDir
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project_dir", "")
	v.SetDefault("storage_backend", BackendJSON)
	v.SetDefault("json_dir", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("postgres_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("storage_key", DefaultStorageKey)
	v.SetDefault("id_strategy", IDStrategyTime)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("debug", false)
}

func (c *Config) normalize() {
	c.ProjectDir = strings.TrimSpace(c.ProjectDir)
	if abs, err := filepath.Abs(c.ProjectDir); err == nil {
		c.ProjectDir = abs
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendJSON
	}
	c.JSONDir = strings.TrimSpace(c.JSONDir)
	c.SQLitePath = strings.TrimSpace(c.SQLitePath)
	c.PostgresURL = strings.TrimSpace(c.PostgresURL)
	c.RedisURL = strings.TrimSpace(c.RedisURL)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	c.StorageKey = strings.TrimSpace(c.StorageKey)
	if c.StorageKey == "" {
		c.StorageKey = DefaultStorageKey
	}
	c.IDStrategy = strings.ToLower(strings.TrimSpace(c.IDStrategy))
	if c.IDStrategy == "" {
		c.IDStrategy = IDStrategyTime
	}
}

// Validate checks enumerated settings and backend prerequisites.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	case BackendPostgres:
		if c.PostgresURL == "" {
			errs = append(errs, fmt.Errorf("postgres backend requires %s_POSTGRES_URL", EnvPrefix))
		}
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, fmt.Errorf("redis backend requires %s_REDIS_URL", EnvPrefix))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend: %q. Expected 'json', 'sqlite', 'postgres', 'redis' or 'memory'", c.Backend))
	}

	switch c.IDStrategy {
	case IDStrategyTime, IDStrategyUUID:
	default:
		errs = append(errs, fmt.Errorf("unknown id strategy: %q. Expected 'time' or 'uuid'", c.IDStrategy))
	}

	return errors.Join(errs...)
}
