package storage

import (
	"fmt"
	"path/filepath"

	"github.com/JamesPrial/tasklist/internal/config"
	"github.com/JamesPrial/tasklist/internal/pathutil"
)

// GetStorageBackend returns the storage backend selected by cfg.
//
// Defaults when no custom path is set:
//   - json:   <ProjectDir>/.tasklist/<key>.json
//   - sqlite: <ProjectDir>/.tasklist/tasks.db
//
// Custom JSON and SQLite paths must resolve inside ProjectDir. The postgres
// and redis backends connect immediately, so an unreachable server is
// reported here rather than on first write.
func GetStorageBackend(cfg *config.Config) (StorageBackend, error) {
	switch cfg.Backend {
	case config.BackendJSON, "":
		dir, err := getJSONDir(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to determine JSON slot directory: %w", err)
		}
		return NewJSONBackend(dir), nil

	case config.BackendSQLite:
		path, err := getSQLitePath(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to determine SQLite database path: %w", err)
		}
		backend, err := NewSQLiteBackend(path)
		if err != nil {
			return nil, err
		}
		return backend, nil

	case config.BackendPostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("postgres backend requires a connection string")
		}
		backend, err := NewPostgresBackend(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return backend, nil

	case config.BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a URL")
		}
		backend, err := DialRedisBackend(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return backend, nil

	case config.BackendMemory:
		return NewMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

// getJSONDir returns the directory for JSON slot files.
func getJSONDir(cfg *config.Config) (string, error) {
	if cfg.JSONDir != "" {
		dir, err := pathutil.ResolveWithin(cfg.ProjectDir, cfg.JSONDir)
		if err != nil {
			return "", fmt.Errorf("invalid json_dir: %w", err)
		}
		return dir, nil
	}

	return filepath.Join(cfg.ProjectDir, config.AppDir), nil
}

// getSQLitePath returns the SQLite database file path.
func getSQLitePath(cfg *config.Config) (string, error) {
	if cfg.SQLitePath != "" {
		path, err := pathutil.ResolveWithin(cfg.ProjectDir, cfg.SQLitePath)
		if err != nil {
			return "", fmt.Errorf("invalid sqlite_path: %w", err)
		}
		return path, nil
	}

	return filepath.Join(cfg.ProjectDir, config.AppDir, "tasks.db"), nil
}
