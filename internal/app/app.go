// Package app is the composition root shared by the tasklist binaries: it
// turns a Config into a storage backend, a metrics registry and an open
// Store.
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JamesPrial/tasklist/internal/config"
	"github.com/JamesPrial/tasklist/internal/metrics"
	"github.com/JamesPrial/tasklist/internal/storage"
	"github.com/JamesPrial/tasklist/internal/todo"
)

// App owns everything a front end needs for one session.
type App struct {
	Config   *config.Config
	Backend  storage.StorageBackend
	Store    *todo.Store
	Registry *prometheus.Registry
	Logger   *log.Logger
}

// New builds the backend selected by cfg and opens the store on it.
//
// logger receives the store's swallowed persistence warnings; nil discards
// them. Backend construction errors (bad path, unreachable server) are
// returned. Once the store is open, storage failures no longer surface as
// errors.
func New(cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	backend, err := storage.GetStorageBackend(cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	store := todo.Open(backend,
		todo.WithKey(cfg.StorageKey),
		todo.WithIDGenerator(todo.NewIDGenerator(cfg.IDStrategy)),
		todo.WithLogger(logger),
		todo.WithMetrics(metrics.New(reg)),
	)

	return &App{
		Config:   cfg,
		Backend:  backend,
		Store:    store,
		Registry: reg,
		Logger:   logger,
	}, nil
}

// BackendName reports the active backend for display.
func (a *App) BackendName() string {
	return storage.Name(a.Backend)
}

// Close releases the backend.
func (a *App) Close() error {
	if err := storage.Close(a.Backend); err != nil {
		return fmt.Errorf("failed to close %s backend: %w", a.BackendName(), err)
	}
	return nil
}
