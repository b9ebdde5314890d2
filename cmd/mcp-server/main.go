// Package main implements the tasklist MCP server.
//
// The server exposes the task store as tools (list_tasks, add_task,
// toggle_task, delete_task, clear_completed, clear_all) over stdio JSON-RPC
// (Model Context Protocol). Storage is configured exactly as for the
// tasklist CLI; see internal/config. TODO_CONFIG_FILE names an explicit
// config file, and TODO_METRICS_ADDR (e.g. ":9090") serves Prometheus
// metrics at /metrics.
package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JamesPrial/tasklist/internal/app"
	"github.com/JamesPrial/tasklist/internal/config"
	"github.com/JamesPrial/tasklist/internal/mcpserver"
)

func run() int {
	errLogger := log.New(os.Stderr, "[mcp-server] ", log.LstdFlags)

	cfg, err := config.Load(os.Getenv("TODO_CONFIG_FILE"))
	if err != nil {
		errLogger.Printf("Failed to load config: %v", err)
		return 1
	}

	a, err := app.New(cfg, errLogger)
	if err != nil {
		errLogger.Printf("Failed to open storage: %v", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			errLogger.Printf("Warning: %v", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, a, errLogger)
	}

	srv, err := mcpserver.NewServer(a.Store, errLogger)
	if err != nil {
		errLogger.Printf("Failed to create MCP server: %v", err)
		return 1
	}

	if cfg.Debug {
		errLogger.Printf("Serving slot %q from %s backend", a.Store.Key(), a.BackendName())
	}

	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

// serveMetrics exposes the store's Prometheus registry on addr until the
// process exits.
func serveMetrics(addr string, a *app.App, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	logger.Printf("Serving metrics on http://%s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("Metrics server stopped: %v", err)
	}
}

func main() {
	os.Exit(run())
}
