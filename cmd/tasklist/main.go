// Package main implements the tasklist command-line front end.
//
// Each invocation loads the persisted list, applies at most one gesture,
// prints the outcome, and exits. With no subcommand the list is shown.
//
// Exit codes:
//   - 0: Success (including an aborted clear --all)
//   - 1: User error (empty text, unknown id, bad flags or arguments)
//   - 2: Setup error (config file, storage backend unreachable or misconfigured)
//
// Environment variables (all optional, see internal/config):
//   - TODO_PROJECT_DIR: project root for relative storage paths (default: cwd).
//   - TODO_STORAGE_BACKEND: "json" (default), "sqlite", "postgres", "redis" or "memory".
//   - TODO_JSON_DIR, TODO_SQLITE_PATH, TODO_POSTGRES_URL, TODO_REDIS_URL.
//   - TODO_STORAGE_KEY: slot name (default: todo_items_v1).
//   - TODO_ID_STRATEGY: "time" (default) or "uuid".
//   - TODO_DEBUG: log storage warnings and metrics to stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	exitSuccess    = 0
	exitUserError  = 1
	exitSetupError = 2
)

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error  { return &exitError{code: exitUserError, err: err} }
func setupError(err error) error { return &exitError{code: exitSetupError, err: err} }

// run executes the CLI with explicit streams, returning an exit code.
//
// Accepts the argument list and streams as parameters to enable testing
// without modifying global state.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root, c := newRootCmd(stdin, stdout, stderr)
	defer c.shutdown()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Flag and argument parsing errors from cobra.
	return exitUserError
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
