// Package pathutil resolves user-supplied storage paths against the project
// directory.
//
// Slot files and databases configured by path must stay inside the project
// directory, even when symlinks are involved.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPath is returned for empty or whitespace-only paths.
	ErrEmptyPath = errors.New("path is empty or whitespace-only")

	// ErrNullByte is returned for paths containing a NUL byte.
	ErrNullByte = errors.New("path contains null byte")

	// ErrOutsideBase is returned when a path resolves outside the base directory.
	ErrOutsideBase = errors.New("path escapes base directory")
)

// ResolveWithin resolves userPath against baseDir and returns the absolute,
// symlink-free result, which is guaranteed to lie inside baseDir.
//
// Relative paths are joined to baseDir; absolute paths are accepted only if
// they land inside it. The target itself does not have to exist yet, since
// a slot file is created on first write: only its nearest existing ancestor
// is resolved.
//
// Example:
//
//	dbPath, err := ResolveWithin("/home/user/project", ".tasklist/tasks.db")
func ResolveWithin(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", ErrEmptyPath
	}
	if strings.Contains(userPath, "\x00") {
		return "", ErrNullByte
	}

	candidate := userPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}

	resolved, err := resolveExisting(filepath.Clean(candidate))
	if err != nil {
		return "", err
	}

	base, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	if !contains(base, resolved) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, userPath)
	}

	return resolved, nil
}

// resolveExisting evaluates symlinks on the longest existing prefix of path
// and re-appends the components that do not exist yet.
func resolveExisting(path string) (string, error) {
	var missing []string
	current := path

	for {
		_, statErr := os.Lstat(current)
		if statErr == nil {
			real, err := filepath.EvalSymlinks(current)
			if err != nil {
				return "", fmt.Errorf("failed to resolve symlinks: %w", err)
			}
			for i := len(missing) - 1; i >= 0; i-- {
				real = filepath.Join(real, missing[i])
			}
			return real, nil
		}
		if !os.IsNotExist(statErr) {
			return "", fmt.Errorf("failed to stat %s: %w", current, statErr)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent directory found for %s", path)
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// contains reports whether target is base or lies beneath it.
func contains(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
