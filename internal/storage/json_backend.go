package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSONBackend implements StorageBackend using one JSON file per slot.
//
// The slot key maps to <Dir>/<key>.json. Writes go through a temporary
// file and os.Rename so a reader never observes a half-written slot.
type JSONBackend struct {
	// Dir is the directory holding the slot files.
	Dir string
}

// NewJSONBackend creates a new JSONBackend rooted at dir.
//
// The directory is created on first write.
func NewJSONBackend(dir string) *JSONBackend {
	return &JSONBackend{
		Dir: dir,
	}
}

// SlotPath returns the file path backing key.
func (b *JSONBackend) SlotPath(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

// ReadSlot reads the slot file for key.
//
// Returns ErrSlotEmpty if the file does not exist. The contents are returned
// as stored; validating them is the caller's job.
func (b *JSONBackend) ReadSlot(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.SlotPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}

	return data, nil
}

// WriteSlot atomically replaces the slot file for key.
//
// Valid JSON is re-indented with 2 spaces and a trailing newline so the file
// stays readable by hand. Anything else is written verbatim.
func (b *JSONBackend) WriteSlot(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		data = pretty.Bytes()
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	tmpFile, err := os.CreateTemp(b.Dir, "*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", writeErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, b.SlotPath(key)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace slot file: %w", err)
	}

	return nil
}

// validateKey rejects keys that cannot be used as a slot name.
//
// File-backed slots turn the key into a file name, so path separators and
// dot segments are refused for every backend to keep keys portable.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("slot key is empty")
	}
	if key == "." || key == ".." || strings.ContainsAny(key, `/\`+"\x00") {
		return fmt.Errorf("invalid slot key: %q", key)
	}
	return nil
}
