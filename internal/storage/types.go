// Package storage provides the persisted slot backends for the task list.
//
// A slot is a single named location holding the entire serialized task list.
// Every backend stores opaque bytes under a key; encoding and decoding of the
// list itself belongs to the todo package. All storage backends must implement
// the StorageBackend interface to be usable by the store.
package storage

import (
	"errors"

	"github.com/JamesPrial/tasklist/internal/config"
)

// DefaultSlotKey is the slot name used when no key is configured.
const DefaultSlotKey = config.DefaultStorageKey

// ErrSlotEmpty is returned by ReadSlot when nothing has been stored under the key.
var ErrSlotEmpty = errors.New("slot is empty")

// StorageBackend defines the contract for slot persistence.
//
// There is exactly one writer per slot (the store), so implementations need
// no cross-process coordination beyond making each write atomic.
type StorageBackend interface {
	// ReadSlot returns the bytes last written under key.
	//
	// Returns ErrSlotEmpty if the slot has never been written.
	// Returns any other error if the underlying storage cannot be read.
	ReadSlot(key string) ([]byte, error)

	// WriteSlot replaces the contents of the slot with data.
	//
	// The write is all-or-nothing: a failed write leaves the previous
	// contents in place.
	WriteSlot(key string, data []byte) error
}

// Name reports a short human-readable backend name, used in log lines and
// CLI output.
func Name(b StorageBackend) string {
	switch b.(type) {
	case *JSONBackend:
		return "json"
	case *SQLiteBackend:
		return "sqlite"
	case *PostgresBackend:
		return "postgres"
	case *RedisBackend:
		return "redis"
	case *MemoryBackend:
		return "memory"
	default:
		return "custom"
	}
}

// Close releases backend resources if the backend holds any.
//
// Backends that open a connection per operation have nothing to close.
func Close(b StorageBackend) error {
	if c, ok := b.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
