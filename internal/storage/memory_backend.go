package storage

import (
	"sync"
)

// MemoryBackend implements StorageBackend with an in-process map.
//
// Nothing survives the process. It backs the "memory" backend setting and
// lets tests simulate a full or unavailable storage area with FailReads and
// FailWrites.
type MemoryBackend struct {
	mu       sync.Mutex
	slots    map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		slots: make(map[string][]byte),
	}
}

// ReadSlot returns a copy of the bytes stored under key.
func (b *MemoryBackend) ReadSlot(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readErr != nil {
		return nil, b.readErr
	}
	data, ok := b.slots[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), data...), nil
}

// WriteSlot stores a copy of data under key.
func (b *MemoryBackend) WriteSlot(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.writeErr != nil {
		return b.writeErr
	}
	b.slots[key] = append([]byte(nil), data...)
	b.writes++
	return nil
}

// FailReads makes every subsequent ReadSlot return err. Pass nil to recover.
func (b *MemoryBackend) FailReads(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readErr = err
}

// FailWrites makes every subsequent WriteSlot return err. Pass nil to recover.
func (b *MemoryBackend) FailWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

// Writes reports how many writes have succeeded.
func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
