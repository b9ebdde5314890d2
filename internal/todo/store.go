package todo

import (
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/JamesPrial/tasklist/internal/metrics"
	"github.com/JamesPrial/tasklist/internal/storage"
)

// Mutation names, used as metric labels and PersistenceError.Op.
const (
	OpLoad           = "load"
	OpAdd            = "add"
	OpToggle         = "toggle"
	OpDelete         = "delete"
	OpClearCompleted = "clear_completed"
	OpClearAll       = "clear_all"
)

// Store owns the task list and its persisted slot.
//
// Create one with Open at the composition root and pass it to whatever
// renders or mutates the list. Every method runs to completion before the
// next starts; the mutex only matters when a front end dispatches from
// several goroutines.
type Store struct {
	mu      sync.Mutex
	backend storage.StorageBackend
	key     string
	items   []Item
	ids     IDGenerator
	logger  *log.Logger
	metrics *metrics.Metrics
	lastErr error
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the slot key. Defaults to storage.DefaultSlotKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator replaces the default TimeIDs generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithLogger sets the logger that receives swallowed persistence errors.
// The default discards them.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records mutations and failures in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// Open creates a Store over backend and loads the persisted list.
//
// Open never fails: an unreadable or corrupt slot yields an empty list.
func Open(backend storage.StorageBackend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     storage.DefaultSlotKey,
		items:   make([]Item, 0),
		ids:     &TimeIDs{},
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.Load()
	return s
}

// Load replaces the in-memory list with the persisted one and returns it.
//
// Returns an empty list if the slot is empty, unreadable, or not a valid
// item array. Failures are logged, never returned.
func (s *Store) Load() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = nil
	s.items = s.readSlot()
	s.observeSize()
	return s.snapshot()
}

func (s *Store) readSlot() []Item {
	data, err := s.backend.ReadSlot(s.key)
	if errors.Is(err, storage.ErrSlotEmpty) {
		return make([]Item, 0)
	}
	if err != nil {
		s.recordFailure(OpLoad, err)
		return make([]Item, 0)
	}

	items, dropped, err := Decode(data)
	if err != nil {
		s.recordFailure(OpLoad, err)
		return make([]Item, 0)
	}
	if dropped > 0 {
		s.logger.Printf("Warning: dropped %d invalid record(s) from slot %q", dropped, s.key)
	}

	return items
}

// Add appends a new incomplete item and persists the list.
//
// text is trimmed; if nothing is left Add returns a *ValidationError
// matching ErrEmptyText and the list is unchanged. Callers are expected to
// reject empty input before calling.
func (s *Store) Add(text, notes string) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, &ValidationError{Field: "text", Reason: ErrEmptyText}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := Item{
		ID:    s.ids.NewID(s.has),
		Text:  text,
		Notes: notes,
	}
	s.items = append(s.items, item)
	s.commit(OpAdd)

	return item, nil
}

// ToggleComplete flips the completed flag of the item with id and persists
// the list.
//
// Returns found=false, with nothing persisted, if no item has that id.
func (s *Store) ToggleComplete(id string) (Toggle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Toggle{}, false
	}

	s.items[idx].Completed = !s.items[idx].Completed
	item := s.items[idx]
	s.commit(OpToggle)

	return Toggle{Item: item, Completed: item.Completed}, true
}

// Delete removes the item with id, if any, persists, and returns the list.
func (s *Store) Delete(id string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.filter(func(item Item) bool { return item.ID != id })
	s.commit(OpDelete)

	return s.snapshot()
}

// ClearCompleted removes every completed item, keeping the relative order
// of the rest, persists, and returns the list.
func (s *Store) ClearCompleted() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.filter(func(item Item) bool { return !item.Completed })
	s.commit(OpClearCompleted)

	return s.snapshot()
}

// ClearAll empties the list and persists it. It asks for no confirmation;
// that is the caller's job.
func (s *Store) ClearAll() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]Item, 0)
	s.commit(OpClearAll)

	return s.snapshot()
}

// Items returns a copy of the current list in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns the item with id.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Item{}, false
	}
	return s.items[idx], true
}

// Progress counts completed and total items.
func (s *Store) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress()
}

// LastPersistError returns the most recent swallowed *PersistenceError, or
// nil if the last slot access succeeded.
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Key returns the slot key.
func (s *Store) Key() string {
	return s.key
}

// commit writes the full list to the slot. Must be called with mu held.
func (s *Store) commit(op string) {
	s.metrics.IncrementMutations(op)
	s.observeSize()

	data, err := Encode(s.items)
	if err == nil {
		err = s.backend.WriteSlot(s.key, data)
	}
	if err != nil {
		s.recordFailure(op, err)
		return
	}
	s.lastErr = nil
}

func (s *Store) recordFailure(op string, err error) {
	perr := &PersistenceError{Op: op, Key: s.key, Err: err}
	s.lastErr = perr
	s.metrics.IncrementPersistFailures(op)
	s.logger.Printf("Warning: %v", perr)
}

func (s *Store) observeSize() {
	p := s.progress()
	s.metrics.SetListSize(p.Total, p.Done)
}

func (s *Store) progress() Progress {
	p := Progress{Total: len(s.items)}
	for _, item := range s.items {
		if item.Completed {
			p.Done++
		}
	}
	return p
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) has(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *Store) filter(keep func(Item) bool) []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) snapshot() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}
