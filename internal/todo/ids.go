package todo

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator issues item ids.
//
// taken reports whether an id is already in use in the list; the returned
// id must not be taken.
type IDGenerator interface {
	NewID(taken func(id string) bool) string
}

// TimeIDs issues decimal Unix-millisecond timestamps, the format older
// persisted lists already use.
//
// Two calls within one millisecond would collide, so each id is bumped past
// the last one issued and past any id already in the list.
type TimeIDs struct {
	mu   sync.Mutex
	last int64

	// Now overrides time.Now, for tests.
	Now func() time.Time
}

// NewID implements IDGenerator.
func (g *TimeIDs) NewID(taken func(id string) bool) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	n := now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	for taken != nil && taken(strconv.FormatInt(n, 10)) {
		n++
	}
	g.last = n

	return strconv.FormatInt(n, 10)
}

// UUIDs issues random version 4 UUIDs.
type UUIDs struct{}

// NewID implements IDGenerator.
func (UUIDs) NewID(taken func(id string) bool) string {
	for {
		id := uuid.NewString()
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// NewIDGenerator returns the generator for a configured strategy name.
// Anything other than "uuid" yields TimeIDs.
func NewIDGenerator(strategy string) IDGenerator {
	if strategy == "uuid" {
		return UUIDs{}
	}
	return &TimeIDs{}
}
