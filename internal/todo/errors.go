package todo

import (
	"errors"
	"fmt"
)

// ErrEmptyText is matched by errors.Is for any ValidationError on an item's text.
var ErrEmptyText = errors.New("task text cannot be empty")

// ValidationError reports user input the store refuses to accept.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// PersistenceError reports a failed slot read or write.
//
// Store operations never return it; it is logged, counted, and kept as
// LastPersistError while the in-memory list stays authoritative.
type PersistenceError struct {
	// Op is "load" or the name of the mutation that triggered the write.
	Op string

	// Key is the slot key.
	Key string

	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("slot %q: %s: %v", e.Key, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
