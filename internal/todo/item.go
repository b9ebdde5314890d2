// Package todo implements the task list store: the ordered in-memory list of
// items, its validation rules, and its persistence to a single storage slot.
//
// The Store is the only writer of its slot. Every mutation re-serializes the
// whole list; there is no partial or incremental persistence.
package todo

// Item is a single task record.
//
// The JSON shape is the persisted slot format: an array of these objects.
// There is no version field, so renaming a tag breaks previously stored data.
type Item struct {
	// ID is the opaque unique lookup key, assigned at creation.
	ID string `json:"id"`

	// Text is the task title. Never empty for a stored item.
	Text string `json:"text"`

	// Notes is optional free text.
	Notes string `json:"notes"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed"`
}

// Toggle is the result of ToggleComplete.
//
// Completed duplicates Item.Completed so callers can branch on the new
// state without digging into the item.
type Toggle struct {
	Item      Item
	Completed bool
}

// Progress summarizes completion across the list.
type Progress struct {
	Done  int
	Total int
}

// Remaining returns the number of items not yet completed.
func (p Progress) Remaining() int {
	return p.Total - p.Done
}
