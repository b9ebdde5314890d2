// Package intent turns user gestures into store calls.
//
// Front ends (the CLI, the MCP server) build an Intent, either directly or
// by decoding JSON, and hand it to Apply. Caller-side validation lives here:
// the store is only called with input it will accept, and clear_all only
// runs once the gesture carries an explicit confirmation.
package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Action names a gesture.
type Action string

// Supported actions.
const (
	ActionList           Action = "list"
	ActionAdd            Action = "add"
	ActionToggle         Action = "toggle"
	ActionDelete         Action = "delete"
	ActionClearCompleted Action = "clear_completed"
	ActionClearAll       Action = "clear_all"
)

var (
	// ErrUnknownAction is returned for an action outside the supported set.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingID is returned when toggle or delete carries no id.
	ErrMissingID = errors.New("task id required")

	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrNotConfirmed is returned for clear_all without Confirm.
	ErrNotConfirmed = errors.New("clearing all tasks requires confirmation")
)

// Intent is one user gesture in data form.
type Intent struct {
	// Action selects the operation.
	Action Action `json:"action"`

	// ID identifies the task for toggle and delete.
	ID string `json:"id,omitempty"`

	// Text is the title for add.
	Text string `json:"text,omitempty"`

	// Notes is the optional free text for add.
	Notes string `json:"notes,omitempty"`

	// Confirm must be true for clear_all.
	Confirm bool `json:"confirm,omitempty"`
}

// ParseAction normalizes s into a supported Action. Dashes are accepted in
// place of underscores ("clear-all").
func ParseAction(s string) (Action, error) {
	a := Action(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch a {
	case ActionList, ActionAdd, ActionToggle, ActionDelete, ActionClearCompleted, ActionClearAll:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// ReadIntent decodes a single JSON intent from r.
//
// Returns an error if the JSON is malformed or the action is not supported.
// Field-level validation happens in Apply.
func ReadIntent(r io.Reader) (*Intent, error) {
	var in Intent

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode intent: %w", err)
	}

	action, err := ParseAction(string(in.Action))
	if err != nil {
		return nil, err
	}
	in.Action = action
	in.ID = strings.TrimSpace(in.ID)

	return &in, nil
}
