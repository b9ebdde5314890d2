package intent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JamesPrial/tasklist/internal/todo"
)

// Kind classifies a Notice for display.
type Kind string

// Notice kinds.
const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice is the one-line message a renderer shows after a gesture.
type Notice struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Outcome is everything a renderer needs after a gesture.
type Outcome struct {
	Action Action `json:"action"`

	// Item is the affected item for add and toggle.
	Item *todo.Item `json:"item,omitempty"`

	// Items is the list after the gesture.
	Items []todo.Item `json:"items"`

	Notice   Notice        `json:"notice"`
	Progress todo.Progress `json:"progress"`
}

// Apply validates in and runs it against store.
//
// On error nothing was mutated and the returned Outcome is zero; ErrorNotice
// turns the error into something displayable.
func Apply(store *todo.Store, in Intent) (Outcome, error) {
	out := Outcome{Action: in.Action}

	switch in.Action {
	case ActionList:
		// Read-only; no notice.

	case ActionAdd:
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return Outcome{}, &todo.ValidationError{Field: "text", Reason: todo.ErrEmptyText}
		}
		item, err := store.Add(text, in.Notes)
		if err != nil {
			return Outcome{}, err
		}
		out.Item = &item
		out.Notice = Notice{Text: "Task added.", Kind: KindSuccess}

	case ActionToggle:
		if in.ID == "" {
			return Outcome{}, ErrMissingID
		}
		toggled, ok := store.ToggleComplete(in.ID)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: %s", ErrNotFound, in.ID)
		}
		out.Item = &toggled.Item
		if toggled.Completed {
			out.Notice = Notice{Text: "Task marked as done.", Kind: KindSuccess}
		} else {
			out.Notice = Notice{Text: "Task reopened.", Kind: KindWarning}
		}

	case ActionDelete:
		if in.ID == "" {
			return Outcome{}, ErrMissingID
		}
		if _, ok := store.Get(in.ID); !ok {
			return Outcome{}, fmt.Errorf("%w: %s", ErrNotFound, in.ID)
		}
		store.Delete(in.ID)
		out.Notice = Notice{Text: "Task deleted.", Kind: KindWarning}

	case ActionClearCompleted:
		store.ClearCompleted()
		out.Notice = Notice{Text: "Completed tasks cleared.", Kind: KindSuccess}

	case ActionClearAll:
		if !in.Confirm {
			return Outcome{}, ErrNotConfirmed
		}
		store.ClearAll()
		out.Notice = Notice{Text: "All tasks deleted.", Kind: KindWarning}

	default:
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, in.Action)
	}

	out.Items = store.Items()
	out.Progress = store.Progress()
	return out, nil
}

// ErrorNotice converts an Apply error into a displayable Notice.
func ErrorNotice(err error) Notice {
	switch {
	case errors.Is(err, todo.ErrEmptyText):
		return Notice{Text: "Task text cannot be empty.", Kind: KindError}
	case errors.Is(err, ErrNotConfirmed):
		return Notice{Text: "Clearing all tasks needs confirmation.", Kind: KindError}
	default:
		return Notice{Text: err.Error(), Kind: KindError}
	}
}

// Summary renders progress as the line shown under the list.
func Summary(p todo.Progress) string {
	if p.Total == 0 {
		return "No tasks yet."
	}
	return fmt.Sprintf("%d of %d completed", p.Done, p.Total)
}
