package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/tasklist/internal/storage"
	"github.com/JamesPrial/tasklist/internal/todo"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func newTestHandlers(t *testing.T) (*Handlers, *todo.Store, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	store := todo.Open(backend)
	return NewHandlers(store, nil), store, backend
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText returns the text of a single-content tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("handler returned nil result")
	}
	if len(result.Content) != 1 {
		t.Fatalf("result has %d content items, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result content has type %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

// ---------------------------------------------------------------------------
// list_tasks
// ---------------------------------------------------------------------------

func Test_HandleListTasks_Empty(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestHandlers(t)

	result, err := h.HandleListTasks(context.Background(), callRequest("list_tasks", nil))
	if err != nil {
		t.Fatalf("HandleListTasks() error = %v", err)
	}
	if result.IsError {
		t.Fatal("HandleListTasks() returned an error result")
	}
	if got := resultText(t, result); got != "No tasks yet.\n" {
		t.Errorf("text = %q, want %q", got, "No tasks yet.\n")
	}
}

func Test_HandleListTasks_RendersItems(t *testing.T) {
	t.Parallel()
	h, store, _ := newTestHandlers(t)
	item, err := store.Add("Buy milk", "2 litres")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	result, _ := h.HandleListTasks(context.Background(), callRequest("list_tasks", nil))
	text := resultText(t, result)

	for _, want := range []string{"[ ] " + item.ID + "  Buy milk", "    2 litres", "0 of 1 completed"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}

// ---------------------------------------------------------------------------
// add_task
// ---------------------------------------------------------------------------

func Test_HandleAddTask_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		wantText  string
		wantItems int
	}{
		{
			name:      "text only",
			args:      map[string]any{"text": "Buy milk"},
			wantText:  "Task added.\n\n",
			wantItems: 1,
		},
		{
			name:      "text and notes",
			args:      map[string]any{"text": "Walk dog", "notes": "leash"},
			wantText:  "    leash",
			wantItems: 1,
		},
		{
			name:      "missing text",
			args:      map[string]any{"notes": "orphan"},
			wantError: true,
			wantText:  "Missing required parameter: text",
		},
		{
			name:      "whitespace-only text",
			args:      map[string]any{"text": "   "},
			wantError: true,
			wantText:  "Task text cannot be empty.",
		},
		{
			name:      "text of the wrong type",
			args:      map[string]any{"text": 42},
			wantError: true,
			wantText:  "Missing required parameter: text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, store, _ := newTestHandlers(t)

			result, err := h.HandleAddTask(context.Background(), callRequest("add_task", tt.args))
			if err != nil {
				t.Fatalf("HandleAddTask() returned Go error: %v", err)
			}
			if result.IsError != tt.wantError {
				t.Errorf("IsError = %v, want %v", result.IsError, tt.wantError)
			}
			if text := resultText(t, result); !strings.Contains(text, tt.wantText) {
				t.Errorf("text = %q, want it to contain %q", text, tt.wantText)
			}
			if got := len(store.Items()); got != tt.wantItems {
				t.Errorf("store has %d items, want %d", got, tt.wantItems)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// toggle_task / delete_task
// ---------------------------------------------------------------------------

func Test_HandleToggleTask(t *testing.T) {
	t.Parallel()
	h, store, _ := newTestHandlers(t)
	item, _ := store.Add("task", "")
	ctx := context.Background()

	result, _ := h.HandleToggleTask(ctx, callRequest("toggle_task", map[string]any{"id": item.ID}))
	if text := resultText(t, result); !strings.HasPrefix(text, "Task marked as done.") {
		t.Errorf("first toggle text = %q", text)
	}

	result, _ = h.HandleToggleTask(ctx, callRequest("toggle_task", map[string]any{"id": item.ID}))
	if text := resultText(t, result); !strings.HasPrefix(text, "Task reopened.") {
		t.Errorf("second toggle text = %q", text)
	}

	result, _ = h.HandleToggleTask(ctx, callRequest("toggle_task", map[string]any{"id": "missing"}))
	if !result.IsError {
		t.Error("toggle of unknown id did not return an error result")
	}

	result, _ = h.HandleToggleTask(ctx, callRequest("toggle_task", nil))
	if !result.IsError || resultText(t, result) != "Missing required parameter: id" {
		t.Errorf("toggle without id = %+v", result)
	}
}

func Test_HandleDeleteTask(t *testing.T) {
	t.Parallel()
	h, store, _ := newTestHandlers(t)
	item, _ := store.Add("task", "")
	ctx := context.Background()

	result, _ := h.HandleDeleteTask(ctx, callRequest("delete_task", map[string]any{"id": item.ID}))
	if result.IsError {
		t.Fatalf("delete returned error result: %s", resultText(t, result))
	}
	if text := resultText(t, result); text != "Task deleted.\n\nNo tasks yet.\n" {
		t.Errorf("text = %q", text)
	}

	result, _ = h.HandleDeleteTask(ctx, callRequest("delete_task", map[string]any{"id": item.ID}))
	if !result.IsError || !strings.Contains(resultText(t, result), "task not found") {
		t.Errorf("second delete = %q, want a not-found error result", resultText(t, result))
	}
}

// ---------------------------------------------------------------------------
// clear_completed / clear_all
// ---------------------------------------------------------------------------

func Test_HandleClearCompleted(t *testing.T) {
	t.Parallel()
	h, store, _ := newTestHandlers(t)
	done, _ := store.Add("done", "")
	store.Add("open", "")
	store.ToggleComplete(done.ID)

	result, _ := h.HandleClearCompleted(context.Background(), callRequest("clear_completed", nil))
	text := resultText(t, result)
	if !strings.HasPrefix(text, "Completed tasks cleared.") {
		t.Errorf("text = %q", text)
	}
	if strings.Contains(text, "done") || !strings.Contains(text, "open") {
		t.Errorf("rendered list wrong:\n%s", text)
	}
}

func Test_HandleClearAll_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		wantItems int
	}{
		{name: "confirm true", args: map[string]any{"confirm": true}, wantItems: 0},
		{name: "confirm false", args: map[string]any{"confirm": false}, wantError: true, wantItems: 2},
		{name: "confirm missing", args: nil, wantError: true, wantItems: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, store, _ := newTestHandlers(t)
			store.Add("a", "")
			store.Add("b", "")

			result, err := h.HandleClearAll(context.Background(), callRequest("clear_all", tt.args))
			if err != nil {
				t.Fatalf("HandleClearAll() returned Go error: %v", err)
			}
			if result.IsError != tt.wantError {
				t.Errorf("IsError = %v, want %v (%s)", result.IsError, tt.wantError, resultText(t, result))
			}
			if got := len(store.Items()); got != tt.wantItems {
				t.Errorf("store has %d items, want %d", got, tt.wantItems)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Persistence failures
// ---------------------------------------------------------------------------

func Test_Handlers_PersistenceFailureLoggedNotReturned(t *testing.T) {
	t.Parallel()
	backend := storage.NewMemoryBackend()
	backend.FailWrites(errors.New("quota exceeded"))
	var logs bytes.Buffer
	h := NewHandlers(todo.Open(backend), log.New(&logs, "", 0))

	result, err := h.HandleAddTask(context.Background(), callRequest("add_task", map[string]any{"text": "kept"}))
	if err != nil {
		t.Fatalf("HandleAddTask() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("persistence failure surfaced as error result: %s", resultText(t, result))
	}
	if !strings.Contains(logs.String(), "quota exceeded") {
		t.Errorf("log = %q, want the persistence error", logs.String())
	}
}
