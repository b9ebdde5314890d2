package mcpserver

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/JamesPrial/tasklist/internal/intent"
	"github.com/JamesPrial/tasklist/internal/todo"
)

// Handlers adapts tool calls to intents against one store.
type Handlers struct {
	store  *todo.Store
	logger *log.Logger
}

// NewHandlers creates Handlers for store. logger may be nil.
func NewHandlers(store *todo.Store, logger *log.Logger) *Handlers {
	return &Handlers{store: store, logger: logger}
}

// HandleListTasks renders the current list.
func (h *Handlers) HandleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(intent.Intent{Action: intent.ActionList}), nil
}

// HandleAddTask adds a task.
// Parameters:
//   - text (string, required): task title
//   - notes (string, optional): free-text notes
func (h *Handlers) HandleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: text"), nil
	}

	return h.apply(intent.Intent{
		Action: intent.ActionAdd,
		Text:   text,
		Notes:  request.GetString("notes", ""),
	}), nil
}

// HandleToggleTask flips a task's completion state.
func (h *Handlers) HandleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	return h.apply(intent.Intent{Action: intent.ActionToggle, ID: id}), nil
}

// HandleDeleteTask deletes a task.
func (h *Handlers) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	return h.apply(intent.Intent{Action: intent.ActionDelete, ID: id}), nil
}

// HandleClearCompleted removes completed tasks.
func (h *Handlers) HandleClearCompleted(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(intent.Intent{Action: intent.ActionClearCompleted}), nil
}

// HandleClearAll removes every task when confirm is true.
func (h *Handlers) HandleClearAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(intent.Intent{
		Action:  intent.ActionClearAll,
		Confirm: request.GetBool("confirm", false),
	}), nil
}

// apply runs in and renders the outcome as tool result text: the notice
// line, then the list. Failures become error results.
func (h *Handlers) apply(in intent.Intent) *mcp.CallToolResult {
	out, err := intent.Apply(h.store, in)
	if err != nil {
		return mcp.NewToolResultError(intent.ErrorNotice(err).Text)
	}

	if h.logger != nil {
		if perr := h.store.LastPersistError(); perr != nil {
			h.logger.Printf("%s applied in memory only: %v", in.Action, perr)
		}
	}

	text := intent.FormatList(out.Items)
	if out.Notice.Text != "" {
		text = fmt.Sprintf("%s\n\n%s", out.Notice.Text, text)
	}
	return mcp.NewToolResultText(text)
}
