package mcpserver

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/tasklist/internal/todo"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// NewServer creates and configures a new MCP server with all task tools
// registered against store.
func NewServer(store *todo.Store, logger *log.Logger) (*server.MCPServer, error) {
	if store == nil {
		return nil, fmt.Errorf("mcpserver: store is nil")
	}

	h := NewHandlers(store, logger)

	s := server.NewMCPServer(
		"tasklist",
		Version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(listTasksTool(), h.HandleListTasks)
	s.AddTool(addTaskTool(), h.HandleAddTask)
	s.AddTool(toggleTaskTool(), h.HandleToggleTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)
	s.AddTool(clearCompletedTool(), h.HandleClearCompleted)
	s.AddTool(clearAllTool(), h.HandleClearAll)

	return s, nil
}
