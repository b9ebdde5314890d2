// Package mcpserver exposes the task store as Model Context Protocol tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// listTasksTool returns a tool definition for listing tasks.
func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List every task in insertion order with its id, completion state and notes, followed by a progress summary."),
	)
}

// addTaskTool returns a tool definition for adding a task.
func addTaskTool() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Add a new, incomplete task to the end of the list."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Task title. Leading and trailing whitespace is trimmed; must not be empty.")),
		mcp.WithString("notes",
			mcp.Description("Optional free-text notes")),
	)
}

// toggleTaskTool returns a tool definition for flipping a task's completion state.
func toggleTaskTool() mcp.Tool {
	return mcp.NewTool("toggle_task",
		mcp.WithDescription("Mark a task as done, or reopen it if it is already done."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the task, as shown by list_tasks")),
	)
}

// deleteTaskTool returns a tool definition for deleting a task.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a single task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id of the task, as shown by list_tasks")),
	)
}

// clearCompletedTool returns a tool definition for removing completed tasks.
func clearCompletedTool() mcp.Tool {
	return mcp.NewTool("clear_completed",
		mcp.WithDescription("Remove every completed task. Incomplete tasks keep their order."),
	)
}

// clearAllTool returns a tool definition for removing every task.
func clearAllTool() mcp.Tool {
	return mcp.NewTool("clear_all",
		mcp.WithDescription("Delete every task. Irreversible; only runs when confirm is true."),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true. Ask the user before setting it.")),
	)
}
