package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"quill/internal/schema"
	"quill/internal/store"
)

// ToolDefinition represents a tool that can be called by the assistant
type ToolDefinition struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	InputSchema anthropic.ToolInputSchemaParam `json:"input_schema"`
	Function    func(ctx context.Context, input json.RawMessage) (string, error)
}

type ListTasksInput struct {
	IncludeDone bool `json:"include_done,omitempty" jsonschema_description:"Whether completed tasks should be included. Defaults to false."`
}

type ReadTaskInput struct {
	ID string `json:"id" jsonschema_description:"The ID of the task to read"`
}

// TaskTools returns the read-only task tools backed by the given store.
func TaskTools(st *store.Store) []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "list_tasks",
			Description: "List the tasks in the workspace with their IDs, titles and completion status.",
			InputSchema: schema.GenerateSchema[ListTasksInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				return listTasks(ctx, st, input)
			},
		},
		{
			Name:        "read_task",
			Description: "Read one task in full, including its markdown detail text.",
			InputSchema: schema.GenerateSchema[ReadTaskInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				return readTask(ctx, st, input)
			},
		},
	}
}

func listTasks(ctx context.Context, st *store.Store, input json.RawMessage) (string, error) {
	var listInput ListTasksInput
	if len(input) > 0 {
		if err := json.Unmarshal(input, &listInput); err != nil {
			return "", fmt.Errorf("failed to parse input: %w", err)
		}
	}

	tasks, err := st.List(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, task := range tasks {
		if task.Done && !listInput.IncludeDone {
			continue
		}
		status := "[ ]"
		if task.Done {
			status = "[x]"
		}
		fmt.Fprintf(&b, "%s %s (ID: %s)\n", status, task.Title, task.ID)
	}
	if b.Len() == 0 {
		return "No tasks found", nil
	}
	return b.String(), nil
}

func readTask(ctx context.Context, st *store.Store, input json.RawMessage) (string, error) {
	var readInput ReadTaskInput
	if err := json.Unmarshal(input, &readInput); err != nil {
		return "", fmt.Errorf("failed to parse input: %w", err)
	}
	if readInput.ID == "" {
		return "", fmt.Errorf("task ID cannot be empty")
	}

	task, err := st.Get(ctx, readInput.ID)
	if err != nil {
		return "", err
	}

	status := "pending"
	if task.Done {
		status = "done"
	}
	return fmt.Sprintf("Title: %s\nStatus: %s\n\n%s", task.Title, status, task.Details), nil
}
