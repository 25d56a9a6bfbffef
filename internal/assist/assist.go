package assist

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"quill/internal/logger"
	"quill/internal/store"
	"quill/internal/tools"
)

//go:embed prompt.txt
var systemPrompt string

// maxRounds bounds the tool loop for one rewrite request.
const maxRounds = 5

// Assistant rewrites task detail text with Claude, giving the model read-only
// task tools for context.
type Assistant struct {
	client *anthropic.Client
	tools  []tools.ToolDefinition
	model  anthropic.Model
}

// New creates an assistant. An empty model falls back to the default.
func New(client *anthropic.Client, toolDefs []tools.ToolDefinition, model string) *Assistant {
	if model == "" {
		model = string(anthropic.ModelClaude4Sonnet20250514)
	}
	return &Assistant{
		client: client,
		tools:  toolDefs,
		model:  anthropic.Model(model),
	}
}

// Rewrite returns a tidied version of the task's detail text. The task's own
// content is never persisted here; the caller decides what to do with the
// result.
func (a *Assistant) Rewrite(ctx context.Context, task store.Task) (string, error) {
	if strings.TrimSpace(task.Details) == "" {
		return "", fmt.Errorf("task has no details to rewrite")
	}

	conversation := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(
			fmt.Sprintf("Task: %s\n\nDetails:\n%s", task.Title, task.Details))),
	}

	var finalText string
	for round := range maxRounds {
		message, err := a.runInference(ctx, conversation)
		if err != nil {
			return "", fmt.Errorf("rewrite failed at round %d: %w", round+1, err)
		}

		conversation = append(conversation, message.ToParam())

		var toolUses []toolUseInfo
		for _, content := range message.Content {
			switch content.Type {
			case "text":
				finalText = content.Text
			case "tool_use":
				toolUses = append(toolUses, toolUseInfo{
					id:    content.ID,
					name:  content.Name,
					input: content.Input,
				})
			}
		}

		if len(toolUses) == 0 {
			break
		}

		results := a.executeToolsConcurrently(ctx, toolUses)
		conversation = append(conversation, anthropic.NewUserMessage(results...))
	}

	if strings.TrimSpace(finalText) == "" {
		return "", fmt.Errorf("no rewritten text received")
	}
	return strings.TrimRight(finalText, "\n"), nil
}

func (a *Assistant) runInference(ctx context.Context, conversation []anthropic.MessageParam) (*anthropic.Message, error) {
	anthropicTools := []anthropic.ToolUnionParam{}
	for _, tool := range a.tools {
		anthropicTools = append(anthropicTools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: tool.InputSchema,
			},
		})
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(2048),
		Messages:  conversation,
		Tools:     anthropicTools,
		System:    []anthropic.TextBlockParam{{Type: "text", Text: systemPrompt}},
	})
	if err != nil {
		logger.Error("API request failed: %v", err)
	}
	return message, err
}

type toolUseInfo struct {
	id    string
	name  string
	input json.RawMessage
}

type toolExecutionResult struct {
	index  int
	result anthropic.ContentBlockParamUnion
}

func (a *Assistant) executeToolsConcurrently(ctx context.Context, toolUses []toolUseInfo) []anthropic.ContentBlockParamUnion {
	if len(toolUses) == 0 {
		return nil
	}

	results := make([]anthropic.ContentBlockParamUnion, len(toolUses))
	resultChan := make(chan toolExecutionResult, len(toolUses))

	// Kick off all tools concurrently
	for i, toolUse := range toolUses {
		go func(index int, tu toolUseInfo) {
			resultChan <- toolExecutionResult{
				index:  index,
				result: a.executeTool(ctx, tu.id, tu.name, tu.input),
			}
		}(i, toolUse)
	}

	// Collect all results
	for range toolUses {
		execResult := <-resultChan
		results[execResult.index] = execResult.result
	}

	return results
}

func (a *Assistant) executeTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	var toolDef tools.ToolDefinition
	var found bool
	for _, tool := range a.tools {
		if tool.Name == name {
			toolDef = tool
			found = true
			break
		}
	}
	if !found {
		return anthropic.NewToolResultBlock(id, "tool not found", true)
	}

	// Log tool execution to file instead of stdout to avoid TUI corruption
	logger.Tool(name, string(input))

	response, err := toolDef.Function(ctx, input)
	if err != nil {
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	return anthropic.NewToolResultBlock(id, response, false)
}
