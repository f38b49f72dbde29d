package llm

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one chat message.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the function and carries its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Function declares a callable function.
type Function struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// Tool wraps a Function in the "function" tool envelope.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// FunctionTool declares a function tool.
func FunctionTool(name, description string, parameters any) Tool {
	return Tool{
		Type: "function",
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// Request is a chat completion request.
type Request struct {
	Messages []Message
	Tools    []Tool
}

// Completion is the first choice of a chat completion.
type Completion struct {
	Message      Message
	FinishReason string
}

// ChatModel completes a conversation.
type ChatModel interface {
	Complete(ctx context.Context, req *Request) (*Completion, error)
}
