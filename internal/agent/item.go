package agent

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Item is one step of an agent run.
// Use a type switch to determine the concrete kind.
type Item interface {
	ItemKind() string
}

// Compile-time verification that all item kinds implement Item.
var (
	_ Item = (*ToolCallItem)(nil)
	_ Item = (*ToolResultItem)(nil)
	_ Item = (*NarrationItem)(nil)
)

// ToolCallItem records the model invoking a tool.
type ToolCallItem struct {
	CallID    string
	Name      string
	Arguments map[string]any
}

// ItemKind implements Item.
func (*ToolCallItem) ItemKind() string { return "tool_call" }

// ToolResultItem records what a tool returned.
type ToolResultItem struct {
	CallID string
	Name   string
	Result *mcp.CallToolResult
}

// ItemKind implements Item.
func (*ToolResultItem) ItemKind() string { return "tool_result" }

// NarrationItem is model text addressed to the user.
type NarrationItem struct {
	Text string
}

// ItemKind implements Item.
func (*NarrationItem) ItemKind() string { return "narration" }
