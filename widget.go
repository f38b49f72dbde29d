package mcpapps

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

// Re-export MCP SDK and widget types for public API.
type (
	// CallToolResult is the server's response to a tool call.
	CallToolResult = mcp.CallToolResult

	// ReadResourceResult is the server's response to a resource read.
	ReadResourceResult = mcp.ReadResourceResult

	// McpTool represents an MCP tool definition from the official SDK.
	McpTool = mcp.Tool

	// Widget describes a tool whose invocation renders an HTML resource.
	Widget = widget.Widget

	// Field declares one widget input field.
	Field = schema.Field

	// FieldType is the JSON type of a Field.
	FieldType = schema.Type
)

// Field types.
const (
	FieldString  = schema.TypeString
	FieldNumber  = schema.TypeNumber
	FieldInteger = schema.TypeInteger
	FieldBoolean = schema.TypeBoolean
)

// WidgetMIMEType marks a resource as an MCP App HTML document.
const WidgetMIMEType = widget.MIMEType

// RenderFunc produces a widget's narration and structured content from its
// validated arguments. Arguments are keyed by wire name with defaults
// applied. A nil data value sends the arguments back as structured content.
//
// Example:
//
//	func(ctx context.Context, args map[string]any) (string, any, error) {
//	    name := args["name"].(string)
//	    return "Greeting: " + name, map[string]any{"name": name}, nil
//	}
type RenderFunc func(ctx context.Context, args map[string]any) (narration string, data any, err error)

// CustomWidget is a widget defined by the embedding application.
type CustomWidget struct {
	Widget *Widget
	Fields []Field
	Render RenderFunc
}

// NewWidget creates a CustomWidget. The descriptor and fields are checked
// when the server starts; an invalid widget is logged and skipped.
//
// Example:
//
//	greeting := mcpapps.NewWidget(&mcpapps.Widget{
//	    Identifier:  "show_greeting",
//	    Title:       "Show Greeting",
//	    Description: "Display a greeting card.",
//	    TemplateURI: "ui://widget/greeting.html",
//	    Invoking:    "Preparing greeting...",
//	    Invoked:     "Greeting ready",
//	    Component:   "greeting",
//	}, render,
//	    mcpapps.Field{Name: "name", Type: mcpapps.FieldString, Default: "world"},
//	)
func NewWidget(w *Widget, render RenderFunc, fields ...Field) *CustomWidget {
	return &CustomWidget{
		Widget: w,
		Fields: fields,
		Render: render,
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return internalmcp.TextResult(text)
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return internalmcp.ErrorResult(message)
}

// ResultText flattens a result into text: its text items followed by the
// structured content as JSON.
func ResultText(result *mcp.CallToolResult) string {
	return internalmcp.ResultText(result)
}
