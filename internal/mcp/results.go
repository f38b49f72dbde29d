package mcp

import (
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// WidgetResult creates a successful widget result: a narration line, the
// structured content shared by model and widget, and widget-only metadata.
func WidgetResult(narration string, structured any, meta mcp.Meta) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: narration},
		},
		StructuredContent: structured,
		Meta:              meta,
	}
}

// ImageContent creates an image content item.
func ImageContent(data []byte, mimeType string) *mcp.ImageContent {
	return &mcp.ImageContent{Data: data, MIMEType: mimeType}
}

// ResultText flattens a result into the text a chat model should see: the
// text items joined by newlines, followed by the structured content as JSON.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var parts []string

	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok && tc.Text != "" {
			parts = append(parts, tc.Text)
		}
	}

	if result.StructuredContent != nil {
		if raw, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(raw))
		}
	}

	return strings.Join(parts, "\n")
}

// ResultToMap converts an MCP CallToolResult to the plain JSON shape served
// by the HTTP tool bridge.
func ResultToMap(result *mcp.CallToolResult) map[string]any {
	if result == nil {
		return map[string]any{
			"content": []map[string]any{},
		}
	}

	content := make([]map[string]any, 0, len(result.Content))
	for _, c := range result.Content {
		switch v := c.(type) {
		case *mcp.TextContent:
			content = append(content, map[string]any{
				"type": "text",
				"text": v.Text,
			})
		case *mcp.ImageContent:
			content = append(content, map[string]any{
				"type":     "image",
				"data":     v.Data,
				"mimeType": v.MIMEType,
			})
		case *mcp.EmbeddedResource:
			if v.Resource != nil {
				content = append(content, map[string]any{
					"type": "resource",
					"resource": map[string]any{
						"uri":      v.Resource.URI,
						"mimeType": v.Resource.MIMEType,
						"text":     v.Resource.Text,
					},
				})
			}
		}
	}

	resultMap := map[string]any{
		"content": content,
	}

	if result.StructuredContent != nil {
		resultMap["structuredContent"] = result.StructuredContent
	}

	if len(result.Meta) > 0 {
		resultMap["_meta"] = map[string]any(result.Meta)
	}

	if result.IsError {
		resultMap["isError"] = true
	}

	return resultMap
}
