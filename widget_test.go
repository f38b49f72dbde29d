package mcpapps

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextResult(t *testing.T) {
	result := TextResult("Hello, World!")

	assert.Len(t, result.Content, 1)
	assert.False(t, result.IsError)

	textContent, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Hello, World!", textContent.Text)
}

func TestErrorResult(t *testing.T) {
	result := ErrorResult("Something went wrong")

	assert.Len(t, result.Content, 1)
	assert.True(t, result.IsError)
	assert.Equal(t, "Something went wrong", ResultText(result))
}

func greetingWidget() *CustomWidget {
	return NewWidget(&Widget{
		Identifier:  "show_greeting",
		Title:       "Show Greeting",
		Description: "Display a greeting card.",
		TemplateURI: "ui://widget/greeting.html",
		Invoking:    "Preparing greeting...",
		Invoked:     "Greeting ready",
		Component:   "greeting",
	}, func(_ context.Context, args map[string]any) (string, any, error) {
		name := args["name"].(string)

		return "Greeting: " + name, map[string]any{"greeting": "Hello, " + name}, nil
	},
		Field{Name: "name", Type: FieldString, Default: "world", Description: "Who to greet"},
		Field{Name: "loud", Type: FieldBoolean, Default: false},
	)
}

func TestNewWidget(t *testing.T) {
	cw := greetingWidget()

	assert.Equal(t, "show_greeting", cw.Widget.Identifier)
	assert.Len(t, cw.Fields, 2)
	assert.NotNil(t, cw.Render)
}

func TestCustomWidget_Registered(t *testing.T) {
	s := newTestServer(t, WithWidgets(greetingWidget()))

	tools := s.WidgetTools()
	require.Len(t, tools, 13)
	require.Equal(t, "show_greeting", tools[len(tools)-1].Name)

	result := s.CallTool(t.Context(), "show_greeting", map[string]any{"name": "Ada"})
	require.False(t, result.IsError, ResultText(result))
	require.Equal(t, "Greeting: Ada", result.Content[0].(*mcp.TextContent).Text)
	require.Equal(t, map[string]any{"greeting": "Hello, Ada"}, result.StructuredContent)

	result = s.CallTool(t.Context(), "show_greeting", map[string]any{"loud": "yes please"})
	require.True(t, result.IsError)
}

func TestCustomWidget_OnlyCustom(t *testing.T) {
	s := newTestServer(t, WithoutBuiltinWidgets(), WithWidgets(greetingWidget(), nil))

	require.Len(t, s.WidgetTools(), 1)
	require.Len(t, s.Tools(), 1)
}

func TestCustomWidget_InvalidSkipped(t *testing.T) {
	bad := NewWidget(&Widget{Identifier: "Show Bad", Title: "Bad", TemplateURI: "ui://widget/bad.html", Component: "bad"},
		func(context.Context, map[string]any) (string, any, error) { return "", nil, nil })

	s := newTestServer(t, WithWidgets(bad))
	require.Len(t, s.WidgetTools(), 12)
}
