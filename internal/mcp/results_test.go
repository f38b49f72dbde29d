package mcp

import (
	"testing"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func TestResultToMap(t *testing.T) {
	result := WidgetResult("Card: hi", map[string]any{"title": "hi"}, mcpgo.Meta{"k": "v"})
	result.Content = append(result.Content, ImageContent([]byte{1, 2}, "image/png"))

	got := ResultToMap(result)

	require.Equal(t, []map[string]any{
		{"type": "text", "text": "Card: hi"},
		{"type": "image", "data": []byte{1, 2}, "mimeType": "image/png"},
	}, got["content"])
	require.Equal(t, map[string]any{"title": "hi"}, got["structuredContent"])
	require.Equal(t, map[string]any{"k": "v"}, got["_meta"])
	require.NotContains(t, got, "isError")
}

func TestResultToMapError(t *testing.T) {
	got := ResultToMap(ErrorResult("boom"))

	require.Equal(t, true, got["isError"])
	require.NotContains(t, got, "structuredContent")
}

func TestResultToMapNil(t *testing.T) {
	require.Equal(t, map[string]any{"content": []map[string]any{}}, ResultToMap(nil))
}

func TestResultText(t *testing.T) {
	result := WidgetResult("Todo: 3 lists", map[string]any{"n": 3}, nil)

	require.Equal(t, "Todo: 3 lists\n{\"n\":3}", ResultText(result))
	require.Empty(t, ResultText(nil))
}
