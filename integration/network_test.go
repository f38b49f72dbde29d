//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	mcpapps "github.com/wagiedev/mcp-apps-go"
)

// TestGeocode_Nominatim queries the public geocoder.
func TestGeocode_Nominatim(t *testing.T) {
	if os.Getenv("MCP_APPS_NETWORK") == "" {
		t.Skip("set MCP_APPS_NETWORK=1 to reach the public geocoder")
	}

	_, session := startServer(t)

	result, err := session.CallTool(t.Context(), &mcp.CallToolParams{
		Name:      "geocode",
		Arguments: map[string]any{"query": "Eiffel Tower"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, mcpapps.ResultText(result))
	require.Contains(t, mcpapps.ResultText(result), "Found:")
}

// TestChat_OpenAI drives the real model through the widget tools.
func TestChat_OpenAI(t *testing.T) {
	cfg, err := mcpapps.LoadConfig("")
	require.NoError(t, err)

	if !cfg.AgentConfigured() {
		t.Skip("OPENAI_API_KEY not set")
	}

	s, _ := startServer(t, mcpapps.WithConfig(cfg), mcpapps.WithAssetsDir(assetsDir(t)))

	resp, err := s.Chat(t.Context(), "Show me a QR code for https://example.com", "integration")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Message)
	require.NotNil(t, resp.Widget)
	require.Equal(t, "show_qr", resp.Widget.ToolName)
}
