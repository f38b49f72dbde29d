//go:build integration

package integration

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	mcpapps "github.com/wagiedev/mcp-apps-go"
)

var components = []string{
	"boilerplate", "carousel", "list", "gallery", "dashboard", "solar_system",
	"todo", "shop", "qr", "scenario_modeler", "system_monitor", "map",
}

// assetsDir returns MCP_APPS_ASSETS_DIR when set, otherwise a directory of
// placeholder bundles.
func assetsDir(t *testing.T) string {
	t.Helper()

	if dir := os.Getenv("MCP_APPS_ASSETS_DIR"); dir != "" {
		return dir
	}

	dir := t.TempDir()
	for _, name := range components {
		html := `<!doctype html><script type="module" src="./` + name + `-abc123.js"></script>`
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+"-abc123.html"), []byte(html), 0o600))
	}

	return dir
}

// startServer serves a fresh Server over HTTP and returns a connected MCP
// client session.
func startServer(t *testing.T, opts ...mcpapps.Option) (*mcpapps.Server, *mcp.ClientSession) {
	t.Helper()

	s, err := mcpapps.New(append([]mcpapps.Option{mcpapps.WithAssetsDir(assetsDir(t))}, opts...)...)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	client := mcp.NewClient(&mcp.Implementation{Name: "integration", Version: "v0.0.1"}, nil)

	session, err := client.Connect(t.Context(), &mcp.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return s, session
}
