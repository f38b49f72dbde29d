package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	mcpapps "github.com/wagiedev/mcp-apps-go"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MCP_SERVER_URL", "")

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestToolsCommand_Table(t *testing.T) {
	out, err := run(t, "tools", "--assets-dir", t.TempDir(), "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	require.True(t, strings.HasPrefix(lines[0], "NAME"))
	require.Contains(t, lines[1], "show_card")
	require.Contains(t, lines[1], "ui://widget/boilerplate.html")
	require.NotContains(t, out, "poll_system_stats")
}

func TestToolsCommand_AllJSON(t *testing.T) {
	out, err := run(t, "tools", "--all", "--json", "--log-level", "error")
	require.NoError(t, err)

	var body struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Tools, 14)
}

func TestToolsCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  bogus: true\n"), 0o600))

	_, err := run(t, "tools", "--config", path)

	var cfgErr *mcpapps.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestChatCommand_RequiresKey(t *testing.T) {
	_, err := run(t, "chat", "--log-level", "error", "show", "me", "a", "card")
	require.ErrorIs(t, err, mcpapps.ErrAPIKeyMissing)
}

func TestChatCommand_RequiresPrompt(t *testing.T) {
	_, err := run(t, "chat")
	require.Error(t, err)
}

func TestRootCommand_Version(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, mcpapps.Version)
}
