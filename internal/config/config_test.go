package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]

		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", noEnv)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.False(t, cfg.AgentConfigured())
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"agent": {"model": "gpt-4.1", "toolEndpoint": "http://mcp:9000/mcp", "historyLength": 8, "timeout": "45s"},
		"server": {"corsOrigins": ["http://localhost:5173"]}
	}`)

	cfg, err := load(path, noEnv)
	require.NoError(t, err)
	require.Equal(t, "gpt-4.1", cfg.Agent.Model)
	require.Equal(t, "http://mcp:9000/mcp", cfg.Agent.ToolEndpoint)
	require.Equal(t, 8, cfg.Agent.HistoryLength)
	require.Equal(t, Duration(45*time.Second), cfg.Agent.Timeout)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	require.Equal(t, DefaultAddr, cfg.Server.Addr)
	require.Equal(t, DefaultMaxTurns, cfg.Agent.MaxTurns)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  addr: \":9000\"\n  sandboxAddr: \"\"\nagent:\n  historyLength: 4\n")

	cfg, err := load(path, noEnv)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Empty(t, cfg.Server.SandboxAddr)
	require.Equal(t, 4, cfg.Agent.HistoryLength)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: `{"agent": {"modle": "x"}}`, want: "/agent"},
		{name: "wrong type", content: `{"agent": {"historyLength": "many"}}`, want: "/agent/historyLength"},
		{name: "below minimum", content: `{"agent": {"historyLength": 0}}`, want: "/agent/historyLength"},
		{name: "bad url", content: `{"server": {"baseURL": "localhost"}}`, want: "/server/baseURL"},
		{name: "api key in file", content: `{"agent": {"apiKey": "sk-123"}}`, want: "/agent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.json", tt.content)

			_, err := load(path, noEnv)
			require.Error(t, err)
			require.ErrorContains(t, err, tt.want)

			_, ok := errors.AsType[*apperrors.ConfigError](err)
			require.True(t, ok)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.json"), noEnv)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"agent": `)

	_, err := load(path, noEnv)
	require.ErrorContains(t, err, "parse")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.json", `{"agent": {"model": "from-file"}}`)

	cfg, err := load(path, envMap(map[string]string{
		EnvBaseURL:      "https://apps.example.com/assets/",
		EnvAPIKey:       "sk-test",
		EnvModel:        "from-env",
		EnvMCPServerURL: "http://mcp.internal/mcp",
		EnvAssetsDir:    "  ",
	}))
	require.NoError(t, err)
	require.Equal(t, "https://apps.example.com/assets/", cfg.Server.BaseURL)
	require.Equal(t, "sk-test", cfg.Agent.APIKey)
	require.Equal(t, "from-env", cfg.Agent.Model)
	require.Equal(t, "http://mcp.internal/mcp", cfg.Agent.ToolEndpoint)
	require.Equal(t, DefaultAssetsDir, cfg.Server.AssetsDir)
	require.True(t, cfg.AgentConfigured())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.SandboxAddr = cfg.Server.Addr
	cfg.Agent.MaxTurns = 0

	err := cfg.Validate()
	require.ErrorContains(t, err, "sandboxAddr")
	require.ErrorContains(t, err, "maxTurns")

	_, err = load("", envMap(map[string]string{}))
	require.NoError(t, err)
}

func TestParse_Empty(t *testing.T) {
	cfg := Default()
	require.NoError(t, Parse([]byte("  \n"), cfg))
	require.Equal(t, Default(), cfg)
}

func TestDuration_Invalid(t *testing.T) {
	err := Parse([]byte(`{"agent": {"timeout": "soon"}}`), Default())
	require.ErrorContains(t, err, "invalid duration")
}
