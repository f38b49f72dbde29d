package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	mcpapps "github.com/wagiedev/mcp-apps-go"
	"github.com/wagiedev/mcp-apps-go/internal/logging"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	assetsDir  string
	baseURL    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "mcp-apps",
		Short: "Serve interactive MCP App widgets",
		Long: `mcp-apps serves a catalog of interactive widgets to MCP hosts.

Each widget is a tool paired with a ui:// HTML resource. The main listener
exposes the MCP endpoint at /mcp, a chat simulator at /chat, a plain HTTP
tool bridge at /tools, and the built widget assets at /assets. A sandbox
listener serves rendered widgets under a Content-Security-Policy.

Configuration comes from an optional JSON or YAML file, the environment
(BASE_URL, ASSETS_DIR, OPENAI_API_KEY, OPENAI_MODEL, OPENAI_BASE_URL,
MCP_SERVER_URL, GEOCODE_URL) and flags, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       mcpapps.Version,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	pf.StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVar(&g.assetsDir, "assets-dir", "", "Directory holding the built widget bundles")
	pf.StringVar(&g.baseURL, "base-url", "", "Public URL of the assets directory")

	root.AddCommand(
		newServeCmd(g),
		newSandboxCmd(g),
		newStdioCmd(g),
		newChatCmd(g),
		newToolsCmd(g),
	)

	return root
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(g.logLevel),
		Format: logging.ParseFormat(g.logFormat),
		Output: cmd.ErrOrStderr(),
	})
}

// options loads the config file and environment, then layers flags on top.
func (g *globalFlags) options(cmd *cobra.Command, extra ...mcpapps.Option) ([]mcpapps.Option, error) {
	cfg, err := mcpapps.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	opts := []mcpapps.Option{
		mcpapps.WithConfig(cfg),
		mcpapps.WithLogger(g.logger(cmd)),
	}

	if g.assetsDir != "" {
		opts = append(opts, mcpapps.WithAssetsDir(g.assetsDir))
	}

	if g.baseURL != "" {
		opts = append(opts, mcpapps.WithBaseURL(g.baseURL))
	}

	return append(opts, extra...), nil
}

func (g *globalFlags) server(cmd *cobra.Command, extra ...mcpapps.Option) (*mcpapps.Server, error) {
	opts, err := g.options(cmd, extra...)
	if err != nil {
		return nil, err
	}

	return mcpapps.New(opts...)
}
