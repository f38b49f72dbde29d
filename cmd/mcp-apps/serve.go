package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	mcpapps "github.com/wagiedev/mcp-apps-go"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var (
		addr        string
		sandboxAddr string
		noSandbox   bool
		strict      bool
		cors        []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP endpoint, chat simulator and asset server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []mcpapps.Option

			if cmd.Flags().Changed("addr") {
				extra = append(extra, mcpapps.WithAddr(addr))
			}

			if noSandbox {
				extra = append(extra, mcpapps.WithSandboxAddr(""))
			} else if cmd.Flags().Changed("sandbox-addr") {
				extra = append(extra, mcpapps.WithSandboxAddr(sandboxAddr))
			}

			if cmd.Flags().Changed("strict-assets") {
				extra = append(extra, mcpapps.WithStrictAssets(strict))
			}

			if len(cors) > 0 {
				extra = append(extra, mcpapps.WithCORSOrigins(cors...))
			}

			s, err := g.server(cmd, extra...)
			if err != nil {
				return err
			}

			return s.ListenAndServe(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8000", "Main listener address")
	f.StringVar(&sandboxAddr, "sandbox-addr", ":8001", "Sandbox listener address")
	f.BoolVar(&noSandbox, "no-sandbox", false, "Do not start the sandbox listener")
	f.BoolVar(&strict, "strict-assets", false, "Skip widgets whose HTML bundle is missing")
	f.StringSliceVar(&cors, "cors-origin", nil, "Allowed CORS origin (repeatable; default any)")

	return cmd
}

func newSandboxCmd(g *globalFlags) *cobra.Command {
	var (
		addr      string
		ancestors []string
	)

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run only the sandbox listener that renders widgets under a CSP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []mcpapps.Option

			if cmd.Flags().Changed("addr") {
				extra = append(extra, mcpapps.WithSandboxAddr(addr))
			}

			if len(ancestors) > 0 {
				extra = append(extra, mcpapps.WithFrameAncestors(ancestors...))
			}

			s, err := g.server(cmd, extra...)
			if err != nil {
				return err
			}

			return s.ListenAndServeSandbox(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8001", "Sandbox listener address")
	cmd.Flags().StringSliceVar(&ancestors, "frame-ancestor", nil, "Host origin allowed to embed widgets (repeatable)")

	return cmd
}

func newStdioCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve the widget tools over MCP stdio",
		Long: `Serve the widget tools over MCP stdio. Reads JSON-RPC from stdin and
writes responses to stdout; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.server(cmd)
			if err != nil {
				return err
			}

			return s.MCPServer().Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
