package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	mcpapps "github.com/wagiedev/mcp-apps-go"
)

func newChatCmd(g *globalFlags) *cobra.Command {
	var (
		conversation string
		endpoint     string
		model        string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Send one prompt through the chat simulator",
		Long: `Send one prompt through the chat simulator and print the reply.

The model is called with the widget tools. Tool calls run in process unless
--endpoint (or MCP_SERVER_URL) names a running MCP server. Requires
OPENAI_API_KEY.`,
		Example: `  mcp-apps chat "Show me a dashboard of our sales"
  mcp-apps chat --endpoint http://localhost:8000/mcp "Generate a QR code for https://example.com"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []mcpapps.Option

			if cmd.Flags().Changed("endpoint") {
				extra = append(extra, mcpapps.WithToolEndpoint(endpoint))
			}

			if model != "" {
				extra = append(extra, mcpapps.WithModel(model))
			}

			s, err := g.server(cmd, extra...)
			if err != nil {
				return err
			}

			resp, err := s.Chat(cmd.Context(), strings.Join(args, " "), conversation)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(resp)
			}

			fmt.Fprintln(out, resp.Message)

			if resp.Widget != nil {
				fmt.Fprintf(out, "\n[widget] %s (%d bytes of HTML)\n", resp.Widget.ToolName, len(resp.Widget.HTML))
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&conversation, "conversation", "", "Conversation id (default \"default\")")
	f.StringVar(&endpoint, "endpoint", "", "MCP endpoint to call tools on (default in process)")
	f.StringVar(&model, "model", "", "Chat model (default from config or OPENAI_MODEL)")
	f.BoolVar(&jsonOutput, "json", false, "Print the full response as JSON")

	return cmd
}
