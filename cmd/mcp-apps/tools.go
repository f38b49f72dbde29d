package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/wagiedev/mcp-apps-go/internal/meta"
)

func newToolsCmd(g *globalFlags) *cobra.Command {
	var (
		all        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.server(cmd)
			if err != nil {
				return err
			}

			tools := s.WidgetTools()
			if all {
				tools = s.Tools()
			}

			out := cmd.OutOrStdout()

			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(map[string]any{"tools": tools})
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRESOURCE\tDESCRIPTION")

			for _, t := range tools {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, resourceURI(t), firstLine(t.Description))
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include data-only tools")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print full tool definitions as JSON")

	return cmd
}

func resourceURI(t *mcp.Tool) string {
	if uri, ok := t.Meta[meta.KeyOutputTemplate].(string); ok {
		return uri
	}

	return "-"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")

	return line
}
