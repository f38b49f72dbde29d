// Package mcpapps serves interactive UI widgets to MCP hosts.
//
// Each widget is an MCP tool paired with an HTML resource under the ui://
// scheme. A host calls the tool, receives a short narration plus structured
// content, and renders the resource named in the result's metadata, feeding
// the structured content to the widget as its input.
//
// # Basic Usage
//
// Serve the built-in widget catalog over streamable HTTP at /mcp:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := mcpapps.Serve(ctx,
//	    mcpapps.WithLogger(slog.Default()),
//	    mcpapps.WithAssetsDir("assets"),
//	    mcpapps.WithBaseURL("http://localhost:8000/assets"),
//	); err != nil {
//	    log.Fatal(err)
//	}
//
// The main listener also exposes a chat simulator (POST /chat) that drives
// an OpenAI-compatible model through the widget tools, a plain HTTP tool
// bridge (GET /tools, POST /tools/call), and the asset directory. A second
// sandbox listener serves rendered widget HTML under a
// Content-Security-Policy derived from the widget metadata.
//
// # In-Process Use
//
// WithServer builds the server without listeners:
//
//	err := mcpapps.WithServer(ctx, func(s *mcpapps.Server) error {
//	    result := s.CallTool(ctx, "show_qr", map[string]any{"text": "https://example.com"})
//	    if result.IsError {
//	        return errors.New(mcpapps.ResultText(result))
//	    }
//	    return nil
//	})
//
// # Custom Widgets
//
// Register application widgets next to the built-in catalog with NewWidget
// and WithWidgets. Arguments are validated against the declared fields
// before the RenderFunc runs; unknown fields are rejected with the list of
// valid names.
//
// # Error Handling
//
// Tool failures never surface as protocol errors: an unknown tool, invalid
// arguments or a failing handler produce a result with IsError set. Go
// errors are reserved for startup and the chat simulator:
//
//	if _, err := s.Chat(ctx, "show me a card", ""); errors.Is(err, mcpapps.ErrAPIKeyMissing) {
//	    // set OPENAI_API_KEY
//	}
package mcpapps
