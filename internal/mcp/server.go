package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Method names intercepted by the dispatch middleware.
const (
	methodCallTool     = "tools/call"
	methodReadResource = "resources/read"
)

// Backend is the dispatcher the MCP server delegates to.
type Backend interface {
	// ListTools returns every widget and data-only tool declaration.
	ListTools() []*mcp.Tool
	// ListResources returns one resource per widget.
	ListResources() []*mcp.Resource
	// ListResourceTemplates returns one resource template per widget.
	ListResourceTemplates() []*mcp.ResourceTemplate
	// CallTool executes a tool. Failures are encoded in the result.
	CallTool(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult
	// ReadResource returns a widget's HTML. Unknown URIs yield empty contents.
	ReadResource(ctx context.Context, uri string) *mcp.ReadResourceResult
}

// NewServer builds an MCP server backed by the dispatcher.
func NewServer(backend Backend, impl *mcp.Implementation, logger *slog.Logger) *mcp.Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	server := mcp.NewServer(impl, nil)

	for _, tool := range backend.ListTools() {
		name := tool.Name
		server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				//nolint:nilerr // Intentionally return nil error - error is encoded in the result
				return ErrorResult("Invalid arguments: " + err.Error()), nil
			}

			return backend.CallTool(ctx, name, args), nil
		})
	}

	read := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return backend.ReadResource(ctx, req.Params.URI), nil
	}

	for _, res := range backend.ListResources() {
		server.AddResource(res, read)
	}

	for _, tmpl := range backend.ListResourceTemplates() {
		server.AddResourceTemplate(tmpl, read)
	}

	server.AddReceivingMiddleware(dispatchMiddleware(backend, logger))

	return server
}

// dispatchMiddleware answers tools/call and resources/read from the backend
// for every name and URI, registered or not.
func dispatchMiddleware(backend Backend, logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			switch method {
			case methodCallTool:
				call, ok := req.(*mcp.CallToolRequest)
				if !ok || call.Params == nil {
					break
				}

				args, err := ParseArguments(call)
				if err != nil {
					return ErrorResult("Invalid arguments: " + err.Error()), nil
				}

				logger.DebugContext(ctx, "tools/call", "tool", call.Params.Name)

				return backend.CallTool(ctx, call.Params.Name, args), nil

			case methodReadResource:
				read, ok := req.(*mcp.ReadResourceRequest)
				if !ok || read.Params == nil {
					break
				}

				logger.DebugContext(ctx, "resources/read", "uri", read.Params.URI)

				return backend.ReadResource(ctx, read.Params.URI), nil
			}

			return next(ctx, method, req)
		}
	}
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil {
		return make(map[string]any), nil
	}

	return DecodeArguments(req.Params.Arguments)
}

// DecodeArguments unmarshals raw JSON arguments into a map. Empty input and
// JSON null decode to an empty map.
func DecodeArguments(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}

	if args == nil {
		args = make(map[string]any)
	}

	return args, nil
}
