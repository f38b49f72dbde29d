package agent

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
)

// ToolSession is an open connection to the widget tools.
type ToolSession interface {
	ListTools(ctx context.Context) ([]*mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	Close() error
}

// Connector opens a ToolSession for one run.
type Connector interface {
	Connect(ctx context.Context) (ToolSession, error)
}

// RemoteConnector reaches the tools over streamable HTTP MCP.
type RemoteConnector struct {
	Endpoint string
	Client   *mcp.Client
}

// NewRemoteConnector creates a connector for an MCP endpoint such as
// "http://localhost:8000/mcp".
func NewRemoteConnector(endpoint string, impl *mcp.Implementation) *RemoteConnector {
	return &RemoteConnector{
		Endpoint: endpoint,
		Client:   mcp.NewClient(impl, nil),
	}
}

// Connect implements Connector.
func (c *RemoteConnector) Connect(ctx context.Context) (ToolSession, error) {
	session, err := c.Client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: c.Endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", c.Endpoint, err)
	}

	return &remoteSession{session: session}, nil
}

type remoteSession struct {
	session *mcp.ClientSession
}

func (s *remoteSession) ListTools(ctx context.Context) ([]*mcp.Tool, error) {
	var tools []*mcp.Tool

	for tool, err := range s.session.Tools(ctx, nil) {
		if err != nil {
			return nil, err
		}

		tools = append(tools, tool)
	}

	return tools, nil
}

func (s *remoteSession) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	return s.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
}

func (s *remoteSession) Close() error {
	return s.session.Close()
}

// LocalConnector calls an in-process backend directly.
type LocalConnector struct {
	Backend internalmcp.Backend
}

// Connect implements Connector.
func (c LocalConnector) Connect(context.Context) (ToolSession, error) {
	return localSession(c), nil
}

type localSession struct {
	Backend internalmcp.Backend
}

func (s localSession) ListTools(context.Context) ([]*mcp.Tool, error) {
	return s.Backend.ListTools(), nil
}

func (s localSession) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	return s.Backend.CallTool(ctx, name, args), nil
}

func (localSession) Close() error { return nil }
