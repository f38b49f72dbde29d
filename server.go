package mcpapps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/mcp-apps-go/internal/agent"
	"github.com/wagiedev/mcp-apps-go/internal/assets"
	"github.com/wagiedev/mcp-apps-go/internal/dispatch"
	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
	"github.com/wagiedev/mcp-apps-go/internal/httpapi"
	"github.com/wagiedev/mcp-apps-go/internal/llm"
	"github.com/wagiedev/mcp-apps-go/internal/logging"
	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
	"github.com/wagiedev/mcp-apps-go/internal/meta"
	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
	"github.com/wagiedev/mcp-apps-go/internal/widgets"
)

const (
	// Version is the server version reported to MCP clients.
	Version = "0.1.0"

	// DefaultServerName is the implementation name reported to MCP clients.
	DefaultServerName = "mcp-apps-go"

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// ChatResponse is the outcome of one chat prompt.
type ChatResponse = agent.Response

// ChatWidget is the widget a chat response asks the client to render.
type ChatWidget = agent.WidgetResult

// Server is an assembled widget server: asset loader, tool registry,
// dispatcher, MCP server, HTTP handlers and the optional chat simulator.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	loader     *assets.Loader
	meta       *meta.Builder
	dispatcher *dispatch.Dispatcher
	mcp        *mcp.Server
	runner     *agent.Runner
	api        *httpapi.API
	sandbox    *httpapi.Sandbox
}

// New assembles a Server. Widgets that fail to construct are logged and
// skipped; configuration errors are returned as *ConfigError.
func New(opts ...Option) (*Server, error) {
	o := applyOptions(opts)
	cfg := o.Config
	logger := logging.OrNop(o.Logger)

	if err := cfg.Validate(); err != nil {
		return nil, &apperrors.ConfigError{Err: err}
	}

	loader := assets.NewLoader(cfg.Server.AssetsDir, cfg.Server.BaseURL)
	mb := meta.NewBuilder(loader.BaseURL())

	deps := widgets.Deps{
		Meta:       mb,
		Logger:     logger,
		HTTPClient: o.HTTPClient,
		GeocodeURL: cfg.Geocode.URL,
	}

	var ctors []registry.Constructor
	if !o.DisableBuiltins {
		ctors = widgets.Catalog(deps)
	}

	for _, cw := range o.Widgets {
		if cw == nil || cw.Widget == nil || cw.Render == nil {
			logger.Warn("skipping incomplete custom widget")

			continue
		}

		ctors = append(ctors, widgets.Custom(deps, cw.Widget, cw.Fields, widgets.CustomFunc(cw.Render)))
	}

	regOpts := []registry.Option{registry.WithLogger(logger)}
	if cfg.Server.StrictAssets {
		regOpts = append(regOpts, registry.WithPreflight(func(w *widget.Widget) error {
			_, err := loader.Resolve(w.Component)

			return err
		}))
	}

	reg := registry.Build(ctors, regOpts...)
	d := dispatch.New(reg, mb, loader, dispatch.WithLogger(logger))

	s := &Server{
		cfg:        *cfg,
		logger:     logger,
		loader:     loader,
		meta:       mb,
		dispatcher: d,
		mcp:        internalmcp.NewServer(d, &mcp.Implementation{Name: o.Name, Version: o.Version}, logger),
	}

	runner, err := s.newRunner(o)
	if err != nil {
		return nil, err
	}

	s.runner = runner

	apiCfg := httpapi.Config{
		MCP:       s.mcp,
		Tools:     d,
		Model:     cfg.Agent.Model,
		AssetsDir: cfg.Server.AssetsDir,
		CORS:      httpapi.CORSConfig{AllowedOrigins: cfg.Server.CORSOrigins},
		Logger:    logger.With("listener", "main"),
	}

	if runner != nil {
		apiCfg.Chat = &timedChat{runner: runner, timeout: time.Duration(cfg.Agent.Timeout)}
	}

	s.api = httpapi.New(apiCfg)
	s.sandbox = httpapi.NewSandbox(httpapi.SandboxConfig{
		Pages:          d,
		Meta:           mb,
		AssetsDir:      cfg.Server.AssetsDir,
		FrameAncestors: cfg.Server.FrameAncestors,
		CORS:           httpapi.CORSConfig{AllowedOrigins: cfg.Server.CORSOrigins},
		Logger:         logger.With("listener", "sandbox"),
	})

	logger.Info("widget server ready",
		"widgets", len(reg.Widgets()),
		"data_tools", len(reg.DataTools()),
		"assets_dir", cfg.Server.AssetsDir,
		"base_url", loader.BaseURL(),
		"chat", runner != nil,
	)

	return s, nil
}

// newRunner builds the chat simulator, or returns nil when no model is
// configured.
func (s *Server) newRunner(o *Options) (*agent.Runner, error) {
	model := o.ChatModel

	if model == nil {
		if !o.Config.AgentConfigured() {
			return nil, nil
		}

		openai, err := llm.NewOpenAI(llm.Config{
			APIKey:     o.Config.Agent.APIKey,
			Model:      o.Config.Agent.Model,
			BaseURL:    o.Config.Agent.APIBaseURL,
			HTTPClient: o.HTTPClient,
		})
		if err != nil {
			return nil, err
		}

		model = openai
	}

	var connector agent.Connector = &agent.LocalConnector{Backend: s.dispatcher}
	if endpoint := o.Config.Agent.ToolEndpoint; endpoint != "" {
		connector = agent.NewRemoteConnector(endpoint, &mcp.Implementation{Name: o.Name + "-agent", Version: o.Version})
	}

	return agent.NewRunner(model, connector, s.dispatcher,
		agent.WithLogger(s.logger),
		agent.WithHistory(agent.NewHistory(o.Config.Agent.HistoryLength)),
		agent.WithMaxTurns(o.Config.Agent.MaxTurns),
	), nil
}

// timedChat bounds each agent run.
type timedChat struct {
	runner  *agent.Runner
	timeout time.Duration
}

func (c *timedChat) Run(ctx context.Context, prompt, conversationID string) (*agent.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return c.runner.Run(ctx, prompt, conversationID)
}

func (c *timedChat) Reset(conversationID string) {
	c.runner.Reset(conversationID)
}

// Config returns a copy of the active configuration.
func (s *Server) Config() Config {
	return s.cfg
}

// MCPServer returns the underlying MCP server, e.g. to run it over stdio.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Handler serves the main listener: /mcp, /chat, /tools, /assets.
func (s *Server) Handler() http.Handler {
	return s.api
}

// SandboxHandler serves widget HTML under a Content-Security-Policy.
func (s *Server) SandboxHandler() http.Handler {
	return s.sandbox
}

// Tools lists every callable tool, widgets first.
func (s *Server) Tools() []*mcp.Tool {
	return s.dispatcher.ListTools()
}

// WidgetTools lists the tools that render a widget.
func (s *Server) WidgetTools() []*mcp.Tool {
	return s.dispatcher.WidgetTools()
}

// CallTool invokes a tool in process. Failures are reported in the result.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	if args == nil {
		args = map[string]any{}
	}

	return s.dispatcher.CallTool(ctx, name, args)
}

// ReadResource returns a widget's HTML resource.
func (s *Server) ReadResource(ctx context.Context, uri string) *mcp.ReadResourceResult {
	return s.dispatcher.ReadResource(ctx, uri)
}

// WidgetHTML returns the rendered HTML of the widget behind a tool name.
func (s *Server) WidgetHTML(toolName string) (string, error) {
	return s.dispatcher.WidgetHTML(toolName)
}

// ClearAssetCache drops cached widget HTML so rebuilt bundles are re-read.
func (s *Server) ClearAssetCache() {
	s.loader.ClearCache()
}

// ChatConfigured reports whether the chat simulator is available.
func (s *Server) ChatConfigured() bool {
	return s.runner != nil
}

// Chat sends one prompt through the chat simulator.
func (s *Server) Chat(ctx context.Context, prompt, conversationID string) (*ChatResponse, error) {
	if s.runner == nil {
		return nil, apperrors.ErrAPIKeyMissing
	}

	chat := &timedChat{runner: s.runner, timeout: time.Duration(s.cfg.Agent.Timeout)}

	return chat.Run(ctx, prompt, conversationID)
}

// ResetChat forgets a conversation.
func (s *Server) ResetChat(conversationID string) {
	if s.runner != nil {
		s.runner.Reset(conversationID)
	}
}

// ListenAndServe runs the main listener, plus the sandbox listener when one
// is configured, until ctx is cancelled or a listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	s.serve(gCtx, g, "main", s.cfg.Server.Addr, s.api)

	if s.cfg.Server.SandboxAddr != "" {
		s.serve(gCtx, g, "sandbox", s.cfg.Server.SandboxAddr, s.sandbox)
	}

	return g.Wait()
}

// ListenAndServeSandbox runs only the sandbox listener.
func (s *Server) ListenAndServeSandbox(ctx context.Context) error {
	if s.cfg.Server.SandboxAddr == "" {
		return &apperrors.ConfigError{Err: errors.New("server.sandboxAddr is not set")}
	}

	g, gCtx := errgroup.WithContext(ctx)
	s.serve(gCtx, g, "sandbox", s.cfg.Server.SandboxAddr, s.sandbox)

	return g.Wait()
}

func (s *Server) serve(ctx context.Context, g *errgroup.Group, name, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g.Go(func() error {
		s.logger.Info("listening", "listener", name, "addr", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s listener: %w", name, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down", "listener", name)

		return srv.Shutdown(shutdownCtx)
	})
}
