package mcpapps

import (
	"log/slog"
	"net/http"

	"github.com/wagiedev/mcp-apps-go/internal/config"
	"github.com/wagiedev/mcp-apps-go/internal/llm"
)

// Config is the full process configuration.
type Config = config.Config

// DefaultConfig returns the built-in configuration without environment
// overrides.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a JSON or YAML config file over the defaults and applies
// the environment. An empty path loads defaults plus environment.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ChatModel completes a conversation. Supply one with WithChatModel to run
// the chat simulator against something other than the OpenAI API.
type ChatModel = llm.ChatModel

// Options holds everything New needs.
type Options struct {
	// Config is the process configuration. Defaults to DefaultConfig().
	Config *Config
	// Logger receives server diagnostics. Nil disables logging.
	Logger *slog.Logger
	// HTTPClient is used for outbound calls (model API, geocoding).
	HTTPClient *http.Client
	// ChatModel replaces the OpenAI client built from Config.Agent.
	ChatModel ChatModel
	// Widgets are registered after the built-in catalog.
	Widgets []*CustomWidget
	// DisableBuiltins registers only Widgets.
	DisableBuiltins bool
	// Name and Version identify the MCP server implementation.
	Name    string
	Version string
}

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options over the defaults.
func applyOptions(opts []Option) *Options {
	options := &Options{
		Config:  config.Default(),
		Name:    DefaultServerName,
		Version: Version,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.Config == nil {
		options.Config = config.Default()
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for server diagnostics.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithConfig replaces the whole configuration. Apply it before the
// field-level options below, which edit the active configuration.
func WithConfig(cfg *Config) Option {
	return func(o *Options) {
		if cfg == nil {
			return
		}

		c := *cfg
		o.Config = &c
	}
}

// WithImplementation sets the name and version reported to MCP clients.
func WithImplementation(name, version string) Option {
	return func(o *Options) {
		o.Name = name
		o.Version = version
	}
}

// WithHTTPClient sets the client used for outbound calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// ===== Listeners =====

// WithAddr sets the main listener address, e.g. ":8000".
func WithAddr(addr string) Option {
	return func(o *Options) {
		o.Config.Server.Addr = addr
	}
}

// WithSandboxAddr sets the sandbox listener address. Empty disables it.
func WithSandboxAddr(addr string) Option {
	return func(o *Options) {
		o.Config.Server.SandboxAddr = addr
	}
}

// WithCORSOrigins restricts cross-origin access. Empty allows any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(o *Options) {
		o.Config.Server.CORSOrigins = origins
	}
}

// WithFrameAncestors lists the hosts allowed to embed sandboxed widgets.
func WithFrameAncestors(origins ...string) Option {
	return func(o *Options) {
		o.Config.Server.FrameAncestors = origins
	}
}

// ===== Assets =====

// WithBaseURL sets the public URL of the assets directory. Relative asset
// references in widget HTML are rewritten against it and its origin heads
// the CSP domain lists.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.Config.Server.BaseURL = baseURL
	}
}

// WithAssetsDir sets the directory holding the built widget bundles.
func WithAssetsDir(dir string) Option {
	return func(o *Options) {
		o.Config.Server.AssetsDir = dir
	}
}

// WithStrictAssets skips widgets whose HTML bundle is missing at startup.
func WithStrictAssets(strict bool) Option {
	return func(o *Options) {
		o.Config.Server.StrictAssets = strict
	}
}

// ===== Widgets =====

// WithWidgets registers custom widgets after the built-in catalog.
func WithWidgets(widgets ...*CustomWidget) Option {
	return func(o *Options) {
		o.Widgets = append(o.Widgets, widgets...)
	}
}

// WithoutBuiltinWidgets registers only the widgets given by WithWidgets.
func WithoutBuiltinWidgets() Option {
	return func(o *Options) {
		o.DisableBuiltins = true
	}
}

// WithGeocodeURL sets the Nominatim-compatible endpoint used by geocode.
func WithGeocodeURL(url string) Option {
	return func(o *Options) {
		o.Config.Geocode.URL = url
	}
}

// ===== Chat Simulator =====

// WithAgent configures the OpenAI-backed chat simulator.
func WithAgent(model, apiKey string) Option {
	return func(o *Options) {
		if model != "" {
			o.Config.Agent.Model = model
		}

		o.Config.Agent.APIKey = apiKey
	}
}

// WithModel sets the chat completion model name.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Config.Agent.Model = model
	}
}

// WithChatModel runs the chat simulator on model instead of the OpenAI API.
func WithChatModel(model ChatModel) Option {
	return func(o *Options) {
		o.ChatModel = model
	}
}

// WithToolEndpoint points the chat simulator at a remote MCP endpoint.
// Empty uses the in-process tools.
func WithToolEndpoint(endpoint string) Option {
	return func(o *Options) {
		o.Config.Agent.ToolEndpoint = endpoint
	}
}

// WithHistoryLength bounds each conversation's stored turns.
func WithHistoryLength(n int) Option {
	return func(o *Options) {
		o.Config.Agent.HistoryLength = n
	}
}
