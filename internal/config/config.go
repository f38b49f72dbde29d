// Package config loads server and agent settings from an optional JSON or
// YAML file, then applies environment overrides.
//
// The file is checked against an embedded JSON Schema before it is decoded,
// so typos in keys are reported instead of silently ignored. Secrets are only
// read from the environment.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
)

//go:embed config.schema.json
var schemaJSON string

// Environment variables read by Load.
const (
	EnvBaseURL       = "BASE_URL"
	EnvAPIKey        = "OPENAI_API_KEY"
	EnvModel         = "OPENAI_MODEL"
	EnvAPIBaseURL    = "OPENAI_BASE_URL"
	EnvMCPServerURL  = "MCP_SERVER_URL"
	EnvAssetsDir     = "ASSETS_DIR"
	EnvGeocodeURL    = "GEOCODE_URL"
	defaultSchemaURL = "config.schema.json"
)

// Defaults.
const (
	DefaultAddr          = ":8000"
	DefaultSandboxAddr   = ":8001"
	DefaultBaseURL       = "http://localhost:8000/assets"
	DefaultAssetsDir     = "assets"
	DefaultModel         = "gpt-4o-mini"
	DefaultHistoryLength = 20
	DefaultMaxTurns      = 6
	DefaultAPIBaseURL    = "https://api.openai.com/v1"
	DefaultGeocodeURL    = "https://nominatim.openstreetmap.org"
	DefaultAgentTimeout  = 60 * time.Second
)

// Server configures the HTTP listeners.
type Server struct {
	// Addr is the main listener (MCP, chat, tools, assets).
	Addr string `yaml:"addr"`
	// SandboxAddr serves widget HTML with a CSP header. Empty disables it.
	SandboxAddr string `yaml:"sandboxAddr"`
	// BaseURL roots rewritten asset references and the CSP origin.
	BaseURL string `yaml:"baseURL"`
	// AssetsDir holds the built widget bundles.
	AssetsDir string `yaml:"assetsDir"`
	// CORSOrigins lists allowed origins. Empty allows any.
	CORSOrigins []string `yaml:"corsOrigins"`
	// FrameAncestors lists hosts allowed to embed sandboxed widgets.
	FrameAncestors []string `yaml:"frameAncestors"`
	// StrictAssets skips widgets whose HTML bundle is missing at startup.
	StrictAssets bool `yaml:"strictAssets"`
}

// Agent configures the chat simulator.
type Agent struct {
	// Model is the chat completion model name.
	Model string `yaml:"model"`
	// ToolEndpoint is the MCP endpoint the agent connects to, such as
	// "http://localhost:8000/mcp". Empty calls the in-process tools.
	ToolEndpoint string `yaml:"toolEndpoint"`
	// HistoryLength bounds each conversation's stored turns.
	HistoryLength int `yaml:"historyLength"`
	// MaxTurns bounds model round trips per prompt.
	MaxTurns int `yaml:"maxTurns"`
	// APIBaseURL is the OpenAI-compatible API root.
	APIBaseURL string `yaml:"apiBaseURL"`
	// Timeout bounds one agent run, as a Go duration string.
	Timeout Duration `yaml:"timeout"`
	// APIKey is only ever read from the environment.
	APIKey string `yaml:"-"`
}

// Geocode configures the map widget's place search.
type Geocode struct {
	URL string `yaml:"url"`
}

// Config is the full process configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Agent   Agent   `yaml:"agent"`
	Geocode Geocode `yaml:"geocode"`
}

// Duration is a time.Duration decoded from strings like "45s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0

		return nil
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(v)

	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:        DefaultAddr,
			SandboxAddr: DefaultSandboxAddr,
			BaseURL:     DefaultBaseURL,
			AssetsDir:   DefaultAssetsDir,
		},
		Agent: Agent{
			Model:         DefaultModel,
			HistoryLength: DefaultHistoryLength,
			MaxTurns:      DefaultMaxTurns,
			APIBaseURL:    DefaultAPIBaseURL,
			Timeout:       Duration(DefaultAgentTimeout),
		},
		Geocode: Geocode{URL: DefaultGeocodeURL},
	}
}

// Load reads path (when non-empty) over the defaults and applies the
// environment. A missing or invalid file is a *errors.ConfigError.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &apperrors.ConfigError{Path: path, Err: err}
		}

		if err := Parse(data, cfg); err != nil {
			return nil, &apperrors.ConfigError{Path: path, Err: err}
		}
	}

	cfg.applyEnv(lookup)

	if err := cfg.Validate(); err != nil {
		return nil, &apperrors.ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

// Parse validates data against the config schema and decodes it into cfg.
// Keys absent from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if err := checkSchema(doc); err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func checkSchema(doc any) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(defaultSchemaURL, strings.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}

	schema, err := compiler.Compile(defaultSchemaURL)
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	// Round-trip through JSON so YAML scalars take JSON types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize config: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		return fmt.Errorf("normalize config: %w", err)
	}

	if err := schema.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return errors.New(describe(verr))
		}

		return err
	}

	return nil
}

// describe flattens a schema error tree into "location: message" lines.
func describe(err *jsonschema.ValidationError) string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}

		return loc + ": " + err.Message
	}

	lines := make([]string, 0, len(err.Causes))
	for _, cause := range err.Causes {
		lines = append(lines, describe(cause))
	}

	return strings.Join(lines, "; ")
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set(&c.Server.BaseURL, EnvBaseURL)
	set(&c.Server.AssetsDir, EnvAssetsDir)
	set(&c.Agent.APIKey, EnvAPIKey)
	set(&c.Agent.Model, EnvModel)
	set(&c.Agent.APIBaseURL, EnvAPIBaseURL)
	set(&c.Agent.ToolEndpoint, EnvMCPServerURL)
	set(&c.Geocode.URL, EnvGeocodeURL)
}

// Validate checks invariants the schema cannot express after overrides.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	if c.Server.SandboxAddr != "" && c.Server.SandboxAddr == c.Server.Addr {
		errs = append(errs, errors.New("server.sandboxAddr must differ from server.addr"))
	}

	if c.Agent.HistoryLength < 1 {
		errs = append(errs, errors.New("agent.historyLength must be at least 1"))
	}

	if c.Agent.MaxTurns < 1 {
		errs = append(errs, errors.New("agent.maxTurns must be at least 1"))
	}

	return errors.Join(errs...)
}

// AgentConfigured reports whether an API key is available.
func (c *Config) AgentConfigured() bool {
	return c.Agent.APIKey != ""
}
