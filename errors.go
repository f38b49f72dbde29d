package mcpapps

import "github.com/wagiedev/mcp-apps-go/internal/errors"

// Re-export error types from internal package

// AssetNotFoundError indicates no built HTML exists for a widget component.
type AssetNotFoundError = errors.AssetNotFoundError

// ConfigError indicates the configuration file could not be loaded.
type ConfigError = errors.ConfigError

// ProviderError indicates the chat model provider call failed.
type ProviderError = errors.ProviderError

// WidgetError indicates a widget definition could not be constructed.
type WidgetError = errors.WidgetError

// AppsError is the base interface for all server errors.
type AppsError = errors.AppsError

// Re-export sentinel errors from internal package.
var (
	// ErrUnknownTool indicates no tool has the requested name.
	ErrUnknownTool = errors.ErrUnknownTool

	// ErrUnknownResource indicates no widget is registered under a URI.
	ErrUnknownResource = errors.ErrUnknownResource

	// ErrNoAssets indicates the widget bundles have not been built.
	ErrNoAssets = errors.ErrNoAssets

	// ErrAPIKeyMissing indicates the chat simulator has no API key.
	ErrAPIKeyMissing = errors.ErrAPIKeyMissing

	// ErrInvalidResponse indicates the model provider returned an unusable response.
	ErrInvalidResponse = errors.ErrInvalidResponse

	// ErrMaxTurns indicates the agent exhausted its tool-calling turns.
	ErrMaxTurns = errors.ErrMaxTurns
)
