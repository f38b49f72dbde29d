package errors

import (
	"errors"
	"fmt"
)

// AppsError is the base interface for all server errors.
type AppsError interface {
	error
	IsAppsError() bool
}

// Compile-time verification that all error types implement AppsError.
var (
	_ AppsError = (*AssetNotFoundError)(nil)
	_ AppsError = (*ConfigError)(nil)
	_ AppsError = (*ProviderError)(nil)
	_ AppsError = (*WidgetError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrUnknownTool indicates no widget or data-only tool has the requested name.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrUnknownResource indicates no widget is registered under the requested URI.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrNoAssets indicates the assets directory is missing or empty.
	ErrNoAssets = errors.New("widget assets not built")

	// ErrAPIKeyMissing indicates the chat simulator has no model API key.
	ErrAPIKeyMissing = errors.New("model API key not configured")

	// ErrInvalidResponse indicates the model provider returned an unusable response.
	ErrInvalidResponse = errors.New("invalid response from model provider")

	// ErrMaxTurns indicates the agent exhausted its tool-calling turns.
	ErrMaxTurns = errors.New("agent exceeded maximum turns")
)

// AssetNotFoundError indicates no built HTML exists for a widget component.
type AssetNotFoundError struct {
	Component string
	Dir       string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf(
		"widget HTML for %q not found in %s: build the widget bundles to generate the assets",
		e.Component, e.Dir,
	)
}

// Unwrap lets callers match any missing asset with errors.Is(err, ErrNoAssets).
func (e *AssetNotFoundError) Unwrap() error {
	return ErrNoAssets
}

// IsAppsError implements AppsError.
func (e *AssetNotFoundError) IsAppsError() bool { return true }

// ConfigError indicates the configuration file could not be loaded.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}

	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsAppsError implements AppsError.
func (e *ConfigError) IsAppsError() bool { return true }

// ProviderError indicates the model provider call failed.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}

	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsAppsError implements AppsError.
func (e *ProviderError) IsAppsError() bool { return true }

// WidgetError indicates a widget definition could not be constructed.
type WidgetError struct {
	Widget string
	Err    error
}

func (e *WidgetError) Error() string {
	return fmt.Sprintf("widget %s: %v", e.Widget, e.Err)
}

func (e *WidgetError) Unwrap() error {
	return e.Err
}

// IsAppsError implements AppsError.
func (e *WidgetError) IsAppsError() bool { return true }
