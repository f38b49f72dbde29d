package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssetNotFoundError(t *testing.T) {
	err := &AssetNotFoundError{Component: "carousel", Dir: "/srv/assets"}

	require.Equal(
		t,
		`widget HTML for "carousel" not found in /srv/assets: build the widget bundles to generate the assets`,
		err.Error(),
	)
	require.ErrorIs(t, err, ErrNoAssets)
	require.True(t, err.IsAppsError())
}

func TestConfigError(t *testing.T) {
	root := errors.New("unexpected EOF")
	err := &ConfigError{Path: "config.json", Err: root}

	require.Equal(t, "invalid config config.json: unexpected EOF", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsAppsError())
}

func TestProviderError_WithUnderlyingError(t *testing.T) {
	root := errors.New("connection refused")
	err := &ProviderError{Provider: "openai", Message: "request failed", Err: root}

	require.Equal(t, "openai: request failed: connection refused", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsAppsError())
}

func TestProviderError_WithStatusOnly(t *testing.T) {
	err := &ProviderError{Provider: "openai", Message: "rate limited", StatusCode: 429}

	require.Equal(t, "openai: rate limited (status 429)", err.Error())
	require.NoError(t, err.Unwrap())
}

func TestProviderError_MessageOnly(t *testing.T) {
	err := &ProviderError{Provider: "openai", Message: "empty choices"}

	require.Equal(t, "openai: empty choices", err.Error())
}

func TestWidgetError(t *testing.T) {
	root := errors.New("duplicate field")
	err := &WidgetError{Widget: "show_card", Err: root}

	require.Equal(t, "widget show_card: duplicate field", err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsAppsError())
}

func TestErrorsAsType(t *testing.T) {
	var err error = &AssetNotFoundError{Component: "qr", Dir: "assets"}

	target, ok := errors.AsType[*AssetNotFoundError](err)
	require.True(t, ok)
	require.Equal(t, "qr", target.Component)

	var base AppsError
	require.True(t, errors.As(err, &base))
}
