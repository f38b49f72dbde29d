package mcpapps

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAssetNotFoundError_Creation tests AssetNotFoundError formatting and unwrapping.
func TestAssetNotFoundError_Creation(t *testing.T) {
	err := &AssetNotFoundError{Component: "todo", Dir: "/srv/assets"}

	require.Contains(t, err.Error(), `"todo"`)
	require.Contains(t, err.Error(), "/srv/assets")
	require.ErrorIs(t, err, ErrNoAssets)
}

// TestConfigError_WithPath tests ConfigError with and without a file path.
func TestConfigError_WithPath(t *testing.T) {
	inner := fmt.Errorf("bad yaml")

	err := &ConfigError{Path: "config.yaml", Err: inner}
	require.Equal(t, "invalid config config.yaml: bad yaml", err.Error())
	require.ErrorIs(t, err, inner)

	err = &ConfigError{Err: inner}
	require.Equal(t, "invalid config: bad yaml", err.Error())
}

// TestProviderError_Formatting tests the three ProviderError shapes.
func TestProviderError_Formatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ProviderError
		want string
	}{
		{
			name: "wrapped",
			err:  &ProviderError{Provider: "openai", Message: "request failed", Err: errors.New("dial tcp")},
			want: "openai: request failed: dial tcp",
		},
		{
			name: "status",
			err:  &ProviderError{Provider: "openai", Message: "Invalid API key", StatusCode: 401},
			want: "openai: Invalid API key (status 401)",
		},
		{
			name: "bare",
			err:  &ProviderError{Provider: "openai", Message: "rate limited"},
			want: "openai: rate limited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestWidgetError_Unwrap tests WidgetError wraps its cause.
func TestWidgetError_Unwrap(t *testing.T) {
	err := &WidgetError{Widget: "qr", Err: ErrUnknownTool}

	require.Equal(t, "widget qr: unknown tool", err.Error())
	require.ErrorIs(t, err, ErrUnknownTool)
}

// TestAppsError_Interface tests every error type satisfies AppsError.
func TestAppsError_Interface(t *testing.T) {
	errs := []error{
		&AssetNotFoundError{},
		&ConfigError{},
		&ProviderError{},
		&WidgetError{},
	}

	for _, err := range errs {
		appsErr, ok := err.(AppsError)
		require.True(t, ok, "%T", err)
		require.True(t, appsErr.IsAppsError())
	}
}
