package mcpapps

import (
	"log/slog"

	"github.com/wagiedev/mcp-apps-go/internal/logging"
)

// NopLogger returns a logger that discards all output.
// Use this when you want silent operation with no logging overhead.
func NopLogger() *slog.Logger {
	return logging.Nop()
}
