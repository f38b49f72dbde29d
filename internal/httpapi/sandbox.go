package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
	"github.com/wagiedev/mcp-apps-go/internal/logging"
	"github.com/wagiedev/mcp-apps-go/internal/meta"
)

// WidgetPages renders widget HTML by tool name.
type WidgetPages interface {
	WidgetHTML(toolName string) (string, error)
}

// SandboxConfig configures the sandbox listener.
type SandboxConfig struct {
	// Pages renders /widget/{name}.
	Pages WidgetPages
	// Meta supplies the domain lists for the CSP header.
	Meta *meta.Builder
	// AssetsDir is served at /assets/.
	AssetsDir string
	// FrameAncestors lists host origins allowed to embed widgets. Empty
	// allows any.
	FrameAncestors []string
	// CORS configures cross-origin access.
	CORS CORSConfig
	// Logger receives access logs.
	Logger *slog.Logger
}

// Sandbox serves widget HTML and assets from a separate origin.
type Sandbox struct {
	cfg    SandboxConfig
	csp    string
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewSandbox creates the sandbox handler.
func NewSandbox(cfg SandboxConfig) *Sandbox {
	mb := cfg.Meta
	if mb == nil {
		mb = meta.NewBuilder("")
	}

	s := &Sandbox{
		cfg:    cfg,
		csp:    mb.ContentSecurityPolicy(cfg.FrameAncestors),
		logger: logging.OrNop(cfg.Logger),
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /widget/{name}", s.handleWidget)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.AssetsDir != "" {
		s.mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.AssetsDir))))
	}

	return s
}

// CSP returns the Content-Security-Policy header value.
func (s *Sandbox) CSP() string {
	return s.csp
}

// ServeHTTP implements http.Handler.
func (s *Sandbox) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", s.csp)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		s.mux.ServeHTTP(w, r)
	})

	withRequestLog(withCORS(h, s.cfg.CORS), s.logger).ServeHTTP(w, r)
}

func (s *Sandbox) handleWidget(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if s.cfg.Pages == nil {
		http.NotFound(w, r)
		return
	}

	html, err := s.cfg.Pages.WidgetHTML(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoAssets) || errors.Is(err, apperrors.ErrUnknownTool) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		s.logger.ErrorContext(r.Context(), "render widget", "tool", name, "error", err)
		http.Error(w, "failed to render widget", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
