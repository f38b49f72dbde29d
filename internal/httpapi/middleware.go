package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make cross-origin requests.
	// Empty or containing "*" allows all.
	AllowedOrigins []string
	// AllowedMethods defaults to GET, POST, DELETE, OPTIONS.
	AllowedMethods []string
	// AllowedHeaders defaults to the headers an MCP client sends.
	AllowedHeaders []string
	// MaxAge is the preflight cache lifetime in seconds. Default: 86400.
	MaxAge int
}

func (c CORSConfig) allowOrigin(origin string) string {
	if len(c.AllowedOrigins) == 0 {
		return "*"
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}

		if allowed == origin {
			return origin
		}
	}

	return ""
}

func (c CORSConfig) methods() string {
	if len(c.AllowedMethods) == 0 {
		return "GET, POST, DELETE, OPTIONS"
	}

	return strings.Join(c.AllowedMethods, ", ")
}

func (c CORSConfig) headers() string {
	if len(c.AllowedHeaders) == 0 {
		return "Content-Type, Authorization, Mcp-Session-Id, Mcp-Protocol-Version, Last-Event-ID, " + RequestIDHeader
	}

	return strings.Join(c.AllowedHeaders, ", ")
}

func (c CORSConfig) maxAge() string {
	if c.MaxAge <= 0 {
		return "86400"
	}

	return strconv.Itoa(c.MaxAge)
}

// withCORS adds CORS headers and answers preflight requests.
func withCORS(next http.Handler, cfg CORSConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")

		allow := cfg.allowOrigin(r.Header.Get("Origin"))
		if allow == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", allow)
		w.Header().Set("Access-Control-Allow-Methods", cfg.methods())
		w.Header().Set("Access-Control-Allow-Headers", cfg.headers())
		w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id, "+RequestIDHeader)
		w.Header().Set("Access-Control-Max-Age", cfg.maxAge())

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRequestLog assigns a request id, echoes it in the response, and logs
// one line per request.
func withRequestLog(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}

		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.LogAttrs(r.Context(), slog.LevelInfo, "http request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// statusRecorder captures the status code. Flush and Unwrap keep streaming
// responses working through the wrapper.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}

	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true

	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Flush() {
	_ = http.NewResponseController(s.ResponseWriter).Flush()
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
