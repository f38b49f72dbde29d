package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-apps-go/internal/agent"
	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
	"github.com/wagiedev/mcp-apps-go/internal/llm"
	"github.com/wagiedev/mcp-apps-go/internal/logging"
	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
)

// Tools is the widget backend the HTTP surface bridges to.
type Tools interface {
	WidgetTools() []*mcp.Tool
	CallTool(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult
	WidgetHTML(toolName string) (string, error)
}

// Chat runs prompts through the agent.
type Chat interface {
	Run(ctx context.Context, prompt, conversationID string) (*agent.Response, error)
	Reset(conversationID string)
}

// Config configures the main listener's handler.
type Config struct {
	// MCP is served at /mcp.
	MCP *mcp.Server
	// Tools backs /tools and /tools/call.
	Tools Tools
	// Chat backs /chat. Nil means no API key is configured.
	Chat Chat
	// Model is reported by /chat/status.
	Model string
	// AssetsDir is served at /assets/. Empty disables it.
	AssetsDir string
	// CORS configures cross-origin access.
	CORS CORSConfig
	// Logger receives access logs.
	Logger *slog.Logger
}

// API is the main HTTP handler.
type API struct {
	cfg    Config
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates the main handler.
func New(cfg Config) *API {
	a := &API{
		cfg:    cfg,
		logger: logging.OrNop(cfg.Logger),
		mux:    http.NewServeMux(),
	}

	a.routes()

	return a
}

func (a *API) routes() {
	if a.cfg.MCP != nil {
		server := a.cfg.MCP
		a.mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{Stateless: true}))
	}

	a.mux.HandleFunc("POST /chat", a.handleChat)
	a.mux.HandleFunc("POST /chat/reset", a.handleChatReset)
	a.mux.HandleFunc("GET /chat/status", a.handleChatStatus)
	a.mux.HandleFunc("GET /tools", a.handleListTools)
	a.mux.HandleFunc("POST /tools/call", a.handleCallTool)
	a.mux.HandleFunc("GET /healthz", a.handleHealth)

	if a.cfg.AssetsDir != "" {
		a.mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(a.cfg.AssetsDir))))
	}
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withRequestLog(withCORS(a.mux, a.cfg.CORS), a.logger).ServeHTTP(w, r)
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Message        string              `json:"message"`
	Widget         *agent.WidgetResult `json:"widget,omitempty"`
	ConversationID string              `json:"conversation_id"`
}

// ResetRequest is the body of POST /chat/reset.
type ResetRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
}

// ToolCallRequest is the body of POST /tools/call.
type ToolCallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

func conversationID(id string) string {
	if strings.TrimSpace(id) == "" {
		return agent.DefaultConversationID
	}

	return id
}

func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	if a.cfg.Chat == nil {
		writeError(w, http.StatusServiceUnavailable, "not_configured", "OPENAI_API_KEY not configured")
		return
	}

	id := conversationID(req.ConversationID)

	resp, err := a.cfg.Chat.Run(r.Context(), req.Message, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAPIKeyMissing) {
			writeError(w, http.StatusServiceUnavailable, "not_configured", "OPENAI_API_KEY not configured")
			return
		}

		a.logger.ErrorContext(r.Context(), "chat failed", "conversation_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "agent_error", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Message:        resp.Message,
		Widget:         resp.Widget,
		ConversationID: id,
	})
}

func (a *API) handleChatReset(w http.ResponseWriter, r *http.Request) {
	// An empty body, chunked or not, resets the default conversation.
	var req ResetRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	id := conversationID(req.ConversationID)
	if a.cfg.Chat != nil {
		a.cfg.Chat.Reset(id)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "conversation_id": id})
}

func (a *API) handleChatStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"configured": a.cfg.Chat != nil,
		"model":      a.cfg.Model,
	})
}

func (a *API) handleListTools(w http.ResponseWriter, _ *http.Request) {
	if a.cfg.Tools == nil {
		writeJSON(w, http.StatusOK, map[string]any{"tools": []llm.Tool{}})
		return
	}

	widgetTools := a.cfg.Tools.WidgetTools()
	tools := make([]llm.Tool, 0, len(widgetTools))

	for _, t := range widgetTools {
		tools = append(tools, llm.FunctionTool(t.Name, t.Description, t.InputSchema))
	}

	writeJSON(w, http.StatusOK, map[string]any{"tools": tools})
}

func (a *API) handleCallTool(w http.ResponseWriter, r *http.Request) {
	var req ToolCallRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	if a.cfg.Tools == nil {
		writeError(w, http.StatusServiceUnavailable, "no_tools", "no tool backend configured")
		return
	}

	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}

	body := internalmcp.ResultToMap(a.cfg.Tools.CallTool(r.Context(), req.Name, args))

	html, err := a.cfg.Tools.WidgetHTML(req.Name)
	switch {
	case err == nil:
		body["html"] = html
	case !errors.Is(err, apperrors.ErrUnknownTool):
		a.logger.WarnContext(r.Context(), "widget html unavailable", "tool", req.Name, "error", err)
	}

	writeJSON(w, http.StatusOK, body)
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
