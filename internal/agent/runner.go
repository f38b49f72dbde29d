package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
	"github.com/wagiedev/mcp-apps-go/internal/llm"
	"github.com/wagiedev/mcp-apps-go/internal/logging"
	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
)

// DefaultMaxTurns bounds model round trips per prompt.
const DefaultMaxTurns = 6

// Instructions is the system prompt given to the model.
const Instructions = `You are a helpful assistant that can display interactive widgets.

When the user asks to see something visual, use the appropriate tool:
- show_card: For simple interactive card displays
- show_carousel: For horizontal scrolling cards (places, products, recommendations)
- show_list: For vertical lists with thumbnails (rankings, search results)
- show_gallery: For image galleries with lightbox
- show_dashboard: For stats and metrics displays
- show_solar_system: For interactive 3D solar system
- show_todo: For task/todo list management
- show_shop: For shopping cart and e-commerce
- show_qr: For generating QR codes from text or URLs
- get_scenario_data: For SaaS revenue and profit projections
- get_system_info: For live CPU and memory monitoring
- show_map: For showing a place on an interactive globe

Always use a tool when the user asks to see, show, or display something visual.
After calling a tool, provide a brief helpful response about what you're showing.`

// HTMLSource resolves a tool name to its widget HTML.
type HTMLSource interface {
	WidgetHTML(toolName string) (string, error)
}

// WidgetResult is the widget a run asks the client to render.
type WidgetResult struct {
	ToolName    string         `json:"tool_name"`
	HTML        string         `json:"html"`
	ToolOutput  map[string]any `json:"tool_output"`
	TextSummary string         `json:"text_summary,omitempty"`
}

// Response is the outcome of one prompt.
type Response struct {
	Message string        `json:"message"`
	Widget  *WidgetResult `json:"widget,omitempty"`
	Items   []Item        `json:"-"`
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithHistory sets the conversation store.
func WithHistory(h *History) Option {
	return func(r *Runner) {
		r.history = h
	}
}

// WithMaxTurns bounds model round trips per prompt.
func WithMaxTurns(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxTurns = n
		}
	}
}

// WithInstructions replaces the system prompt.
func WithInstructions(s string) Option {
	return func(r *Runner) {
		r.instructions = s
	}
}

// Runner drives the model through tool calls. It is safe for concurrent use.
type Runner struct {
	model        llm.ChatModel
	tools        Connector
	html         HTMLSource
	history      *History
	logger       *slog.Logger
	maxTurns     int
	instructions string
}

// NewRunner creates a runner.
func NewRunner(model llm.ChatModel, tools Connector, html HTMLSource, opts ...Option) *Runner {
	r := &Runner{
		model:        model,
		tools:        tools,
		html:         html,
		maxTurns:     DefaultMaxTurns,
		instructions: Instructions,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.history == nil {
		r.history = NewHistory(DefaultHistoryLength)
	}

	r.logger = logging.OrNop(r.logger)

	return r
}

// History returns the conversation store.
func (r *Runner) History() *History {
	return r.history
}

// Reset forgets a conversation.
func (r *Runner) Reset(conversationID string) {
	r.history.Clear(conversationOrDefault(conversationID))
}

func conversationOrDefault(id string) string {
	if strings.TrimSpace(id) == "" {
		return DefaultConversationID
	}

	return id
}

// Run sends prompt, executes the tool calls the model asks for, and returns
// the final narration plus the widget to render, if any.
func (r *Runner) Run(ctx context.Context, prompt, conversationID string) (*Response, error) {
	if r.model == nil {
		return nil, apperrors.ErrAPIKeyMissing
	}

	conversationID = conversationOrDefault(conversationID)

	session, err := r.tools.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.DebugContext(ctx, "close tool session", "error", cerr)
		}
	}()

	declared, err := session.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	messages := r.messages(conversationID, prompt)
	tools := widgetFunctions(declared)

	var items []Item

	final, ok := "", false

	for turn := 0; turn < r.maxTurns && !ok; turn++ {
		completion, err := r.model.Complete(ctx, &llm.Request{Messages: messages, Tools: tools})
		if err != nil {
			return nil, err
		}

		reply := completion.Message
		reply.Role = llm.RoleAssistant

		if len(reply.ToolCalls) == 0 {
			final, ok = reply.Content, true
			items = append(items, &NarrationItem{Text: reply.Content})

			break
		}

		messages = append(messages, reply)

		for _, call := range reply.ToolCalls {
			callItems, msg := r.invoke(ctx, session, call)
			items = append(items, callItems...)
			messages = append(messages, msg)
		}
	}

	if !ok {
		return nil, apperrors.ErrMaxTurns
	}

	r.history.Append(conversationID,
		Turn{Role: llm.RoleUser, Content: prompt},
		Turn{Role: llm.RoleAssistant, Content: final},
	)

	return &Response{
		Message: final,
		Widget:  r.extractWidget(ctx, items),
		Items:   items,
	}, nil
}

func (r *Runner) messages(conversationID, prompt string) []llm.Message {
	past := r.history.Get(conversationID)

	messages := make([]llm.Message, 0, len(past)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: r.instructions})

	for _, t := range past {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})
}

// invoke runs one tool call and returns its items and the tool message for
// the model.
func (r *Runner) invoke(ctx context.Context, session ToolSession, call llm.ToolCall) ([]Item, llm.Message) {
	args := map[string]any{}

	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
			r.logger.DebugContext(ctx, "unparseable tool arguments", "tool", call.Function.Name, "error", err)
			args = map[string]any{}
		}
	}

	items := []Item{&ToolCallItem{CallID: call.ID, Name: call.Function.Name, Arguments: args}}

	result, err := session.CallTool(ctx, call.Function.Name, args)
	if err != nil {
		r.logger.WarnContext(ctx, "tool call failed", "tool", call.Function.Name, "error", err)
		result = internalmcp.ErrorResult("Tool execution failed: " + err.Error())
	}

	items = append(items, &ToolResultItem{CallID: call.ID, Name: call.Function.Name, Result: result})

	return items, llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: call.ID,
		Content:    internalmcp.ResultText(result),
	}
}

// extractWidget picks the last tool call that has widget HTML, with its
// structured result as the widget's tool output.
func (r *Runner) extractWidget(ctx context.Context, items []Item) *WidgetResult {
	var widget *WidgetResult

	for _, item := range items {
		switch it := item.(type) {
		case *ToolCallItem:
			html, err := r.html.WidgetHTML(it.Name)
			if err != nil || html == "" {
				if err != nil && !errors.Is(err, apperrors.ErrUnknownTool) {
					r.logger.DebugContext(ctx, "widget html unavailable", "tool", it.Name, "error", err)
				}

				continue
			}

			widget = &WidgetResult{
				ToolName:    it.Name,
				HTML:        html,
				ToolOutput:  it.Arguments,
				TextSummary: "Displaying " + it.Name,
			}

		case *ToolResultItem:
			if widget == nil || it.Name != widget.ToolName || it.Result == nil || it.Result.IsError {
				continue
			}

			if out := asMap(it.Result.StructuredContent); out != nil {
				widget.ToolOutput = out
			}

		case *NarrationItem:
		}
	}

	return widget
}

// asMap converts structured content to a JSON object map.
func asMap(v any) map[string]any {
	if v == nil {
		return nil
	}

	if m, ok := v.(map[string]any); ok {
		return m
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}

	return m
}

// widgetFunctions offers the model only tools that render a widget. Data-only
// helpers carry no ui metadata.
func widgetFunctions(tools []*mcp.Tool) []llm.Tool {
	out := make([]llm.Tool, 0, len(tools))

	for _, t := range tools {
		if _, ok := t.Meta["ui"]; !ok {
			continue
		}

		out = append(out, llm.FunctionTool(t.Name, t.Description, t.InputSchema))
	}

	return out
}
