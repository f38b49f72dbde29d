// Package dispatch answers MCP list, call, and read requests from the widget
// registry. Every failure is returned as a structured result so the calling
// agent can see it and recover.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
	"github.com/wagiedev/mcp-apps-go/internal/meta"
	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

// HTMLSource loads a widget's rendered HTML by component name.
type HTMLSource interface {
	Load(component string) (string, error)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// Dispatcher is stateless between calls. It is safe for concurrent use.
type Dispatcher struct {
	registry *registry.Registry
	meta     *meta.Builder
	html     HTMLSource
	logger   *slog.Logger
}

var _ internalmcp.Backend = (*Dispatcher)(nil)

// New creates a dispatcher over a built registry.
func New(reg *registry.Registry, mb *meta.Builder, html HTMLSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		meta:     mb,
		html:     html,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return d
}

// Registry returns the underlying registry.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

func annotations() *mcp.ToolAnnotations {
	destructive := false
	openWorld := false

	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: &destructive,
		OpenWorldHint:   &openWorld,
	}
}

func emptyObjectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           map[string]*jsonschema.Schema{},
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

// WidgetTool returns the declaration of one widget tool.
func (d *Dispatcher) WidgetTool(w *widget.Widget) *mcp.Tool {
	var inputSchema any = emptyObjectSchema()
	if model, ok := d.registry.Model(w.Identifier); ok && model != nil {
		inputSchema = model.Schema()
	}

	return &mcp.Tool{
		Name:        w.Identifier,
		Title:       w.Title,
		Description: w.Description,
		InputSchema: inputSchema,
		Annotations: annotations(),
		Meta:        d.meta.ToolMeta(w),
	}
}

// WidgetTools returns the declarations of widget tools only, in registration
// order.
func (d *Dispatcher) WidgetTools() []*mcp.Tool {
	widgets := d.registry.Widgets()

	tools := make([]*mcp.Tool, 0, len(widgets))
	for _, w := range widgets {
		tools = append(tools, d.WidgetTool(w))
	}

	return tools
}

// ListTools returns every widget tool followed by every data-only tool.
func (d *Dispatcher) ListTools() []*mcp.Tool {
	tools := d.WidgetTools()

	for _, dt := range d.registry.DataTools() {
		tool := *dt.Tool
		if tool.InputSchema == nil {
			tool.InputSchema = emptyObjectSchema()
		}

		tools = append(tools, &tool)
	}

	return tools
}

// ListResources returns one resource per widget.
func (d *Dispatcher) ListResources() []*mcp.Resource {
	widgets := d.registry.Widgets()

	resources := make([]*mcp.Resource, 0, len(widgets))
	for _, w := range widgets {
		resources = append(resources, &mcp.Resource{
			Name:        w.Identifier,
			Title:       w.Title,
			URI:         w.TemplateURI,
			Description: w.ResourceDescription(),
			MIMEType:    widget.MIMEType,
			Meta:        d.meta.ToolMeta(w),
		})
	}

	return resources
}

// ListResourceTemplates returns one resource template per widget.
func (d *Dispatcher) ListResourceTemplates() []*mcp.ResourceTemplate {
	widgets := d.registry.Widgets()

	templates := make([]*mcp.ResourceTemplate, 0, len(widgets))
	for _, w := range widgets {
		templates = append(templates, &mcp.ResourceTemplate{
			Name:        w.Identifier,
			Title:       w.Title,
			URITemplate: w.TemplateURI,
			Description: w.ResourceDescription(),
			MIMEType:    widget.MIMEType,
			Meta:        d.meta.ToolMeta(w),
		})
	}

	return templates
}

// CallTool looks the name up in the data-only table, then the widget table,
// and runs the handler. Unknown names and handler panics become error
// results.
func (d *Dispatcher) CallTool(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	if args == nil {
		args = map[string]any{}
	}

	if dt, ok := d.registry.DataTool(name); ok {
		return d.run(ctx, name, dt.Handler, args)
	}

	if handler, ok := d.registry.Handler(name); ok {
		return d.run(ctx, name, handler, args)
	}

	d.logger.DebugContext(ctx, "unknown tool", "tool", name)

	return internalmcp.ErrorResult("Unknown tool: " + name)
}

func (d *Dispatcher) run(
	ctx context.Context,
	name string,
	handler registry.Handler,
	args map[string]any,
) (result *mcp.CallToolResult) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.ErrorContext(ctx, "tool handler panicked", "tool", name, "panic", p)
			result = internalmcp.ErrorResult(fmt.Sprintf("Tool execution failed: %v", p))
		}
	}()

	result = handler(ctx, args)
	if result == nil {
		result = internalmcp.ErrorResult("Tool execution failed: empty result")
	}

	return result
}

// ReadResource returns the widget HTML for uri. An unknown URI or an HTML
// load failure yields a result with no contents and an error note in _meta.
func (d *Dispatcher) ReadResource(ctx context.Context, uri string) *mcp.ReadResourceResult {
	w, err := d.Resource(uri)
	if err != nil {
		d.logger.DebugContext(ctx, "unknown resource", "error", err)

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{},
			Meta:     mcp.Meta{"error": "Unknown resource: " + uri},
		}
	}

	html, err := d.html.Load(w.Component)
	if err != nil {
		d.logger.WarnContext(ctx, "widget html unavailable", "widget", w.Identifier, "error", err)

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{},
			Meta:     mcp.Meta{"error": err.Error()},
		}
	}

	toolMeta := d.meta.ToolMeta(w)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      w.TemplateURI,
			MIMEType: widget.MIMEType,
			Text:     html,
			Meta:     toolMeta,
		}},
		Meta: toolMeta,
	}
}

// Resource returns the widget registered under a template URI. An unknown
// URI yields an error wrapping ErrUnknownResource.
func (d *Dispatcher) Resource(uri string) (*widget.Widget, error) {
	w, ok := d.registry.WidgetByURI(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownResource, uri)
	}

	return w, nil
}

// WidgetHTML returns the rendered HTML of the widget behind a tool name.
func (d *Dispatcher) WidgetHTML(toolName string) (string, error) {
	w, ok := d.registry.Widget(toolName)
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownTool, toolName)
	}

	return d.html.Load(w.Component)
}

// WidgetByComponent finds a widget by its HTML component name.
func (d *Dispatcher) WidgetByComponent(component string) (*widget.Widget, bool) {
	for _, w := range d.registry.Widgets() {
		if w.Component == component {
			return w, true
		}
	}

	return nil, false
}
