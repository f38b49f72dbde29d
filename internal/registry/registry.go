// Package registry aggregates widget descriptors, input models, handlers,
// and data-only tools into immutable lookup tables.
//
// Widgets are registered from an explicit, ordered list of constructors.
// Each constructor is fallible: a constructor that returns an error (or
// panics) is logged and skipped, and every other widget still registers.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

// Handler serves a tool call. Failures are encoded in the result, never
// returned as Go errors.
type Handler func(ctx context.Context, args map[string]any) *mcp.CallToolResult

// DataTool is a callable tool with no UI resource. Widgets call these from
// their own runtime (polling, lookups); they are not meant for narration.
type DataTool struct {
	Tool    *mcp.Tool
	Handler Handler
}

// Entry is everything one widget module contributes. Widget may be nil for a
// module that only contributes data-only tools.
type Entry struct {
	Widget    *widget.Widget
	Model     *schema.Model
	Handler   Handler
	DataTools []DataTool
}

// Constructor builds one Entry.
type Constructor struct {
	Name string
	New  func() (*Entry, error)
}

// Option configures Build.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	preflight func(*widget.Widget) error
}

// WithLogger sets the logger used to report skipped constructors.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPreflight runs check against every widget before registering it. A
// widget whose check fails is skipped.
func WithPreflight(check func(*widget.Widget) error) Option {
	return func(o *options) {
		o.preflight = check
	}
}

// Registry holds the lookup tables. It is never mutated after Build.
type Registry struct {
	widgets   []*widget.Widget
	byID      map[string]*widget.Widget
	byURI     map[string]*widget.Widget
	handlers  map[string]Handler
	models    map[string]*schema.Model
	dataTools []DataTool
	dataByID  map[string]DataTool
}

// Build runs every constructor in order and registers the ones that succeed.
func Build(ctors []Constructor, opts ...Option) *Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Registry{
		widgets:  make([]*widget.Widget, 0, len(ctors)),
		byID:     make(map[string]*widget.Widget, len(ctors)),
		byURI:    make(map[string]*widget.Widget, len(ctors)),
		handlers: make(map[string]Handler, len(ctors)),
		models:   make(map[string]*schema.Model, len(ctors)),
		dataByID: make(map[string]DataTool, 4),
	}

	for _, ctor := range ctors {
		entry, err := construct(ctor)
		if err == nil {
			err = r.add(entry, o.preflight)
		}

		if err != nil {
			o.logger.Warn("skipping widget", "widget", ctor.Name, "error", err)

			continue
		}

		o.logger.Debug("registered widget", "widget", ctor.Name)
	}

	return r
}

func construct(ctor Constructor) (entry *Entry, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &apperrors.WidgetError{Widget: ctor.Name, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	if ctor.New == nil {
		return nil, &apperrors.WidgetError{Widget: ctor.Name, Err: errors.New("nil constructor")}
	}

	entry, err = ctor.New()
	if err != nil {
		return nil, &apperrors.WidgetError{Widget: ctor.Name, Err: err}
	}

	if entry == nil {
		return nil, &apperrors.WidgetError{Widget: ctor.Name, Err: errors.New("constructor returned no entry")}
	}

	return entry, nil
}

// add registers the entry atomically: either all its parts register or none.
func (r *Registry) add(entry *Entry, preflight func(*widget.Widget) error) error {
	if entry.Widget == nil && len(entry.DataTools) == 0 {
		return errors.New("entry has neither a widget nor data-only tools")
	}

	if w := entry.Widget; w != nil {
		if err := w.Validate(); err != nil {
			return err
		}

		if entry.Handler == nil {
			return fmt.Errorf("widget %s has no handler", w.Identifier)
		}

		if _, dup := r.byID[w.Identifier]; dup {
			return fmt.Errorf("duplicate widget identifier %q", w.Identifier)
		}

		if _, dup := r.dataByID[w.Identifier]; dup {
			return fmt.Errorf("widget identifier %q collides with a data-only tool", w.Identifier)
		}

		if _, dup := r.byURI[w.TemplateURI]; dup {
			return fmt.Errorf("duplicate template URI %q", w.TemplateURI)
		}

		if preflight != nil {
			if err := preflight(w); err != nil {
				return err
			}
		}
	}

	for _, dt := range entry.DataTools {
		if dt.Tool == nil || dt.Handler == nil {
			return errors.New("data-only tool missing definition or handler")
		}

		if _, dup := r.dataByID[dt.Tool.Name]; dup {
			return fmt.Errorf("duplicate data-only tool %q", dt.Tool.Name)
		}

		if _, dup := r.byID[dt.Tool.Name]; dup {
			return fmt.Errorf("data-only tool %q collides with a widget", dt.Tool.Name)
		}
	}

	if w := entry.Widget; w != nil {
		r.widgets = append(r.widgets, w)
		r.byID[w.Identifier] = w
		r.byURI[w.TemplateURI] = w
		r.handlers[w.Identifier] = entry.Handler

		if entry.Model != nil {
			r.models[w.Identifier] = entry.Model
		}
	}

	for _, dt := range entry.DataTools {
		r.dataTools = append(r.dataTools, dt)
		r.dataByID[dt.Tool.Name] = dt
	}

	return nil
}

// Widgets returns the registered widgets in registration order.
func (r *Registry) Widgets() []*widget.Widget {
	out := make([]*widget.Widget, len(r.widgets))
	copy(out, r.widgets)

	return out
}

// Widget looks up a widget by identifier.
func (r *Registry) Widget(id string) (*widget.Widget, bool) {
	w, ok := r.byID[id]

	return w, ok
}

// WidgetByURI looks up a widget by template URI.
func (r *Registry) WidgetByURI(uri string) (*widget.Widget, bool) {
	w, ok := r.byURI[uri]

	return w, ok
}

// Handler returns the widget handler for an identifier.
func (r *Registry) Handler(id string) (Handler, bool) {
	h, ok := r.handlers[id]

	return h, ok
}

// Model returns the input model for a widget identifier. Widgets without a
// model accept no arguments.
func (r *Registry) Model(id string) (*schema.Model, bool) {
	m, ok := r.models[id]

	return m, ok
}

// DataTools returns the data-only tools in registration order.
func (r *Registry) DataTools() []DataTool {
	out := make([]DataTool, len(r.dataTools))
	copy(out, r.dataTools)

	return out
}

// DataTool looks up a data-only tool by name.
func (r *Registry) DataTool(name string) (DataTool, bool) {
	dt, ok := r.dataByID[name]

	return dt, ok
}
