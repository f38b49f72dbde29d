// Package widgets defines the demo widget catalog: one descriptor, input
// model, and handler per widget, plus the data-only helpers some widgets
// call from their own runtime.
package widgets

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
	"github.com/wagiedev/mcp-apps-go/internal/meta"
	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

// Deps are the collaborators widget handlers need at call time.
type Deps struct {
	// Meta builds the invocation metadata attached to every result.
	Meta *meta.Builder
	// Logger receives handler diagnostics.
	Logger *slog.Logger
	// HTTPClient is used for outbound lookups. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// GeocodeURL is the Nominatim-compatible search endpoint used by geocode.
	GeocodeURL string
	// Stats samples host statistics for the system monitor.
	Stats StatsSource
}

func (d Deps) withDefaults() Deps {
	if d.Meta == nil {
		d.Meta = meta.NewBuilder("")
	}

	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if d.HTTPClient == nil {
		d.HTTPClient = http.DefaultClient
	}

	if d.GeocodeURL == "" {
		d.GeocodeURL = DefaultGeocodeURL
	}

	if d.Stats == nil {
		d.Stats = HostStats{}
	}

	return d
}

// Catalog returns the ordered widget constructors.
func Catalog(deps Deps) []registry.Constructor {
	deps = deps.withDefaults()

	return []registry.Constructor{
		{Name: "boilerplate", New: func() (*registry.Entry, error) { return newCard(deps) }},
		{Name: "carousel", New: func() (*registry.Entry, error) { return newCarousel(deps) }},
		{Name: "list", New: func() (*registry.Entry, error) { return newList(deps) }},
		{Name: "gallery", New: func() (*registry.Entry, error) { return newGallery(deps) }},
		{Name: "dashboard", New: func() (*registry.Entry, error) { return newDashboard(deps) }},
		{Name: "solar_system", New: func() (*registry.Entry, error) { return newSolarSystem(deps) }},
		{Name: "todo", New: func() (*registry.Entry, error) { return newTodo(deps) }},
		{Name: "shop", New: func() (*registry.Entry, error) { return newShop(deps) }},
		{Name: "qr", New: func() (*registry.Entry, error) { return newQR(deps) }},
		{Name: "scenario_modeler", New: func() (*registry.Entry, error) { return newScenario(deps) }},
		{Name: "system_monitor", New: func() (*registry.Entry, error) { return newSystemMonitor(deps) }},
		{Name: "map", New: func() (*registry.Entry, error) { return newMap(deps) }},
	}
}

// output is what a widget body produces on success.
type output struct {
	// Narration is the one-line text shown to the model.
	Narration string
	// Data becomes the result's structured content.
	Data any
	// Extra content items appended after the narration.
	Extra []mcp.Content
}

// define wires a typed body behind input validation and invocation metadata.
func define[T any](
	deps Deps,
	w *widget.Widget,
	model *schema.Model,
	body func(ctx context.Context, in T) (*output, error),
) *registry.Entry {
	handler := func(ctx context.Context, args map[string]any) *mcp.CallToolResult {
		in, err := schema.Decode[T](model, args)
		if err != nil {
			return internalmcp.ErrorResult(err.Error())
		}

		out, err := body(ctx, in)
		if err != nil {
			deps.Logger.WarnContext(ctx, "widget handler failed", "widget", w.Identifier, "error", err)

			return internalmcp.ErrorResult(err.Error())
		}

		result := internalmcp.WidgetResult(out.Narration, out.Data, deps.Meta.InvocationMeta(w))
		result.Content = append(result.Content, out.Extra...)

		return result
	}

	return &registry.Entry{
		Widget:  w,
		Model:   model,
		Handler: handler,
	}
}

// dataTool declares a data-only tool with no UI metadata.
func dataTool(
	name, description string,
	model *schema.Model,
	handler registry.Handler,
) registry.DataTool {
	return registry.DataTool{
		Tool: &mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: model.Schema(),
		},
		Handler: handler,
	}
}
