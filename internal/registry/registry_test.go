package registry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

func okHandler(context.Context, map[string]any) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "ok"}}}
}

func widgetCtor(id, uri string) Constructor {
	return Constructor{
		Name: id,
		New: func() (*Entry, error) {
			return &Entry{
				Widget: &widget.Widget{
					Identifier:  id,
					Title:       id,
					TemplateURI: uri,
					Invoking:    "…",
					Invoked:     "done",
					Component:   id,
				},
				Model:   schema.MustModel(id, schema.Field{Name: "title", Type: schema.TypeString, Default: ""}),
				Handler: okHandler,
			}, nil
		},
	}
}

func dataCtor(name string) Constructor {
	return Constructor{
		Name: name,
		New: func() (*Entry, error) {
			return &Entry{DataTools: []DataTool{{
				Tool:    &mcp.Tool{Name: name, InputSchema: &jsonschema.Schema{Type: "object"}},
				Handler: okHandler,
			}}}, nil
		},
	}
}

func TestBuild_RegistersAllTables(t *testing.T) {
	r := Build([]Constructor{
		widgetCtor("show_card", "ui://widget/boilerplate.html"),
		widgetCtor("show_list", "ui://widget/list.html"),
		dataCtor("poll_system_stats"),
	})

	require.Len(t, r.Widgets(), 2)
	require.Equal(t, "show_card", r.Widgets()[0].Identifier)

	w, ok := r.Widget("show_list")
	require.True(t, ok)

	byURI, ok := r.WidgetByURI("ui://widget/list.html")
	require.True(t, ok)
	require.Same(t, w, byURI)

	_, ok = r.Handler("show_list")
	require.True(t, ok)

	_, ok = r.Model("show_list")
	require.True(t, ok)

	dt, ok := r.DataTool("poll_system_stats")
	require.True(t, ok)
	require.Equal(t, "poll_system_stats", dt.Tool.Name)

	_, ok = r.Widget("poll_system_stats")
	require.False(t, ok, "data-only tools have no descriptor")
}

func TestBuild_IsolatesFailures(t *testing.T) {
	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, nil))

	r := Build([]Constructor{
		{Name: "broken", New: func() (*Entry, error) { return nil, errors.New("boom") }},
		{Name: "panicky", New: func() (*Entry, error) { panic("bad literal") }},
		{Name: "empty", New: func() (*Entry, error) { return &Entry{}, nil }},
		{Name: "nil"},
		widgetCtor("show_card", "ui://widget/boilerplate.html"),
	}, WithLogger(logger))

	require.Len(t, r.Widgets(), 1)
	require.Contains(t, logs.String(), "widget=broken")
	require.Contains(t, logs.String(), "boom")
	require.Contains(t, logs.String(), "bad literal")
	require.Contains(t, logs.String(), "widget=empty")
}

func TestBuild_RejectsDuplicates(t *testing.T) {
	r := Build([]Constructor{
		widgetCtor("show_card", "ui://widget/boilerplate.html"),
		widgetCtor("show_card", "ui://widget/other.html"),
		widgetCtor("show_other", "ui://widget/boilerplate.html"),
		dataCtor("show_card"),
	})

	require.Len(t, r.Widgets(), 1)
	require.Empty(t, r.DataTools())
}

func TestBuild_RejectsInvalidDescriptor(t *testing.T) {
	r := Build([]Constructor{widgetCtor("Show-Card", "ui://widget/x.html")})

	require.Empty(t, r.Widgets())
}

func TestBuild_Preflight(t *testing.T) {
	r := Build([]Constructor{
		widgetCtor("show_card", "ui://widget/boilerplate.html"),
		widgetCtor("show_list", "ui://widget/list.html"),
	}, WithPreflight(func(w *widget.Widget) error {
		if w.Identifier == "show_list" {
			return errors.New("no html")
		}

		return nil
	}))

	require.Len(t, r.Widgets(), 1)

	_, ok := r.Handler("show_list")
	require.False(t, ok, "a failed preflight must not leave partial registrations")
}

func TestWidgets_ReturnsCopy(t *testing.T) {
	r := Build([]Constructor{widgetCtor("show_card", "ui://widget/boilerplate.html")})

	ws := r.Widgets()
	ws[0] = nil

	require.NotNil(t, r.Widgets()[0])
}
