package widgets

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var mapWidget = &widget.Widget{
	Identifier: "show_map",
	Title:      "Show Map",
	Description: `Display an interactive 3D globe zoomed to a specific location.

Use this tool when:
- The user asks about a geographic location
- Showing a place on a map
- Exploring areas visually

Args:
    west: Western longitude boundary (default: -0.5)
    south: Southern latitude boundary (default: 51.3)
    east: Eastern longitude boundary (default: 0.3)
    north: Northern latitude boundary (default: 51.7)

Returns:
    Interactive 3D globe with OpenStreetMap tiles, centered on the given bounding box.

Example:
    show_map(west=2.2, south=48.8, east=2.5, north=48.9)`,
	TemplateURI: "ui://widget/map.html",
	Invoking:    "Loading map...",
	Invoked:     "Map ready",
	Component:   "map",
}

// GeocodeTool is the data-only tool the map widget uses for place search.
const GeocodeTool = "geocode"

func newMap(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("ShowMapInput",
		schema.Field{Name: "west", Type: schema.TypeNumber, Default: -0.5, Description: "Western longitude (-180 to 180)"},
		schema.Field{Name: "south", Type: schema.TypeNumber, Default: 51.3, Description: "Southern latitude (-90 to 90)"},
		schema.Field{Name: "east", Type: schema.TypeNumber, Default: 0.3, Description: "Eastern longitude (-180 to 180)"},
		schema.Field{Name: "north", Type: schema.TypeNumber, Default: 51.7, Description: "Northern latitude (-90 to 90)"},
	)
	if err != nil {
		return nil, err
	}

	entry := define(deps, mapWidget, model, func(_ context.Context, in BoundingBox) (*output, error) {
		return &output{
			Narration: fmt.Sprintf("Map: W:%.4f S:%.4f E:%.4f N:%.4f", in.West, in.South, in.East, in.North),
			Data:      in,
		}, nil
	})

	geocodeModel, err := schema.NewModel("GeocodeInput",
		schema.Field{Name: "query", Type: schema.TypeString, Default: "", Description: "Place name to search for"},
	)
	if err != nil {
		return nil, err
	}

	geocoder := NewGeocoder(deps.GeocodeURL, deps.HTTPClient)

	entry.DataTools = []registry.DataTool{
		dataTool(GeocodeTool,
			"Resolves a place name to a bounding box. Called by the map widget's search box, "+
				"not intended for direct LLM use.",
			geocodeModel,
			func(ctx context.Context, args map[string]any) *mcp.CallToolResult {
				in, err := schema.Decode[struct {
					Query string `json:"query"`
				}](geocodeModel, args)
				if err != nil {
					return internalmcp.ErrorResult(err.Error())
				}

				place, err := geocoder.Lookup(ctx, in.Query)
				if err != nil {
					deps.Logger.WarnContext(ctx, "geocode failed", "query", in.Query, "error", err)

					return internalmcp.ErrorResult(err.Error())
				}

				return &mcp.CallToolResult{
					Content:           []mcp.Content{&mcp.TextContent{Text: "Found: " + place.DisplayName}},
					StructuredContent: place,
				}
			},
		),
	}

	return entry, nil
}
