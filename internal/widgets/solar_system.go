package widgets

import (
	"context"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var solarSystemWidget = &widget.Widget{
	Identifier: "show_solar_system",
	Title:      "Show Solar System",
	Description: `Display an interactive 3D solar system visualization.

Use this tool when:
- The user asks about planets, astronomy, or the solar system
- Educational content about space
- Interactive learning experiences

Args:
    title: Widget header text (default: "Solar System Explorer")
    planet_name: Optional planet to focus on (Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune)

Returns:
    Interactive 3D visualization with:
    - Animated planet orbits
    - Clickable planets with info panels
    - Planet details (size, distance, facts)

Example:
    show_solar_system(title="Explore the Planets", planet_name="Mars")`,
	TemplateURI: "ui://widget/solar-system.html",
	Invoking:    "Loading solar system...",
	Invoked:     "Solar system ready",
	Component:   "solar-system",
}

// Planets are the bodies the solar system widget can focus on.
var Planets = []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}

type solarSystemInput struct {
	PlanetName string `json:"planet_name"`
	Title      string `json:"title"`
}

// The widget expects an empty string rather than null when no planet is set.
type solarSystemContent struct {
	Title      string `json:"title"`
	PlanetName string `json:"planet_name"`
}

func newSolarSystem(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("SolarSystemInput",
		schema.Field{
			Name:        "planet_name",
			Type:        schema.TypeString,
			Description: "Planet to focus on. Options: Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune",
			Enum:        Planets,
			Nullable:    true,
		},
		schema.Field{Name: "title", Type: schema.TypeString, Default: "Solar System Explorer", Description: "Widget title"},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, solarSystemWidget, model, func(_ context.Context, in solarSystemInput) (*output, error) {
		narration := "Solar System"
		if in.PlanetName != "" {
			narration += " (focusing on " + in.PlanetName + ")"
		}

		return &output{
			Narration: narration,
			Data:      solarSystemContent{Title: in.Title, PlanetName: in.PlanetName},
		}, nil
	}), nil
}
