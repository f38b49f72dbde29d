package widgets

import (
	"context"
	"fmt"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var listWidget = &widget.Widget{
	Identifier: "show_list",
	Title:      "Show List",
	Description: `Display a vertical list with thumbnails and metadata.

Use this tool when:
- The user wants ranked/ordered content (top 10, best of, search results)
- Showing items where order and comparison matter
- Displaying task lists or sequential items

Args:
    title: List header text (default: "Top Picks")
    subtitle: Secondary header text (default: "Curated recommendations")
    category: Category of items to display (default: "restaurants")

Returns:
    Vertical scrolling list with items containing:
    - Thumbnail image
    - Title and subtitle
    - Rating
    - Metadata (location, etc.)
    - Optional rank badge (#1, #2, etc.)

Example:
    show_list(title="Top 5 Coffee Shops", subtitle="Based on reviews", category="cafes")`,
	TemplateURI: "ui://widget/list.html",
	Invoking:    "Loading list...",
	Invoked:     "List ready",
	Component:   "list",
}

const listHeaderImage = "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=200&h=200&fit=crop"

type listInput struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Category string `json:"category"`
}

type listItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Image    string  `json:"image"`
	Rating   float64 `json:"rating"`
	Meta     string  `json:"meta"`
	Badge    string  `json:"badge,omitempty"`
}

type listContent struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	HeaderImage string     `json:"headerImage"`
	ActionLabel string     `json:"actionLabel"`
	Items       []listItem `json:"items"`
}

var sampleListItems = []listItem{
	{
		ID: "1", Title: "The Modern Kitchen", Subtitle: "Contemporary American",
		Image:  "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=100&h=100&fit=crop",
		Rating: 4.9, Meta: "San Francisco", Badge: "#1",
	},
	{
		ID: "2", Title: "Bella Italia", Subtitle: "Authentic Italian",
		Image:  "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=100&h=100&fit=crop",
		Rating: 4.8, Meta: "Oakland", Badge: "#2",
	},
	{
		ID: "3", Title: "Sakura Japanese", Subtitle: "Sushi & Izakaya",
		Image:  "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=100&h=100&fit=crop",
		Rating: 4.7, Meta: "Berkeley", Badge: "#3",
	},
	{
		ID: "4", Title: "Taco Loco", Subtitle: "Mexican Street Food",
		Image:  "https://images.unsplash.com/photo-1565299585323-38d6b0865b47?w=100&h=100&fit=crop",
		Rating: 4.6, Meta: "San Jose",
	},
	{
		ID: "5", Title: "Golden Dragon", Subtitle: "Cantonese Cuisine",
		Image:  "https://images.unsplash.com/photo-1552566626-52f8b828add9?w=100&h=100&fit=crop",
		Rating: 4.5, Meta: "Palo Alto",
	},
}

func newList(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("ListInput",
		schema.Field{Name: "title", Type: schema.TypeString, Default: "Top Picks", Description: "List title"},
		schema.Field{Name: "subtitle", Type: schema.TypeString, Default: "Curated recommendations", Description: "List subtitle"},
		schema.Field{Name: "category", Type: schema.TypeString, Default: "restaurants", Description: "Category of items"},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, listWidget, model, func(_ context.Context, in listInput) (*output, error) {
		return &output{
			Narration: fmt.Sprintf("List: %s (%d items)", in.Title, len(sampleListItems)),
			Data: listContent{
				Title:       in.Title,
				Subtitle:    in.Subtitle,
				HeaderImage: listHeaderImage,
				ActionLabel: "Save List",
				Items:       sampleListItems,
			},
		}, nil
	}), nil
}
