package widgets

import (
	"context"
	"fmt"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var carouselWidget = &widget.Widget{
	Identifier: "show_carousel",
	Title:      "Show Carousel",
	Description: `Display a horizontal carousel of cards for browsing multiple items.

Use this tool when:
- The user asks for recommendations (restaurants, hotels, products)
- Showing a collection where users want to browse horizontally
- Displaying options with images, ratings, and quick info

Args:
    title: Carousel header text (default: "Recommendations")
    category: Category of items to display (default: "restaurants")

Returns:
    Horizontal scrolling carousel with cards containing:
    - Image thumbnail
    - Title and subtitle
    - Rating (1-5 stars)
    - Location and price level
    - Optional badge (e.g., "Popular", "New")

Example:
    show_carousel(title="Top Restaurants Near You", category="restaurants")`,
	TemplateURI: "ui://widget/carousel.html",
	Invoking:    "Loading carousel...",
	Invoked:     "Carousel ready",
	Component:   "carousel",
}

type carouselInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type carouselItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Image    string  `json:"image"`
	Rating   float64 `json:"rating"`
	Location string  `json:"location"`
	Price    string  `json:"price"`
	Badge    string  `json:"badge,omitempty"`
}

type carouselContent struct {
	Title string         `json:"title"`
	Items []carouselItem `json:"items"`
}

var sampleCarouselItems = []carouselItem{
	{
		ID: "1", Title: "Golden Gate Bistro", Subtitle: "Modern American",
		Image:  "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=400&h=300&fit=crop",
		Rating: 4.8, Location: "San Francisco", Price: "$$$", Badge: "Popular",
	},
	{
		ID: "2", Title: "Marina Bay Kitchen", Subtitle: "Fresh seafood",
		Image:  "https://images.unsplash.com/photo-1552566626-52f8b828add9?w=400&h=300&fit=crop",
		Rating: 4.6, Location: "Oakland", Price: "$$",
	},
	{
		ID: "3", Title: "Sunset Terrace", Subtitle: "Rooftop dining",
		Image:  "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=400&h=300&fit=crop",
		Rating: 4.9, Location: "Berkeley", Price: "$$$$", Badge: "New",
	},
	{
		ID: "4", Title: "The Local Table", Subtitle: "Farm-to-table",
		Image:  "https://images.unsplash.com/photo-1466978913421-dad2ebd01d17?w=400&h=300&fit=crop",
		Rating: 4.5, Location: "Palo Alto", Price: "$$",
	},
	{
		ID: "5", Title: "Urban Spice", Subtitle: "Indian fusion",
		Image:  "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=400&h=300&fit=crop",
		Rating: 4.7, Location: "San Jose", Price: "$$",
	},
}

func newCarousel(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("CarouselInput",
		schema.Field{Name: "title", Type: schema.TypeString, Default: "Recommendations", Description: "Carousel title"},
		schema.Field{
			Name:        "category",
			Type:        schema.TypeString,
			Default:     "restaurants",
			Description: "Category of items to show. Options: restaurants, hotels, products, attractions",
			Enum:        []string{"restaurants", "hotels", "products", "attractions"},
		},
	)
	if err != nil {
		return nil, err
	}

	// The category is validated but the fixture is the same for every value.
	return define(deps, carouselWidget, model, func(_ context.Context, in carouselInput) (*output, error) {
		return &output{
			Narration: fmt.Sprintf("Carousel: %s (%d items)", in.Title, len(sampleCarouselItems)),
			Data:      carouselContent{Title: in.Title, Items: sampleCarouselItems},
		}, nil
	}), nil
}
