package widgets

import (
	"context"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var cardWidget = &widget.Widget{
	Identifier: "show_card",
	Title:      "Show Card Widget",
	Description: `Display an interactive card widget with items.

Use this tool when:
- The user wants a simple, clean display of a few items
- You need a basic interactive widget that doesn't fit other categories
- Displaying a single entity with details and actions

Args:
    title: Widget header text (default: "Card Widget")
    message: Main message displayed in the card (default: "Hello from the server!")
    accentColor: Hex color for accent styling (default: "#2563eb")

Returns:
    Interactive card with title, message, accent color, and sample items list.

Example:
    show_card(title="Welcome", message="Click items below", accentColor="#10b981")`,
	TemplateURI: "ui://widget/boilerplate.html",
	Invoking:    "Loading card widget...",
	Invoked:     "Card widget ready",
	Component:   "boilerplate",
}

type cardInput struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	AccentColor string `json:"accentColor"`
}

type cardItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type cardContent struct {
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	AccentColor string     `json:"accentColor"`
	Items       []cardItem `json:"items"`
}

var sampleCardItems = []cardItem{
	{ID: "1", Name: "First Item", Description: "Sample item description"},
	{ID: "2", Name: "Second Item", Description: "Another sample item"},
	{ID: "3", Name: "Third Item", Description: "One more item"},
}

func newCard(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("CardInput",
		schema.Field{Name: "title", Type: schema.TypeString, Default: "Card Widget", Description: "Widget title"},
		schema.Field{Name: "message", Type: schema.TypeString, Default: "Hello from the server!", Description: "Main message"},
		schema.Field{
			Name:        "accent_color",
			Alias:       "accentColor",
			Type:        schema.TypeString,
			Default:     "#2563eb",
			Description: "Accent color (hex)",
		},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, cardWidget, model, func(_ context.Context, in cardInput) (*output, error) {
		return &output{
			Narration: "Card widget: " + in.Title,
			Data: cardContent{
				Title:       in.Title,
				Message:     in.Message,
				AccentColor: in.AccentColor,
				Items:       sampleCardItems,
			},
		}, nil
	}), nil
}
