package widgets

import (
	"context"
	"fmt"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var shopWidget = &widget.Widget{
	Identifier: "show_shop",
	Title:      "Show Shopping Cart",
	Description: `Display a shopping cart with products and checkout flow.

Use this tool when:
- The user wants to manage a shopping cart
- E-commerce checkout experiences
- Product quantity and price management

Args:
    title: Cart header text (default: "Your Cart")

Returns:
    Shopping cart interface with:
    - Product list with images and descriptions
    - Quantity controls (+/-)
    - Price calculations
    - Product tags (vegan, spicy, etc.)
    - Checkout button

Example:
    show_shop(title="Your Shopping Cart")`,
	TemplateURI: "ui://widget/shop.html",
	Invoking:    "Loading shopping cart...",
	Invoked:     "Shopping cart ready",
	Component:   "shop",
}

const cartImageBase = "https://persistent.oaistatic.com/pizzaz-cart-xl/"

type shopInput struct {
	Title string `json:"title"`
}

type cartItem struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Price            float64  `json:"price"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	DetailSummary    string   `json:"detailSummary,omitempty"`
	Quantity         int      `json:"quantity"`
	Image            string   `json:"image"`
	Tags             []string `json:"tags"`
}

type shopContent struct {
	Title     string     `json:"title"`
	CartItems []cartItem `json:"cartItems"`
}

var sampleCartItems = []cartItem{
	{
		ID:               "marys-chicken",
		Name:             "Mary's Chicken",
		Price:            19.48,
		Description:      "Tender organic chicken breasts trimmed for easy cooking.",
		ShortDescription: "Organic chicken breasts",
		DetailSummary:    "4 lbs - $3.99/lb",
		Quantity:         2,
		Image:            cartImageBase + "chicken.png",
		Tags:             []string{"size"},
	},
	{
		ID:               "avocados",
		Name:             "Avocados",
		Price:            1.00,
		Description:      "Creamy Hass avocados picked at peak ripeness.",
		ShortDescription: "Creamy Hass avocados",
		Quantity:         2,
		Image:            cartImageBase + "avocado.png",
		Tags:             []string{"vegan"},
	},
	{
		ID:               "hojicha-pizza",
		Name:             "Hojicha Pizza",
		Price:            15.50,
		Description:      "Wood-fired crust with smoky hojicha tea sauce and honey.",
		ShortDescription: "Smoky hojicha sauce & honey",
		Quantity:         1,
		Image:            cartImageBase + "hojicha-pizza.png",
		Tags:             []string{"vegetarian", "spicy"},
	},
	{
		ID:               "chicken-pizza",
		Name:             "Chicken Pizza",
		Price:            7.00,
		Description:      "Classic thin-crust pizza with roasted chicken and herb pesto.",
		ShortDescription: "Roasted chicken & pesto",
		Quantity:         1,
		Image:            cartImageBase + "chicken-pizza.png",
		Tags:             []string{},
	},
	{
		ID:               "matcha-pizza",
		Name:             "Matcha Pizza",
		Price:            5.00,
		Description:      "Crisp dough with velvety matcha cream and mascarpone.",
		ShortDescription: "Velvety matcha cream",
		Quantity:         1,
		Image:            cartImageBase + "matcha-pizza.png",
		Tags:             []string{"vegetarian"},
	},
}

func newShop(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("ShopInput",
		schema.Field{Name: "title", Type: schema.TypeString, Default: "Your Cart", Description: "Cart title"},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, shopWidget, model, func(_ context.Context, in shopInput) (*output, error) {
		total := 0
		for _, item := range sampleCartItems {
			total += item.Quantity
		}

		return &output{
			Narration: fmt.Sprintf("Shopping Cart: %d items", total),
			Data:      shopContent{Title: in.Title, CartItems: sampleCartItems},
		}, nil
	}), nil
}
