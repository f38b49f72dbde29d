package widgets

import (
	"context"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var dashboardWidget = &widget.Widget{
	Identifier: "show_dashboard",
	Title:      "Show Dashboard",
	Description: `Display a dashboard with stats, metrics, and activity feed.

Use this tool when:
- The user wants to see analytics or KPIs
- Showing account overview or status information
- Displaying numerical data with trends

Args:
    title: Dashboard header text (default: "Dashboard")
    period: Time period label (default: "Last 30 days")

Returns:
    Dashboard layout with:
    - Stat cards (value, change percentage, icon)
    - Activity feed (recent events with timestamps)
    - Period selector display

Example:
    show_dashboard(title="Sales Overview", period="This month")`,
	TemplateURI: "ui://widget/dashboard.html",
	Invoking:    "Loading dashboard...",
	Invoked:     "Dashboard ready",
	Component:   "dashboard",
}

type dashboardInput struct {
	Title  string `json:"title"`
	Period string `json:"period"`
}

type dashboardStat struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Change      float64 `json:"change"`
	ChangeLabel string  `json:"changeLabel"`
	Icon        string  `json:"icon"`
}

type dashboardActivity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Type        string `json:"type"`
}

type dashboardContent struct {
	Title      string              `json:"title"`
	Subtitle   string              `json:"subtitle"`
	Period     string              `json:"period"`
	Stats      []dashboardStat     `json:"stats"`
	Activities []dashboardActivity `json:"activities"`
}

var sampleDashboardStats = []dashboardStat{
	{ID: "revenue", Label: "Total Revenue", Value: "$45,231.89", Change: 20.1, ChangeLabel: "from last month", Icon: "dollar"},
	{ID: "users", Label: "Active Users", Value: "2,350", Change: 15.3, ChangeLabel: "from last month", Icon: "users"},
	{ID: "orders", Label: "Orders", Value: "1,247", Change: -5.2, ChangeLabel: "from last month", Icon: "cart"},
	{ID: "views", Label: "Page Views", Value: "573,921", Change: 12.5, ChangeLabel: "from last month", Icon: "eye"},
}

var sampleActivities = []dashboardActivity{
	{ID: "1", Title: "New user registered", Description: "john.doe@example.com signed up", Time: "2 min ago", Type: "success"},
	{ID: "2", Title: "Order completed", Description: "Order #12345 fulfilled", Time: "15 min ago", Type: "info"},
	{ID: "3", Title: "Payment failed", Description: "$99.00 declined", Time: "1 hour ago", Type: "error"},
	{ID: "4", Title: "Low stock alert", Description: "SKU-789 running low", Time: "3 hours ago", Type: "warning"},
}

func newDashboard(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("DashboardInput",
		schema.Field{Name: "title", Type: schema.TypeString, Default: "Dashboard", Description: "Dashboard title"},
		schema.Field{Name: "period", Type: schema.TypeString, Default: "Last 30 days", Description: "Time period"},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, dashboardWidget, model, func(_ context.Context, in dashboardInput) (*output, error) {
		return &output{
			Narration: "Dashboard: " + in.Title,
			Data: dashboardContent{
				Title:      in.Title,
				Subtitle:   "Your key metrics at a glance",
				Period:     in.Period,
				Stats:      sampleDashboardStats,
				Activities: sampleActivities,
			},
		}, nil
	}), nil
}
