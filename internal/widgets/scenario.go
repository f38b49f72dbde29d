package widgets

import (
	"context"
	"fmt"
	"math"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var scenarioWidget = &widget.Widget{
	Identifier: "get_scenario_data",
	Title:      "SaaS Scenario Modeler",
	Description: `Interactive SaaS financial projection tool with scenario templates.

Use this tool when:
- The user wants to model SaaS business scenarios
- Projecting revenue, profit, and growth over 12 months
- Comparing different business strategies (bootstrapped, VC-funded, etc.)

Args:
    starting_mrr: Starting monthly recurring revenue in dollars (default: 50000)
    monthly_growth_rate: Monthly growth rate percentage (default: 5)
    monthly_churn_rate: Monthly churn rate percentage (default: 3)
    gross_margin: Gross margin percentage (default: 80)
    fixed_costs: Fixed monthly costs in dollars (default: 30000)

Returns:
    Interactive widget with sliders, 12-month projection chart, and comparison
    against 5 pre-built scenario templates (Bootstrapped, VC Rocketship, Cash Cow,
    Turnaround, Efficient Growth).

Example:
    get_scenario_data(starting_mrr=100000, monthly_growth_rate=15)`,
	TemplateURI: "ui://widget/scenario-modeler.html",
	Invoking:    "Loading scenario modeler...",
	Invoked:     "Scenario modeler ready",
	Component:   "scenario-modeler",
}

// ProjectionMonths is the length of every projection.
const ProjectionMonths = 12

// ScenarioParams are the inputs of a SaaS projection. Rates and margins are
// percentages.
type ScenarioParams struct {
	StartingMRR       float64 `json:"startingMRR"`
	MonthlyGrowthRate float64 `json:"monthlyGrowthRate"`
	MonthlyChurnRate  float64 `json:"monthlyChurnRate"`
	GrossMargin       float64 `json:"grossMargin"`
	FixedCosts        float64 `json:"fixedCosts"`
}

// MonthProjection is one projected month.
type MonthProjection struct {
	Month             int     `json:"month"`
	MRR               float64 `json:"mrr"`
	GrossProfit       float64 `json:"grossProfit"`
	NetProfit         float64 `json:"netProfit"`
	CumulativeRevenue float64 `json:"cumulativeRevenue"`
}

// ScenarioSummary aggregates a projection.
type ScenarioSummary struct {
	EndingMRR    float64 `json:"endingMRR"`
	ARR          float64 `json:"arr"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalProfit  float64 `json:"totalProfit"`
	MRRGrowthPct float64 `json:"mrrGrowthPct"`
	AvgMargin    float64 `json:"avgMargin"`
	// BreakEvenMonth is the first month with non-negative net profit, or 0.
	BreakEvenMonth int `json:"breakEvenMonth"`
}

// ScenarioTemplate is a prebuilt scenario shown for comparison.
type ScenarioTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Parameters  ScenarioParams    `json:"parameters"`
	Projections []MonthProjection `json:"projections"`
	Summary     ScenarioSummary   `json:"summary"`
	KeyInsight  string            `json:"keyInsight"`
}

type scenarioContent struct {
	Templates     []ScenarioTemplate `json:"templates"`
	DefaultInputs ScenarioParams     `json:"defaultInputs"`
	Inputs        ScenarioParams     `json:"inputs"`
	Projections   []MonthProjection  `json:"projections"`
	Summary       ScenarioSummary    `json:"summary"`
}

// DefaultScenario is the scenario used when the caller sets nothing.
var DefaultScenario = ScenarioParams{
	StartingMRR:       50000,
	MonthlyGrowthRate: 5,
	MonthlyChurnRate:  3,
	GrossMargin:       80,
	FixedCosts:        30000,
}

// Project compounds MRR monthly at growth minus churn.
func Project(p ScenarioParams) []MonthProjection {
	netGrowth := (p.MonthlyGrowthRate - p.MonthlyChurnRate) / 100

	out := make([]MonthProjection, 0, ProjectionMonths)
	cumulative := 0.0

	for month := 1; month <= ProjectionMonths; month++ {
		mrr := p.StartingMRR * math.Pow(1+netGrowth, float64(month))
		gross := mrr * p.GrossMargin / 100
		cumulative += mrr

		out = append(out, MonthProjection{
			Month:             month,
			MRR:               mrr,
			GrossProfit:       gross,
			NetProfit:         gross - p.FixedCosts,
			CumulativeRevenue: cumulative,
		})
	}

	return out
}

// Summarize derives the headline metrics of a projection.
func Summarize(projections []MonthProjection, startingMRR float64) ScenarioSummary {
	if len(projections) == 0 {
		return ScenarioSummary{}
	}

	var s ScenarioSummary

	for _, m := range projections {
		s.TotalRevenue += m.MRR
		s.TotalProfit += m.NetProfit

		if s.BreakEvenMonth == 0 && m.NetProfit >= 0 {
			s.BreakEvenMonth = m.Month
		}
	}

	s.EndingMRR = projections[len(projections)-1].MRR
	s.ARR = s.EndingMRR * 12

	if startingMRR != 0 {
		s.MRRGrowthPct = (s.EndingMRR - startingMRR) / startingMRR * 100
	}

	if s.TotalRevenue != 0 {
		s.AvgMargin = s.TotalProfit / s.TotalRevenue * 100
	}

	return s
}

func scenarioTemplate(id, name, description, icon, insight string, p ScenarioParams) ScenarioTemplate {
	projections := Project(p)

	return ScenarioTemplate{
		ID:          id,
		Name:        name,
		Description: description,
		Icon:        icon,
		Parameters:  p,
		Projections: projections,
		Summary:     Summarize(projections, p.StartingMRR),
		KeyInsight:  insight,
	}
}

// ScenarioTemplates are the five prebuilt comparison scenarios.
var ScenarioTemplates = []ScenarioTemplate{
	scenarioTemplate("bootstrapped", "Bootstrapped Growth",
		"Low burn, steady growth, path to profitability", "🌱",
		"Profitable by month 1, but slower scale",
		ScenarioParams{StartingMRR: 30000, MonthlyGrowthRate: 4, MonthlyChurnRate: 2, GrossMargin: 85, FixedCosts: 20000}),
	scenarioTemplate("vc-rocketship", "VC Rocketship",
		"High burn, explosive growth, raise more later", "🚀",
		"Loses money early but ends at 3x MRR",
		ScenarioParams{StartingMRR: 100000, MonthlyGrowthRate: 15, MonthlyChurnRate: 5, GrossMargin: 70, FixedCosts: 150000}),
	scenarioTemplate("cash-cow", "Cash Cow",
		"Mature product, high margin, stable revenue", "🐄",
		"Consistent profitability, low risk",
		ScenarioParams{StartingMRR: 80000, MonthlyGrowthRate: 2, MonthlyChurnRate: 1, GrossMargin: 90, FixedCosts: 40000}),
	scenarioTemplate("turnaround", "Turnaround",
		"Fighting churn, rebuilding product-market fit", "🔄",
		"Negative net growth requires urgent action",
		ScenarioParams{StartingMRR: 60000, MonthlyGrowthRate: 6, MonthlyChurnRate: 8, GrossMargin: 75, FixedCosts: 50000}),
	scenarioTemplate("efficient-growth", "Efficient Growth",
		"Balanced approach with sustainable economics", "⚖️",
		"Good growth with path to profitability",
		ScenarioParams{StartingMRR: 50000, MonthlyGrowthRate: 8, MonthlyChurnRate: 3, GrossMargin: 80, FixedCosts: 35000}),
}

func newScenario(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("ScenarioModelerInput",
		schema.Field{
			Name: "starting_mrr", Alias: "startingMRR", Type: schema.TypeNumber,
			Default: DefaultScenario.StartingMRR, Description: "Starting MRR in dollars",
		},
		schema.Field{
			Name: "monthly_growth_rate", Alias: "monthlyGrowthRate", Type: schema.TypeNumber,
			Default: DefaultScenario.MonthlyGrowthRate, Description: "Monthly growth rate %",
		},
		schema.Field{
			Name: "monthly_churn_rate", Alias: "monthlyChurnRate", Type: schema.TypeNumber,
			Default: DefaultScenario.MonthlyChurnRate, Description: "Monthly churn rate %",
		},
		schema.Field{
			Name: "gross_margin", Alias: "grossMargin", Type: schema.TypeNumber,
			Default: DefaultScenario.GrossMargin, Description: "Gross margin %",
		},
		schema.Field{
			Name: "fixed_costs", Alias: "fixedCosts", Type: schema.TypeNumber,
			Default: DefaultScenario.FixedCosts, Description: "Fixed monthly costs",
		},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, scenarioWidget, model, func(_ context.Context, in ScenarioParams) (*output, error) {
		projections := Project(in)

		return &output{
			Narration: fmt.Sprintf("SaaS Scenario Modeler (%d templates)", len(ScenarioTemplates)),
			Data: scenarioContent{
				Templates:     ScenarioTemplates,
				DefaultInputs: DefaultScenario,
				Inputs:        in,
				Projections:   projections,
				Summary:       Summarize(projections, in.StartingMRR),
			},
		}, nil
	}), nil
}
