package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"
)

type cardInput struct {
	Title       string `json:"title"`
	AccentColor string `json:"accentColor"`
}

func cardModel(t *testing.T) *Model {
	t.Helper()

	m, err := NewModel("CardInput",
		Field{Name: "title", Type: TypeString, Default: "Card Widget", Description: "Widget title"},
		Field{Name: "accent_color", Alias: "accentColor", Type: TypeString, Default: "#2563eb"},
	)
	require.NoError(t, err)

	return m
}

func TestDecode_Defaults(t *testing.T) {
	m := cardModel(t)

	for _, args := range []map[string]any{nil, {}} {
		in, err := Decode[cardInput](m, args)
		require.NoError(t, err)
		require.Equal(t, cardInput{Title: "Card Widget", AccentColor: "#2563eb"}, in)
	}
}

func TestDecode_AliasAndName(t *testing.T) {
	m := cardModel(t)

	byAlias, err := Decode[cardInput](m, map[string]any{"accentColor": "#10b981"})
	require.NoError(t, err)
	require.Equal(t, "#10b981", byAlias.AccentColor)

	byName, err := Decode[cardInput](m, map[string]any{"accent_color": "#f00"})
	require.NoError(t, err)
	require.Equal(t, "#f00", byName.AccentColor)

	both, err := Decode[cardInput](m, map[string]any{"accent_color": "#f00", "accentColor": "#0f0"})
	require.NoError(t, err)
	require.Equal(t, "#0f0", both.AccentColor)
}

func TestValidate_RejectsUnknownFields(t *testing.T) {
	m := cardModel(t)

	_, err := m.Validate(map[string]any{"bogus": 1, "another": true, "title": "ok"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []Issue{
		{Field: "another", Message: "Extra inputs are not permitted"},
		{Field: "bogus", Message: "Extra inputs are not permitted"},
	}, verr.Issues)
	require.Equal(t, []string{"title", "accent_color (accentColor)"}, verr.ValidFields)

	msg := err.Error()
	require.Contains(t, msg, "Validation error. Issues:")
	require.Contains(t, msg, "  - bogus: Extra inputs are not permitted")
	require.Contains(t, msg, "Valid fields: title, accent_color (accentColor)")
}

func TestValidate_TypeMismatch(t *testing.T) {
	m, err := NewModel("QrInput",
		Field{Name: "box_size", Alias: "boxSize", Type: TypeInteger, Default: 10},
		Field{Name: "text", Type: TypeString, Default: "x"},
	)
	require.NoError(t, err)

	_, err = m.Validate(map[string]any{"boxSize": "big", "text": 12.0})
	require.Error(t, err)
	require.Contains(t, err.Error(), "boxSize: Input should be a valid integer")
	require.Contains(t, err.Error(), "text: Input should be a valid string")
}

func TestValidate_Bounds(t *testing.T) {
	m, err := NewModel("QrInput",
		Field{
			Name:    "box_size",
			Alias:   "boxSize",
			Type:    TypeInteger,
			Default: 10,
			Minimum: jsonschema.Ptr(1.0),
			Maximum: jsonschema.Ptr(100.0),
		},
	)
	require.NoError(t, err)
	require.Equal(t, 100.0, *m.Schema().Properties["boxSize"].Maximum)

	values, err := m.Validate(map[string]any{"boxSize": 100.0})
	require.NoError(t, err)
	require.EqualValues(t, 100, values["boxSize"])

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "below", in: 0.0, want: "boxSize: Input should be greater than or equal to 1"},
		{name: "above", in: 101.0, want: "boxSize: Input should be less than or equal to 100"},
		{name: "huge string", in: "1495681951922396077", want: "boxSize: Input should be less than or equal to 100"},
		{name: "not a number", in: "big", want: "boxSize: Input should be a valid integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(map[string]any{"boxSize": tt.in})
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidate_LaxNumericStrings(t *testing.T) {
	m, err := NewModel("Scenario",
		Field{Name: "starting_mrr", Alias: "startingMRR", Type: TypeNumber, Default: 50000},
		Field{Name: "border", Type: TypeInteger, Default: 4},
	)
	require.NoError(t, err)

	values, err := m.Validate(map[string]any{"starting_mrr": "75000", "border": "2"})
	require.NoError(t, err)
	require.InDelta(t, 75000.0, values["startingMRR"], 0)
	require.EqualValues(t, 2, values["border"])
}

func TestValidate_Enum(t *testing.T) {
	m, err := NewModel("CarouselInput",
		Field{
			Name:    "category",
			Type:    TypeString,
			Default: "restaurants",
			Enum:    []string{"restaurants", "hotels", "products", "attractions"},
		},
	)
	require.NoError(t, err)

	_, err = m.Validate(map[string]any{"category": "hotels"})
	require.NoError(t, err)

	_, err = m.Validate(map[string]any{"category": "spaceships"})
	require.ErrorContains(t, err,
		"category: Input should be 'restaurants', 'hotels', 'products' or 'attractions'")
}

func TestValidate_NullableEnum(t *testing.T) {
	m, err := NewModel("SolarSystemInput",
		Field{
			Name:     "planet_name",
			Type:     TypeString,
			Default:  "",
			Enum:     []string{"Mercury", "Venus", "Earth", "Mars"},
			Nullable: true,
		},
	)
	require.NoError(t, err)

	type input struct {
		Planet string `json:"planet_name"`
	}

	in, err := Decode[input](m, map[string]any{"planet_name": nil})
	require.NoError(t, err)
	require.Empty(t, in.Planet)

	in, err = Decode[input](m, map[string]any{"planet_name": "Mars"})
	require.NoError(t, err)
	require.Equal(t, "Mars", in.Planet)

	_, err = Decode[input](m, map[string]any{"planet_name": "Pluto"})
	require.Error(t, err)
}

func TestValidate_EmptyModel(t *testing.T) {
	m, err := NewModel("SystemInfoInput")
	require.NoError(t, err)

	values, err := m.Validate(nil)
	require.NoError(t, err)
	require.Empty(t, values)

	_, err = m.Validate(map[string]any{"verbose": true})
	require.ErrorContains(t, err, "Valid fields: (none)")
}

func TestNewModel_Errors(t *testing.T) {
	_, err := NewModel("Dup",
		Field{Name: "title", Type: TypeString, Default: ""},
		Field{Name: "name", Alias: "title", Type: TypeString, Default: ""},
	)
	require.ErrorContains(t, err, "duplicate field key")

	_, err = NewModel("BadType", Field{Name: "x", Type: "array"})
	require.ErrorContains(t, err, "unsupported type")
}

func TestSchema(t *testing.T) {
	m := cardModel(t)

	raw, err := json.Marshal(m.Schema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	require.Equal(t, "object", doc["type"])
	require.Contains(t,
		[]any{false, map[string]any{"not": map[string]any{}}},
		doc["additionalProperties"],
		"unknown properties must be disallowed")

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, props, "title")
	require.Contains(t, props, "accentColor")
	require.NotContains(t, props, "accent_color")

	title, ok := props["title"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "string", title["type"])
	require.Equal(t, "Card Widget", title["default"])
	require.Equal(t, "Widget title", title["description"])
}

func TestMustModel_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustModel("Bad", Field{Name: "x", Type: "object"})
	})
}
