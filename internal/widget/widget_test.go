package widget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validWidget() Widget {
	return Widget{
		Identifier:  "show_card",
		Title:       "Show Card Widget",
		Description: "Display a card.",
		TemplateURI: "ui://widget/boilerplate.html",
		Invoking:    "Loading card widget...",
		Invoked:     "Card widget ready",
		Component:   "boilerplate",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *Widget)
		wantErr string
	}{
		{name: "valid", mutate: func(*Widget) {}},
		{
			name:    "identifier starts with digit",
			mutate:  func(w *Widget) { w.Identifier = "1card" },
			wantErr: "identifier",
		},
		{
			name:    "identifier with uppercase",
			mutate:  func(w *Widget) { w.Identifier = "showCard" },
			wantErr: "identifier",
		},
		{
			name:    "wrong scheme",
			mutate:  func(w *Widget) { w.TemplateURI = "https://widget/boilerplate.html" },
			wantErr: "template URI",
		},
		{
			name:    "wrong extension",
			mutate:  func(w *Widget) { w.TemplateURI = "ui://widget/boilerplate.js" },
			wantErr: "template URI",
		},
		{
			name:    "missing component",
			mutate:  func(w *Widget) { w.Component = "" },
			wantErr: "component",
		},
		{
			name:    "missing title",
			mutate:  func(w *Widget) { w.Title = "" },
			wantErr: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWidget()
			tt.mutate(&w)

			err := w.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	w := Widget{Identifier: "Bad", TemplateURI: "x"}

	err := w.Validate()
	require.ErrorContains(t, err, "identifier")
	require.ErrorContains(t, err, "title")
	require.ErrorContains(t, err, "template URI")
	require.ErrorContains(t, err, "component")
}

func TestResourceDescription(t *testing.T) {
	w := validWidget()
	require.Equal(t, "Show Card Widget widget markup", w.ResourceDescription())
}
