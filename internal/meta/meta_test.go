package meta

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var mapWidget = &widget.Widget{
	Identifier:  "show_map",
	Title:       "Show Map",
	TemplateURI: "ui://widget/map.html",
	Invoking:    "Loading map...",
	Invoked:     "Map ready",
	Component:   "map",
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{"", "http://localhost:8000"},
		{"http://localhost:8000/assets", "http://localhost:8000"},
		{"https://widgets.example.com:8443/static/assets/", "https://widgets.example.com:8443"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NewBuilder(tt.baseURL).Origin(), tt.baseURL)
	}
}

func TestCSP_IncludesOrigin(t *testing.T) {
	csp := NewBuilder("https://demo.example.com/assets").CSP()

	require.Equal(t, "https://demo.example.com", csp.ResourceDomains[0])
	require.Equal(t, "https://demo.example.com", csp.ConnectDomains[0])
	require.Subset(t, csp.ResourceDomains, ExternalResourceDomains)
	require.Subset(t, csp.ConnectDomains, ExternalConnectDomains)
}

func TestCSP_ConnectIsSubsetOfResource(t *testing.T) {
	csp := NewBuilder("").CSP()

	require.Less(t, len(csp.ConnectDomains), len(csp.ResourceDomains))
	require.Subset(t, csp.ResourceDomains, csp.ConnectDomains)
}

func TestCSP_DomainsAreOrigins(t *testing.T) {
	csp := NewBuilder("").CSP()

	for _, d := range csp.ResourceDomains {
		u, err := url.Parse(d)
		require.NoError(t, err, d)
		require.NotEmpty(t, u.Scheme, d)
		require.NotEmpty(t, u.Host, d)
		require.False(t, strings.HasSuffix(d, "/"), "trailing slash in %s", d)
		require.NotContains(t, d, "*")
	}
}

func TestCSP_ReturnsFreshSlices(t *testing.T) {
	b := NewBuilder("")

	first := b.CSP()
	first.ResourceDomains[1] = "https://evil.example"

	require.Equal(t, ExternalResourceDomains[0], b.CSP().ResourceDomains[1])
}

func TestToolMeta(t *testing.T) {
	m := NewBuilder("http://localhost:8000/assets").ToolMeta(mapWidget)

	ui, ok := m["ui"].(UI)
	require.True(t, ok)
	require.Equal(t, "ui://widget/map.html", ui.ResourceURI)
	require.Equal(t, "http://localhost:8000", ui.CSP.ResourceDomains[0])
	require.Equal(t, "ui://widget/map.html", m[KeyOutputTemplate])
	require.Equal(t, "Loading map...", m[KeyInvoking])
	require.Equal(t, "Map ready", m[KeyInvoked])

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"resourceUri":"ui://widget/map.html"`)
	require.Contains(t, string(raw), `"connectDomains":["http://localhost:8000","https://cesium.com","https://tile.openstreetmap.org"]`)
}

func TestInvocationMeta(t *testing.T) {
	b := NewBuilder("")

	m := b.InvocationMeta(mapWidget)

	ui, ok := m["ui"].(UI)
	require.True(t, ok)
	require.Equal(t, b.UI(mapWidget), ui)
	require.NotContains(t, m, KeyOutputTemplate)
}

func TestContentSecurityPolicy(t *testing.T) {
	b := NewBuilder("http://localhost:8000/assets")

	policy := b.ContentSecurityPolicy(nil)
	require.Contains(t, policy, "default-src 'none'")
	require.Contains(t, policy, "connect-src 'self' http://localhost:8000 https://cesium.com https://tile.openstreetmap.org")
	require.Contains(t, policy, "img-src 'self' http://localhost:8000 https://cdn.openai.com")
	require.Contains(t, policy, "frame-ancestors *")
	require.NotContains(t, strings.SplitN(policy, "connect-src", 2)[1], "images.unsplash.com")

	scoped := b.ContentSecurityPolicy([]string{"http://localhost:5173"})
	require.Contains(t, scoped, "frame-ancestors http://localhost:5173")
}
