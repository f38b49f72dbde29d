// Package meta builds the protocol metadata attached to widget tool
// declarations, resources, and invocation results.
package meta

import (
	"net/url"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mcp-apps-go/internal/assets"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

// ExternalResourceDomains are the CDNs widgets load scripts, styles, images,
// and fonts from.
var ExternalResourceDomains = []string{
	"https://cdn.openai.com",           // apps-sdk-ui fonts
	"https://images.unsplash.com",      // sample images
	"https://persistent.oaistatic.com", // sample images
	"https://cesium.com",               // globe library for the map widget
	"https://tile.openstreetmap.org",   // map tiles
}

// ExternalConnectDomains are the only external origins widgets may fetch
// from. Keep this the minimal subset of ExternalResourceDomains.
var ExternalConnectDomains = []string{
	"https://cesium.com",
	"https://tile.openstreetmap.org",
}

// Meta keys understood by ChatGPT-compatible hosts.
const (
	KeyOutputTemplate   = "openai/outputTemplate"
	KeyInvoking         = "openai/toolInvocation/invoking"
	KeyInvoked          = "openai/toolInvocation/invoked"
	KeyWidgetAccessible = "openai/widgetAccessible"
	KeyResultCanProduce = "openai/resultCanProduceWidget"
)

// CSP lists the origins a widget's sandbox may reach.
type CSP struct {
	// ResourceDomains covers scripts, styles, images, and fonts.
	ResourceDomains []string `json:"resourceDomains"`
	// ConnectDomains covers fetch and XHR.
	ConnectDomains []string `json:"connectDomains"`
}

// UI is the "ui" metadata block linking a tool to its resource.
type UI struct {
	ResourceURI string `json:"resourceUri"`
	CSP         CSP    `json:"csp"`
}

// Builder computes metadata from the configured base URL.
type Builder struct {
	baseURL string
}

// NewBuilder creates a builder for the given asset base URL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: assets.NormalizeBaseURL(baseURL)}
}

// Origin returns the scheme and host of the base URL, e.g.
// "http://localhost:8000" for "http://localhost:8000/assets".
func (b *Builder) Origin() string {
	u, err := url.Parse(b.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimRight(b.baseURL, "/")
	}

	return u.Scheme + "://" + u.Host
}

// CSP returns fresh domain lists with the server's own origin first.
func (b *Builder) CSP() CSP {
	origin := b.Origin()

	return CSP{
		ResourceDomains: withOrigin(origin, ExternalResourceDomains),
		ConnectDomains:  withOrigin(origin, ExternalConnectDomains),
	}
}

func withOrigin(origin string, domains []string) []string {
	out := make([]string, 0, len(domains)+1)
	out = append(out, origin)

	for _, d := range domains {
		if d != origin {
			out = append(out, d)
		}
	}

	return out
}

// UI returns the ui block for a widget.
func (b *Builder) UI(w *widget.Widget) UI {
	return UI{ResourceURI: w.TemplateURI, CSP: b.CSP()}
}

// ToolMeta returns the metadata attached to a tool declaration and to the
// widget's resource entries.
func (b *Builder) ToolMeta(w *widget.Widget) mcp.Meta {
	return mcp.Meta{
		"ui":                b.UI(w),
		KeyOutputTemplate:   w.TemplateURI,
		KeyInvoking:         w.Invoking,
		KeyInvoked:          w.Invoked,
		KeyWidgetAccessible: true,
		KeyResultCanProduce: true,
	}
}

// InvocationMeta returns the metadata attached to each tool call result. It
// is recomputed per call.
func (b *Builder) InvocationMeta(w *widget.Widget) mcp.Meta {
	return mcp.Meta{
		"ui":        b.UI(w),
		KeyInvoking: w.Invoking,
		KeyInvoked:  w.Invoked,
	}
}

// ContentSecurityPolicy renders the CSP header used when serving widget HTML
// from the sandbox origin. frameAncestors lists the hosts allowed to embed it;
// empty means any.
func (b *Builder) ContentSecurityPolicy(frameAncestors []string) string {
	csp := b.CSP()

	resources := strings.Join(slices.Concat([]string{"'self'"}, csp.ResourceDomains), " ")
	connect := strings.Join(slices.Concat([]string{"'self'"}, csp.ConnectDomains), " ")

	ancestors := "*"
	if len(frameAncestors) > 0 {
		ancestors = strings.Join(frameAncestors, " ")
	}

	directives := []string{
		"default-src 'none'",
		"script-src " + resources + " 'unsafe-inline' blob:",
		"style-src " + resources + " 'unsafe-inline'",
		"img-src " + resources + " data: blob:",
		"font-src " + resources + " data:",
		"connect-src " + connect,
		"worker-src 'self' blob:",
		"frame-ancestors " + ancestors,
	}

	return strings.Join(directives, "; ")
}
