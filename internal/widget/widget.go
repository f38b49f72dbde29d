// Package widget defines the immutable descriptor of a renderable widget tool.
package widget

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Scheme is the reserved URI scheme for widget templates.
const Scheme = "ui://"

// MIMEType marks a resource as an MCP App HTML document.
const MIMEType = "text/html;profile=mcp-app"

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Widget describes a tool whose successful invocation renders an HTML resource.
// A Widget is constructed once at startup and never mutated.
type Widget struct {
	// Identifier is the tool name, e.g. "show_card".
	Identifier string
	// Title is the human-readable tool title.
	Title string
	// Description is shown verbatim to the calling model.
	Description string
	// TemplateURI is the resource URI, e.g. "ui://widget/boilerplate.html".
	TemplateURI string
	// Invoking is the status line shown while the tool runs.
	Invoking string
	// Invoked is the status line shown once the tool has returned.
	Invoked string
	// Component is the HTML bundle name resolved by the asset loader.
	Component string
}

// Validate reports whether the descriptor is well formed.
func (w *Widget) Validate() error {
	var errs []error

	if !identifierPattern.MatchString(w.Identifier) {
		errs = append(errs, fmt.Errorf("identifier %q must match %s", w.Identifier, identifierPattern))
	}

	if w.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}

	if !strings.HasPrefix(w.TemplateURI, Scheme) || !strings.HasSuffix(w.TemplateURI, ".html") {
		errs = append(errs, fmt.Errorf("template URI %q must start with %s and end with .html", w.TemplateURI, Scheme))
	}

	if w.Component == "" {
		errs = append(errs, errors.New("component name is required"))
	}

	return errors.Join(errs...)
}

// ResourceDescription is the description attached to the widget's resource entry.
func (w *Widget) ResourceDescription() string {
	return w.Title + " widget markup"
}
