// Package httpapi serves the widget server over HTTP: the MCP endpoint, the
// chat and tool bridge used by the demo page, static assets, and the sandbox
// origin that renders widget HTML under a Content-Security-Policy.
package httpapi
