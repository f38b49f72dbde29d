// Package mcp exposes the widget dispatcher over the Model Context Protocol.
//
// NewServer registers every widget tool, data-only tool, resource, and
// resource template with an official MCP SDK server. Tool calls and resource
// reads are routed through receiving middleware straight to the Backend, so
// unknown tool names and unknown resource URIs come back as structured
// results instead of JSON-RPC errors.
//
// The package also provides the result constructors shared by widget
// handlers.
package mcp
