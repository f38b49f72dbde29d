// Package errors defines error types for the MCP Apps widget server.
//
// This package provides structured error types for the failure scenarios the
// server can hit outside of protocol-level tool results: missing widget
// assets, invalid configuration, and upstream model provider failures. All
// error types support error unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors
