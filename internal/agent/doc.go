// Package agent runs chat prompts through a tool-calling model connected to
// the widget tools, and extracts the widget to render from the run.
//
// A run produces a closed set of items (tool calls, tool results, and
// narration). The widget payload is derived from those items with a type
// switch; nothing inspects provider-specific shapes.
package agent
