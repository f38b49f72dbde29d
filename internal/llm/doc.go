// Package llm is a minimal client for OpenAI-compatible chat completion APIs
// with function calling.
//
// Only the subset the chat simulator needs is modeled: system, user,
// assistant, and tool messages; function tool declarations; and the first
// choice of a completion. Any endpoint that speaks the same wire format
// (OpenRouter, Ollama, vLLM) works by changing the base URL.
package llm
