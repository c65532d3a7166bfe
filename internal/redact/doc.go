// Package redact masks credentials before configuration is shown on screen.
//
// Detection uses regex heuristics covering the shapes that appear in MCP
// server definitions: credential-named JSON members (API keys, tokens,
// passwords), token query parameters embedded in server URLs, bearer tokens,
// JWTs and provider-specific keys (AWS, GitHub, Slack, Anthropic, OpenAI).
// Member names are kept so the operator can see which setting was filled in.
package redact
