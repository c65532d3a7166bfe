// Package catalog is the fixed registry of MCP servers the installer knows
// how to add, and the builders that turn an operator's credential into a
// server definition.
//
// Entry metadata (menu id, display text, prompts) lives in catalog.yaml,
// embedded in the binary and parsed once at start-up. The server shape for
// each entry is built in Go, keyed by the entry's config key.
package catalog
