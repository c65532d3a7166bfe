// Mcpinstall adds PushPress-managed MCP servers to Claude Desktop's config.
//
// It merges server definitions into claude_desktop_config.json without
// touching anything else in the file, keeps a .backup copy of the previous
// version, and replaces the file atomically.
//
// Usage:
//
//	mcpinstall                                # interactive install
//	mcpinstall --preview                      # show the diff, ask before writing
//	mcpinstall --config /tmp/sandbox.json     # work on a sandbox file
//	mcpinstall list --format json             # list installed servers
//	mcpinstall config show                    # effective settings
//
// Settings can also be given as MCPINSTALL_* environment variables, for
// example MCPINSTALL_CONFIG or MCPINSTALL_NODE_MIN_MAJOR.
package main
