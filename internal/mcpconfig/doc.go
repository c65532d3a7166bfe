// Package mcpconfig reads, merges and writes the Claude Desktop configuration
// file (claude_desktop_config.json).
//
// A [Document] keeps the file's JSON as read and edits it in place with
// gjson/sjson, so members the installer does not understand pass through
// untouched and in order. Server definitions live under the "mcpServers"
// member and are added or replaced with [Document.SetServer]; nothing is
// ever removed.
//
// Writes go through [Backup] followed by [Save], which writes a sibling
// ".tmp" file and renames it over the target so the configuration is never
// observed half-written.
package mcpconfig
