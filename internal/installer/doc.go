// Package installer runs the interactive install flow: resolve and load the
// Claude Desktop config, ask which servers to add, collect credentials,
// optionally preview the change, then back up and write the file.
package installer
