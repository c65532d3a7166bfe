// Package cli wires together the Cobra command tree for the mcpinstall
// binary.
//
// The root command runs the interactive installer; list, config and version
// are read-only helpers. Settings come from flags and MCPINSTALL_*
// environment variables. Fatal problems are printed with a remediation hint
// and mapped to deterministic exit codes: 0 success (including quitting or
// declining), 1 fatal, 2 usage.
package cli
