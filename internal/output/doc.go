// Package output renders what the installer shows the operator.
//
// Listings of installed servers support three formats:
//   - text     - human-readable terminal output (default)
//   - json     - structured listing for scripts
//   - markdown - a table for pasting into a support ticket
//
// Use [GetWriter] to obtain a [Writer] for a format string. [WritePreview]
// and its companions render the --preview change set, and [Theme] colours
// status lines only when the destination is a terminal.
package output
