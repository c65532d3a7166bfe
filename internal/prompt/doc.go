// Package prompt reads answers from the human operator.
//
// [Terminal] reads from the controlling terminal even when standard input is
// a pipe, which is the case when the installer itself was piped into a shell.
// [Reader] reads from any io.Reader and backs both the terminal fallback and
// tests.
package prompt
