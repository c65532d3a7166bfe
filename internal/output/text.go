package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// TextWriter outputs a human-readable listing.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, l *Listing) error {
	ew := &errWriter{w: w}

	ew.printf("Config: %s\n", l.Path)
	if len(l.Servers) == 0 {
		ew.println("  mcpServers: (empty, no MCPs installed yet)")
		return ew.err
	}
	ew.printf("  mcpServers (%d installed):\n", len(l.Servers))
	for _, s := range l.Servers {
		ew.printf("    • %s\n", s.Key)
		if s.Err != nil {
			ew.printf("        (unrecognized definition: %v)\n", s.Err)
		}
		if s.Command != "" {
			ew.printf("        command: %s\n", s.Command)
		}
		if len(s.Args) > 0 {
			ew.printf("        args:    %s\n", strings.Join(s.Args, " "))
		}
		if len(s.Env) > 0 {
			ew.printf("        env:     %s\n", strings.Join(envPairs(s.Env), ", "))
		}
	}
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func envPairs(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + env[k]
	}
	return pairs
}
