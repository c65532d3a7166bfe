package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownWriter outputs the listing as a markdown table, handy for pasting
// into a support ticket.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, l *Listing) error {
	ew := &errWriter{w: w}

	ew.printf("## MCP servers\n\n")
	ew.printf("Config: `%s`\n\n", l.Path)

	if len(l.Servers) == 0 {
		ew.println("No MCP servers installed.")
		return ew.err
	}

	ew.println("| Key | Command | Args | Env |")
	ew.println("|-----|---------|------|-----|")
	for _, s := range l.Servers {
		key := mdCell(s.Key)
		if s.Err != nil {
			key += " (unrecognized definition)"
		}
		ew.printf("| %s | %s | %s | %s |\n",
			key,
			mdCode(s.Command),
			mdCode(strings.Join(s.Args, " ")),
			mdCell(strings.Join(envKeys(s.Env), ", ")),
		)
	}
	return ew.err
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func mdCode(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("`%s`", mdCell(s))
}

func envKeys(env map[string]string) []string {
	pairs := envPairs(env)
	for i, p := range pairs {
		pairs[i], _, _ = strings.Cut(p, "=")
	}
	return pairs
}
