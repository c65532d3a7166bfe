package output

import (
	"fmt"
	"io"

	"github.com/dshills/mcpinstall/internal/mcpconfig"
	"github.com/dshills/mcpinstall/internal/redact"
)

// Listing is the set of servers found in one config file.
type Listing struct {
	Path    string
	Servers []mcpconfig.NamedServer
}

// Writer writes a listing in a specific format.
type Writer interface {
	Write(w io.Writer, l *Listing) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Masked returns a copy of l with credentials in args and env replaced.
func (l *Listing) Masked() *Listing {
	out := &Listing{Path: l.Path, Servers: make([]mcpconfig.NamedServer, len(l.Servers))}
	for i, s := range l.Servers {
		m := mcpconfig.NamedServer{Key: s.Key, Server: mcpconfig.Server{Command: s.Command}, Err: s.Err}
		for _, a := range s.Args {
			m.Args = append(m.Args, redact.Arg(a))
		}
		if len(s.Env) > 0 {
			m.Env = make(map[string]string, len(s.Env))
			for k, v := range s.Env {
				if redact.IsSecretName(k) {
					v = redact.Value(v)
				} else {
					v = redact.Arg(v)
				}
				m.Env[k] = v
			}
		}
		out.Servers[i] = m
	}
	return out
}
