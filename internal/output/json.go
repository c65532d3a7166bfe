package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs the listing as JSON.
type JSONWriter struct{}

type jsonServer struct {
	Key     string            `json:"key"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type jsonListing struct {
	Path    string       `json:"path"`
	Servers []jsonServer `json:"servers"`
}

func (j *JSONWriter) Write(w io.Writer, l *Listing) error {
	out := jsonListing{Path: l.Path, Servers: make([]jsonServer, 0, len(l.Servers))}
	for _, s := range l.Servers {
		js := jsonServer{Key: s.Key, Command: s.Command, Args: s.Args, Env: s.Env}
		if s.Err != nil {
			js.Error = s.Err.Error()
		}
		out.Servers = append(out.Servers, js)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
