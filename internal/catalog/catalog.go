package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry is one installable MCP server.
type Entry struct {
	ID           string `yaml:"id"`
	Key          string `yaml:"key"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Instructions string `yaml:"instructions"`
	// Secret names the credential in messages ("token", "API key").
	Secret       string `yaml:"secret"`
	SecretPrompt string `yaml:"secret_prompt"`
	SkipHint     string `yaml:"skip_hint"`

	build buildFunc
}

type registryFile struct {
	Entries []Entry `yaml:"entries"`
}

var registry = mustParse(catalogYAML, builders)

func mustParse(data []byte, b map[string]buildFunc) []Entry {
	entries, err := parse(data, b)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return entries
}

// parse decodes the registry and binds each entry to its builder.
func parse(data []byte, b map[string]buildFunc) ([]Entry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("registry has no entries")
	}

	seen := make(map[string]bool)
	for i := range f.Entries {
		e := &f.Entries[i]
		if e.ID == "" || e.Key == "" || e.Name == "" {
			return nil, fmt.Errorf("entry %d: id, key and name are required", i+1)
		}
		for _, tok := range []string{strings.ToLower(e.ID), strings.ToLower(e.Key)} {
			if seen[tok] || isAllToken(tok) || isQuitToken(tok) {
				return nil, fmt.Errorf("entry %q: menu token %q is ambiguous", e.Key, tok)
			}
			seen[tok] = true
		}
		build, ok := b[e.Key]
		if !ok {
			return nil, fmt.Errorf("entry %q has no builder", e.Key)
		}
		e.build = build
		if e.Secret == "" {
			e.Secret = "credential"
		}
	}
	return f.Entries, nil
}

// All returns the registry in menu order.
func All() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds an entry by menu id or config key, ignoring case.
func Lookup(token string) (Entry, bool) {
	return lookup(registry, token)
}

func lookup(entries []Entry, token string) (Entry, bool) {
	token = strings.TrimSpace(token)
	for _, e := range entries {
		if strings.EqualFold(token, e.ID) || strings.EqualFold(token, e.Key) {
			return e, true
		}
	}
	return Entry{}, false
}

// IsQuit reports whether a menu answer means the operator wants to leave.
func IsQuit(input string) bool {
	return isQuitToken(strings.ToLower(strings.TrimSpace(input)))
}

func isQuitToken(tok string) bool {
	return tok == "" || tok == "q" || tok == "quit"
}

func isAllToken(tok string) bool {
	return tok == "a" || tok == "all" || tok == "*"
}

// Select parses a comma-separated menu answer. Tokens match entry ids or
// config keys case-insensitively; "A", "all" or "*" selects every entry.
// Duplicates are dropped keeping the first occurrence. Tokens that match
// nothing are returned in unknown.
func Select(input string) (selected []Entry, unknown []string) {
	return selectFrom(registry, input)
}

func selectFrom(entries []Entry, input string) (selected []Entry, unknown []string) {
	picked := make(map[string]bool)
	for _, raw := range strings.Split(input, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		if isAllToken(strings.ToLower(tok)) {
			for _, e := range entries {
				if !picked[e.Key] {
					picked[e.Key] = true
					selected = append(selected, e)
				}
			}
			continue
		}
		e, ok := lookup(entries, tok)
		if !ok {
			unknown = append(unknown, tok)
			continue
		}
		if !picked[e.Key] {
			picked[e.Key] = true
			selected = append(selected, e)
		}
	}
	return selected, unknown
}
