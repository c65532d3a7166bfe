package mcpconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ServersKey is the top-level member holding server definitions.
const ServersKey = "mcpServers"

var errNotObject = errors.New("expected a JSON object")

// Server describes how Claude Desktop launches one MCP server process.
type Server struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// NamedServer pairs a server definition with its key. Err is set when the
// stored definition does not have the command/args/env shape; Server then
// holds whatever could be decoded.
type NamedServer struct {
	Key string
	Server
	Err error
}

// Document is a parsed Claude Desktop configuration. The raw JSON is kept as
// read, so members the installer never touches keep their bytes and order.
type Document struct {
	data []byte
}

// NewDocument returns an empty document, equivalent to "{}".
func NewDocument() *Document {
	return &Document{data: []byte("{}")}
}

// Skeleton returns the minimal document written for new sandbox files.
func Skeleton() *Document {
	return &Document{data: []byte(`{"mcpServers":{}}`)}
}

// Parse decodes a configuration document. The top level must be an object
// and mcpServers, when present and not null, must be an object too.
func Parse(data []byte) (*Document, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, errNotObject
	}
	if s := root.Get(ServersKey); s.Exists() && s.Type != gjson.Null && !s.IsObject() {
		return nil, fmt.Errorf("%s: %w", ServersKey, errNotObject)
	}
	return &Document{data: bytes.TrimSpace(raw)}, nil
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{data: append([]byte(nil), d.data...)}
}

func (d *Document) servers() gjson.Result {
	return gjson.GetBytes(d.data, ServersKey)
}

// ServerKeys returns the server keys in document order.
func (d *Document) ServerKeys() []string {
	var keys []string
	d.servers().ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// HasServer reports whether a server is defined under key.
func (d *Document) HasServer(key string) bool {
	_, ok := d.serverRaw(key)
	return ok
}

// serverRaw looks key up by walking the members, which sidesteps path syntax
// in server names.
func (d *Document) serverRaw(key string) (json.RawMessage, bool) {
	var (
		raw   json.RawMessage
		found bool
	)
	d.servers().ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			raw, found = json.RawMessage(v.Raw), true
			return false
		}
		return true
	})
	return raw, found
}

// Servers decodes every server definition in document order. Entries that do
// not follow the command/args/env shape carry the decode error in Err.
func (d *Document) Servers() []NamedServer {
	var out []NamedServer
	d.servers().ForEach(func(k, v gjson.Result) bool {
		ns := NamedServer{Key: k.String()}
		if err := json.Unmarshal([]byte(v.Raw), &ns.Server); err != nil {
			ns.Err = err
		}
		out = append(out, ns)
		return true
	})
	return out
}

// SetServer stores s under key, replacing any existing definition in place.
// New keys are appended; other members are left as they are.
func (d *Document) SetServer(key string, s Server) error {
	if s.Args == nil {
		s.Args = []string{}
	}
	raw, err := marshal(s)
	if err != nil {
		return fmt.Errorf("encoding server %q: %w", key, err)
	}

	data := d.data
	if !d.servers().IsObject() {
		if data, err = sjson.SetRawBytes(data, ServersKey, []byte("{}")); err != nil {
			return fmt.Errorf("adding %s: %w", ServersKey, err)
		}
	}
	if data, err = sjson.SetRawBytes(data, serverPath(key), raw); err != nil {
		return fmt.Errorf("setting server %q: %w", key, err)
	}
	d.data = data
	return nil
}

// serverPath builds the sjson path for a server key. Every ASCII character
// other than letters, digits, '-' and '_' is backslash-escaped so names like
// "a.b" or "x*" address a single member.
func serverPath(key string) string {
	var b strings.Builder
	b.WriteString(ServersKey)
	b.WriteByte('.')
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < utf8.RuneSelf && !isPlainPathByte(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isPlainPathByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

// Bytes returns the document as 2-space indented JSON with a trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	return indent(d.data)
}

// ServersBlock renders {"mcpServers": {...}} on its own, as shown in previews.
func (d *Document) ServersBlock() ([]byte, error) {
	raw := "{}"
	if s := d.servers(); s.IsObject() {
		raw = s.Raw
	}
	return indent([]byte(`{"` + ServersKey + `":` + raw + `}`))
}

// marshal encodes v without HTML escaping, matching what Claude Desktop
// itself writes.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// indent re-indents JSON with two spaces and a trailing newline.
func indent(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
