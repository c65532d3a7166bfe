package redact

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"

	"github.com/tidwall/gjson"
)

const placeholder = "[REDACTED]"

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules are regex heuristics for credentials that end up in MCP server
// definitions. Rules with a replacement template keep the surrounding key so
// the operator can still see which setting was filled in.
var rules = []rule{
	// JSON members whose name looks like a credential: "METABASE_API_KEY": "..."
	{regexp.MustCompile(`("[A-Za-z0-9_.-]*(?i:key|token|secret|password|passwd|credential)[A-Za-z0-9_.-]*"\s*:\s*")((?:[^"\\]|\\.)*)(")`), "${1}" + placeholder + "${3}"},
	// Query parameters carrying tokens: ?mcp_token=..., &api_key=...
	// The value runs to the closing quote or end of line, since a token may
	// itself contain '&' or spaces.
	{regexp.MustCompile(`(` + queryParam.String() + `)(?:[^"\\\n]|\\.)+`), "${1}" + placeholder},
	// Bearer tokens
	{regexp.MustCompile(`(?i)(Bearer\s+)[A-Za-z0-9._-]{20,}`), "${1}" + placeholder},
	// JWTs (three base64 segments separated by dots)
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`), placeholder},
	// AWS access key IDs
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), placeholder},
	// GitHub tokens
	{regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`), placeholder},
	// Slack tokens
	{regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`), placeholder},
	// Anthropic API keys
	{regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`), placeholder},
	// OpenAI API keys
	{regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`), placeholder},
}

// Secrets replaces detected credentials in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.repl)
	}
	return result
}

// queryParam matches the start of a credential-carrying query parameter.
var queryParam = regexp.MustCompile(`[?&][A-Za-z0-9_]*(?i:token|key|secret)=`)

// Arg masks one command-line argument or plain setting value. Everything after
// a credential query parameter is dropped, whatever characters it contains.
func Arg(s string) string {
	s = Secrets(s)
	if loc := queryParam.FindStringIndex(s); loc != nil {
		return s[:loc[1]] + placeholder
	}
	return s
}

// JSON masks credentials in a JSON document by walking its structure rather
// than its text. String members with a credential-like name are replaced
// whole and every other string goes through [Arg]. The result is compact JSON
// with member order kept.
func JSON(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("redact: invalid JSON")
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, gjson.ParseBytes(data), false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeJSON re-encodes v. secret is set for values held by a credential-named
// member, including the elements of an array held by one.
func writeJSON(buf *bytes.Buffer, v gjson.Result, secret bool) error {
	var err error
	switch {
	case v.IsObject():
		buf.WriteByte('{')
		first := true
		v.ForEach(func(k, val gjson.Result) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			buf.WriteString(k.Raw)
			buf.WriteByte(':')
			err = writeJSON(buf, val, IsSecretName(k.String()))
			return err == nil
		})
		buf.WriteByte('}')
	case v.IsArray():
		buf.WriteByte('[')
		first := true
		v.ForEach(func(_, val gjson.Result) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			err = writeJSON(buf, val, secret)
			return err == nil
		})
		buf.WriteByte(']')
	case v.Type == gjson.String:
		s := v.String()
		if secret {
			s = Value(s)
		} else {
			s = Arg(s)
		}
		err = writeString(buf, s)
	default:
		buf.WriteString(v.Raw)
	}
	return err
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// Value masks a single credential value, keeping nothing of it.
func Value(s string) string {
	if s == "" {
		return s
	}
	return placeholder
}

// IsSecretName reports whether an environment variable or setting name looks
// like it holds a credential.
func IsSecretName(name string) bool {
	return secretName.MatchString(name)
}

var secretName = regexp.MustCompile(`(?i)(key|token|secret|password|passwd|credential)`)
