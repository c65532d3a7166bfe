package mcpconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigNotFound is returned when the default configuration file does not
// exist.
var ErrConfigNotFound = errors.New("config file not found")

// PathError reports a missing default configuration file.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("Claude Desktop config not found at %s", e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }

// Hint tells the operator how to fix the problem.
func (e *PathError) Hint() string {
	return "Make sure Claude Desktop is installed and has been opened at least once."
}

// ParseError reports a configuration file that is not valid JSON or does not
// have the expected shape.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("could not parse config file %s: line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("could not parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Hint tells the operator how to fix the problem.
func (e *ParseError) Hint() string {
	return "Fix the JSON manually, then re-run the installer."
}

// ResolvePath returns the configuration path to use. When override is set it
// wins, and a missing or empty file there is seeded with {"mcpServers": {}}
// (created reports whether that happened). Without an override the default
// path must already exist.
func ResolvePath(override, defaultPath string) (path string, created bool, err error) {
	if override != "" {
		data, err := os.ReadFile(override)
		switch {
		case err == nil && len(bytes.TrimSpace(data)) > 0:
			return override, false, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", false, fmt.Errorf("reading config file: %w", err)
		}
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", false, fmt.Errorf("resolving %s: %w", override, err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return "", false, fmt.Errorf("creating config directory: %w", err)
		}
		if err := Save(override, Skeleton()); err != nil {
			return "", false, err
		}
		return override, true, nil
	}

	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, &PathError{Path: defaultPath, Err: ErrConfigNotFound}
		}
		return "", false, fmt.Errorf("checking config file: %w", err)
	}
	return defaultPath, false, nil
}

// Load reads and parses the configuration at path. A file holding only
// whitespace yields an empty document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewDocument(), nil
	}
	doc, err := Parse(data)
	if err != nil {
		pe := &ParseError{Path: path, Err: err}
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			pe.Line, pe.Column = position(data, syn.Offset)
		}
		return nil, pe
	}
	return doc, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
