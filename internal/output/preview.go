package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/mcpinstall/internal/mcpconfig"
	"github.com/dshills/mcpinstall/internal/redact"
)

const ruleWidth = 50

// Preview is the prospective change set shown before anything is written.
type Preview struct {
	Target      string
	Changes     []mcpconfig.Change
	Block       []byte
	ShowSecrets bool
}

// WritePreviewBanner announces preview mode.
func WritePreviewBanner(w io.Writer, th Theme) error {
	ew := &errWriter{w: w}
	ew.printf("\n%s\n", strings.Repeat("━", ruleWidth))
	ew.printf("  %s\n", th.Header.Render("PREVIEW MODE  (--preview)"))
	ew.printf("%s\n", strings.Repeat("━", ruleWidth))
	ew.println("  No changes will be written until you confirm.")
	ew.println("  Config file will NOT be modified until you say yes.")
	ew.println("")
	return ew.err
}

// WriteCurrent lists the servers already present in the config.
func WriteCurrent(w io.Writer, th Theme, path string, keys []string) error {
	ew := &errWriter{w: w}
	ew.printf("\nCurrent config: %s\n", path)
	if len(keys) == 0 {
		ew.println(th.Muted.Render("  mcpServers: (empty, no MCPs installed yet)"))
	} else {
		ew.printf("  mcpServers (%d installed):\n", len(keys))
		for _, k := range keys {
			ew.printf("    • %s\n", k)
		}
	}
	ew.println("")
	return ew.err
}

// WritePreview renders the change list and the full proposed mcpServers
// block. Credentials in the block are masked unless ShowSecrets is set.
func WritePreview(w io.Writer, th Theme, p Preview) error {
	ew := &errWriter{w: w}

	ew.printf("\n%s\n", strings.Repeat("─", ruleWidth))
	ew.println("  Config diff: what would be written")
	ew.printf("  Target: %s\n\n", p.Target)

	if len(p.Changes) == 0 {
		ew.println(th.Muted.Render("  (no changes detected)"))
	}
	for _, c := range p.Changes {
		ew.printf("    %s\n", changeLine(th, c))
	}

	if len(p.Block) > 0 {
		raw := p.Block
		if !p.ShowSecrets {
			masked, err := maskBlock(raw)
			if err != nil {
				return err
			}
			raw = masked
		}
		block := strings.TrimRight(string(raw), "\n")
		ew.println("\n  Full mcpServers block after change:")
		ew.printf("  %s\n", strings.ReplaceAll(block, "\n", "\n  "))
		if !p.ShowSecrets {
			ew.println(th.Muted.Render("  (credentials masked; re-run with --show-secrets to display them)"))
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", ruleWidth))
	return ew.err
}

// maskBlock masks credentials in a JSON block and re-indents it the way
// [mcpconfig.Document.ServersBlock] lays it out.
func maskBlock(block []byte) ([]byte, error) {
	masked, err := redact.JSON(block)
	if err != nil {
		return nil, fmt.Errorf("masking preview: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, masked, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func changeLine(th Theme, c mcpconfig.Change) string {
	switch c.Kind {
	case mcpconfig.Added:
		return th.Success.Render(fmt.Sprintf("+ ADD    %q", c.Key))
	case mcpconfig.Updated:
		return th.Warn.Render(fmt.Sprintf("~ UPDATE %q", c.Key))
	default:
		return fmt.Sprintf("? %s %q", c.Kind, c.Key)
	}
}
