package installer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/mcpinstall/internal/catalog"
	"github.com/dshills/mcpinstall/internal/mcpconfig"
)

// choose shows the menu until the operator picks at least one entry or
// quits. A nil slice means quit.
func (in *Installer) choose(doc *mcpconfig.Document) ([]catalog.Entry, error) {
	entries := catalog.All()
	th := in.Theme

	for {
		in.showMenu(entries, doc)

		answer, err := in.Prompt.ReadLine("Your choice: ")
		if err != nil {
			return nil, err
		}
		if catalog.IsQuit(answer) {
			return nil, nil
		}

		selected, unknown := catalog.Select(answer)
		if len(selected) == 0 {
			in.printf("%s\n\n", th.Fail("Invalid choice. Pick from the menu above."))
			continue
		}
		if len(unknown) > 0 {
			in.printf("%s\n", th.Warning("Ignoring unknown choice: "+strings.Join(unknown, ", ")))
		}
		in.log().Debug("selection", zap.Strings("keys", keys(selected)))
		return selected, nil
	}
}

func (in *Installer) showMenu(entries []catalog.Entry, doc *mcpconfig.Document) {
	th := in.Theme
	in.printf("Which MCPs would you like to install?\n\n")
	for _, e := range entries {
		status := th.Muted.Render("not installed")
		if doc.HasServer(e.Key) {
			status = th.Success.Render("installed") + "  (select to update credentials)"
		}
		in.printf("  [%s] %s - %s\n", e.ID, e.Name, status)
		if e.Description != "" {
			in.printf("       %s\n", e.Description)
		}
		in.printf("\n")
	}
	in.printf("  [A] All PushPress MCPs\n")
	in.printf("  [Q] Quit\n\n")
}

func keys(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}
