package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/mcpinstall/internal/catalog"
	"github.com/dshills/mcpinstall/internal/mcpconfig"
	"github.com/dshills/mcpinstall/internal/output"
	"github.com/dshills/mcpinstall/internal/prompt"
)

// Options controls one installer run.
type Options struct {
	// ConfigPath is the --config override. Empty means DefaultPath.
	ConfigPath   string
	DefaultPath  string
	Preview      bool
	ShowSecrets  bool
	NodeMinMajor int
}

// Installer holds the collaborators for a run.
type Installer struct {
	Opts    Options
	Prompt  prompt.Prompter
	Out     io.Writer
	Theme   output.Theme
	Runtime catalog.RuntimeFinder
	Log     *zap.Logger
}

// Result summarises what a run did.
type Result struct {
	Path       string
	Installed  []string
	BackupPath string
	Written    bool
}

// Run executes the install flow. Quitting from the menu, declining the
// preview and closed input all return a nil error; only fatal conditions
// (missing or unparseable config, failed backup or write) are errors.
func (in *Installer) Run(ctx context.Context) (Result, error) {
	res, err := in.run(ctx)
	if errors.Is(err, prompt.ErrClosed) {
		in.log().Debug("input closed")
		return res, nil
	}
	return res, err
}

func (in *Installer) run(ctx context.Context) (Result, error) {
	var res Result
	log := in.log()
	th := in.Theme

	in.printf("\nPushPress MCP Installer\n%s\n", strings.Repeat("=", 40))
	if in.Opts.Preview {
		if err := output.WritePreviewBanner(in.Out, th); err != nil {
			return res, err
		}
	} else {
		in.printf("Adds PushPress tools to Claude Desktop.\n\n")
	}

	path, created, err := mcpconfig.ResolvePath(in.Opts.ConfigPath, in.Opts.DefaultPath)
	if err != nil {
		return res, err
	}
	res.Path = path
	if created {
		in.printf("%s\n", th.Note("Created new sandbox config at: "+path))
	}
	log.Debug("config resolved", zap.String("path", path), zap.Bool("created", created))

	doc, err := mcpconfig.Load(path)
	if err != nil {
		return res, err
	}
	before := doc.Clone()

	if in.Opts.Preview {
		if err := output.WriteCurrent(in.Out, th, path, doc.ServerKeys()); err != nil {
			return res, err
		}
	}

	selected, err := in.choose(doc)
	if err != nil {
		return res, err
	}
	if selected == nil {
		in.printf("Bye!\n")
		return res, nil
	}

	env := &catalog.Env{
		Prompt:       in.Prompt,
		Out:          in.Out,
		Theme:        th,
		Runtime:      in.Runtime,
		NodeMinMajor: in.Opts.NodeMinMajor,
		Log:          log,
	}
	for _, e := range selected {
		ok, err := e.Install(ctx, doc, env)
		if err != nil {
			return res, err
		}
		if ok {
			res.Installed = append(res.Installed, e.Name)
		}
	}

	if len(res.Installed) == 0 {
		in.printf("\nNothing was installed.\n")
		return res, nil
	}

	if in.Opts.Preview {
		ok, err := in.confirm(path, before, doc)
		if err != nil {
			return res, err
		}
		if !ok {
			in.printf("\n%s\n", th.Warning("Aborted, config was NOT changed."))
			in.printf("   Re-run without --preview to apply directly, or run again to adjust.\n")
			return res, nil
		}
	}

	backup, err := mcpconfig.Backup(path)
	if err != nil {
		return res, err
	}
	res.BackupPath = backup
	in.printf("%s\n", th.OK("Backed up config -> "+backup))

	if err := mcpconfig.Save(path, doc); err != nil {
		return res, err
	}
	res.Written = true
	log.Info("config written", zap.String("path", path), zap.Strings("installed", res.Installed))

	in.printf("\n%s\n", strings.Repeat("─", 40))
	in.printf("%s\n", th.OK("Installed: "+strings.Join(res.Installed, ", ")))
	if in.Opts.ConfigPath != "" {
		in.printf("   Written to sandbox config: %s\n", path)
	}
	in.printf("\n%s\n", th.Note("Restart Claude Desktop for changes to take effect."))
	return res, nil
}

// confirm shows the pending change and asks whether to apply it.
func (in *Installer) confirm(path string, before, after *mcpconfig.Document) (bool, error) {
	block, err := after.ServersBlock()
	if err != nil {
		return false, err
	}
	err = output.WritePreview(in.Out, in.Theme, output.Preview{
		Target:      path,
		Changes:     mcpconfig.Diff(before, after),
		Block:       block,
		ShowSecrets: in.Opts.ShowSecrets,
	})
	if err != nil {
		return false, err
	}
	return prompt.Confirm(in.Prompt, "  Apply these changes?")
}

func (in *Installer) printf(format string, args ...any) {
	fmt.Fprintf(in.Out, format, args...)
}

func (in *Installer) log() *zap.Logger {
	if in.Log == nil {
		return zap.NewNop()
	}
	return in.Log
}
