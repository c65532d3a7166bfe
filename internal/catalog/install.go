package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/mcpinstall/internal/mcpconfig"
	"github.com/dshills/mcpinstall/internal/nodeenv"
	"github.com/dshills/mcpinstall/internal/output"
	"github.com/dshills/mcpinstall/internal/prompt"
)

const headerWidth = 38

// RuntimeFinder locates a Node.js runtime. *nodeenv.Locator implements it.
type RuntimeFinder interface {
	Find(ctx context.Context) (nodeenv.Candidate, bool)
}

// Env is what an entry needs while installing.
type Env struct {
	Prompt       prompt.Prompter
	Out          io.Writer
	Theme        output.Theme
	Runtime      RuntimeFinder
	NodeMinMajor int
	Log          *zap.Logger
}

func (env *Env) printf(format string, args ...any) {
	fmt.Fprintf(env.Out, format, args...)
}

func (env *Env) logger() *zap.Logger {
	if env.Log == nil {
		return zap.NewNop()
	}
	return env.Log
}

func zapCandidate(c nodeenv.Candidate) []zap.Field {
	return []zap.Field{zap.String("exec", c.Exec), zap.String("bin_dir", c.BinDir)}
}

// Install walks the operator through setting up e and writes the resulting
// server into doc under e.Key, replacing any existing definition. It reports
// false when the entry was skipped: no credential was given, or a runtime the
// server needs is missing. Errors are reserved for failed input or an
// unwritable document; prompt.ErrClosed is passed through unchanged.
func (e Entry) Install(ctx context.Context, doc *mcpconfig.Document, env *Env) (bool, error) {
	log := env.logger().With(zap.String("entry", e.Key))

	rule := strings.Repeat("─", max(headerWidth-len(e.Name)-4, 3))
	env.printf("\n%s\n\n", env.Theme.Header.Render("── "+e.Name+" "+rule))
	if e.Instructions != "" {
		env.printf("%s\n", strings.TrimRight(e.Instructions, "\n"))
		env.printf("\n")
	}

	secret, err := env.Prompt.ReadSecret(e.SecretPrompt)
	if err != nil {
		return false, err
	}
	if secret == "" {
		env.printf("%s\n", env.Theme.Warning(fmt.Sprintf("Skipping %s, no %s provided.", e.Name, e.Secret)))
		if e.SkipHint != "" {
			env.printf("   %s\n", e.SkipHint)
		}
		log.Debug("skipped, empty credential")
		return false, nil
	}

	server, err := e.build(ctx, secret, env)
	if errors.Is(err, ErrNoRuntime) {
		minMajor := env.NodeMinMajor
		if minMajor <= 0 {
			minMajor = nodeenv.DefaultMinMajor
		}
		env.printf("\n%s\n", env.Theme.Fail(fmt.Sprintf("%s MCP requires Node.js v%d or higher, but none was found.", e.Name, minMajor)))
		env.printf("   Install Node v%d+ via https://nodejs.org or nvm, then re-run.\n", minMajor)
		log.Info("skipped, no runtime", zap.Int("min_major", minMajor))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("building %s: %w", e.Key, err)
	}

	if err := doc.SetServer(e.Key, server); err != nil {
		return false, fmt.Errorf("adding %s: %w", e.Key, err)
	}
	env.printf("%s\n", env.Theme.OK(e.Name+" added."))
	log.Debug("server set", zap.String("command", server.Command))
	return true, nil
}
