package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/dshills/mcpinstall/internal/mcpconfig"
	"github.com/dshills/mcpinstall/internal/nodeenv"
)

const (
	gymHappyEndpoint = "https://app.gymhappy.co/mcp/support"
	metabaseURL      = "https://pushpress.metabaseapp.com/"
	metabasePackage  = "@cognitionai/metabase-mcp-server"

	// systemPath follows the nvm bin directory in PATH for servers launched
	// from an nvm install, since Claude Desktop starts them with a minimal
	// environment.
	systemPath = "/usr/local/bin:/usr/bin:/bin:/usr/sbin:/sbin"
)

// ErrNoRuntime is returned by builders that need a Node.js runtime when none
// of the required version could be found.
var ErrNoRuntime = errors.New("no qualifying Node.js runtime found")

// buildFunc turns the operator's credential into a server definition.
type buildFunc func(ctx context.Context, secret string, env *Env) (mcpconfig.Server, error)

var builders = map[string]buildFunc{
	"gymhappy-support": buildGymHappy,
	"metabase":         buildMetabase,
}

// GymHappyServer returns the mcp-remote bridge definition for a GymHappy
// token. Tokens look like "<id>|<secret>"; the pipe is percent-encoded
// because the token travels as a query parameter. Nothing else is escaped.
func GymHappyServer(token string) mcpconfig.Server {
	encoded := strings.ReplaceAll(token, "|", "%7C")
	return mcpconfig.Server{
		Command: "npx",
		Args:    []string{"-y", "mcp-remote", gymHappyEndpoint + "?mcp_token=" + encoded},
	}
}

// MetabaseServer returns the Metabase server definition run through the
// given runtime.
func MetabaseServer(apiKey string, rt nodeenv.Candidate) mcpconfig.Server {
	s := mcpconfig.Server{
		Command: rt.Exec,
		Args:    []string{metabasePackage},
		Env: map[string]string{
			"METABASE_URL":     metabaseURL,
			"METABASE_API_KEY": apiKey,
		},
	}
	if rt.BinDir != "" {
		s.Env["PATH"] = rt.BinDir + ":" + systemPath
	}
	return s
}

func buildGymHappy(_ context.Context, token string, _ *Env) (mcpconfig.Server, error) {
	return GymHappyServer(token), nil
}

func buildMetabase(ctx context.Context, apiKey string, env *Env) (mcpconfig.Server, error) {
	if env.Runtime == nil {
		return mcpconfig.Server{}, ErrNoRuntime
	}
	rt, ok := env.Runtime.Find(ctx)
	if !ok {
		return mcpconfig.Server{}, ErrNoRuntime
	}
	if rt.BinDir != "" {
		env.printf("%s\n", env.Theme.Note("Using Node from nvm: "+rt.Exec))
	}
	env.logger().Debug("runtime selected", zapCandidate(rt)...)
	return MetabaseServer(apiKey, rt), nil
}
