package installer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/mcpinstall/internal/mcpconfig"
	"github.com/dshills/mcpinstall/internal/nodeenv"
	"github.com/dshills/mcpinstall/internal/output"
	"github.com/dshills/mcpinstall/internal/prompt"
)

const skeleton = "{\n  \"mcpServers\": {}\n}\n"

type stubRuntime struct {
	c  nodeenv.Candidate
	ok bool
}

func (s stubRuntime) Find(context.Context) (nodeenv.Candidate, bool) { return s.c, s.ok }

func newInstaller(t *testing.T, opts Options, input string) (*Installer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Installer{
		Opts:    opts,
		Prompt:  prompt.NewReader(bytes.NewBufferString(input), &out),
		Out:     &out,
		Theme:   output.NewTheme(&out),
		Runtime: stubRuntime{c: nodeenv.Candidate{Exec: "npx"}, ok: true},
		Log:     zaptest.NewLogger(t),
	}, &out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_PreviewDeclineLeavesSandboxUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox", "config.json")
	in, out := newInstaller(t, Options{ConfigPath: path, Preview: true}, "1\n123|abc\nn\n")

	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.Equal(t, []string{"GymHappy Support"}, res.Installed)

	assert.Equal(t, skeleton, readFile(t, path))
	assert.NoFileExists(t, path+mcpconfig.BackupSuffix)
	assert.NoFileExists(t, path+".tmp")

	got := out.String()
	assert.Contains(t, got, "PREVIEW MODE")
	assert.Contains(t, got, "Created new sandbox config at: "+path)
	assert.Contains(t, got, "(empty, no MCPs installed yet)")
	assert.Contains(t, got, `+ ADD    "gymhappy-support"`)
	assert.Contains(t, got, "Apply these changes? [y/N]")
	assert.Contains(t, got, "config was NOT changed")
	assert.NotContains(t, got, "123%7Cabc", "preview masks the token by default")
}

func TestRun_PreviewDeclineFromEmptySandboxFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, "")

	in, out := newInstaller(t, Options{ConfigPath: path, Preview: true}, "1\n123|abc\nn\n")
	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.Equal(t, []string{"GymHappy Support"}, res.Installed)

	assert.Equal(t, skeleton, readFile(t, path))
	assert.NoFileExists(t, path+mcpconfig.BackupSuffix)
	assert.NoFileExists(t, path+".tmp")
	assert.Contains(t, out.String(), "Created new sandbox config at: "+path)
	assert.Contains(t, out.String(), "config was NOT changed")
}

func TestRun_PreviewConfirmWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	in, out := newInstaller(t, Options{ConfigPath: path, Preview: true, ShowSecrets: true}, "1\n123|abc\nYES\n")

	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Contains(t, out.String(), "123%7Cabc")
	assert.Contains(t, readFile(t, path), "mcp_token=123%7Cabc")
}

func TestRun_InstallMergesAndBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	original := `{"theme":"dark","mcpServers":{"existing":{"command":"x","args":["--flag"]}},"zeta":[1,2]}`
	writeFile(t, path, original)

	in, out := newInstaller(t, Options{ConfigPath: path}, "1\n123|abc\n")
	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Equal(t, path+".backup", res.BackupPath)
	assert.Equal(t, original, readFile(t, path+".backup"))

	doc, err := mcpconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"existing", "gymhappy-support"}, doc.ServerKeys())

	var parsed struct {
		Theme      string `json:"theme"`
		Zeta       []int  `json:"zeta"`
		MCPServers map[string]struct {
			Command string   `json:"command"`
			Args    []string `json:"args"`
		} `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &parsed))
	assert.Equal(t, "dark", parsed.Theme)
	assert.Equal(t, []int{1, 2}, parsed.Zeta)
	assert.Equal(t, []string{"--flag"}, parsed.MCPServers["existing"].Args)
	assert.Equal(t, []string{"-y", "mcp-remote", "https://app.gymhappy.co/mcp/support?mcp_token=123%7Cabc"},
		parsed.MCPServers["gymhappy-support"].Args)

	got := out.String()
	assert.Contains(t, got, "Backed up config -> "+path+".backup")
	assert.Contains(t, got, "Installed: GymHappy Support")
	assert.Contains(t, got, "Written to sandbox config: "+path)
	assert.Contains(t, got, "Restart Claude Desktop")
}

func TestRun_BackupFailureDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	original := `{"mcpServers":{"existing":{"command":"x","args":[]}}}`
	writeFile(t, path, original)
	// a directory where the backup file should go makes the copy fail
	require.NoError(t, os.Mkdir(path+mcpconfig.BackupSuffix, 0o755))

	in, out := newInstaller(t, Options{ConfigPath: path}, "1\ntok\n")
	res, err := in.Run(context.Background())
	require.Error(t, err)
	assert.False(t, res.Written)
	assert.Empty(t, res.BackupPath)

	assert.Equal(t, original, readFile(t, path))
	assert.NoFileExists(t, path+".tmp")
	assert.NotContains(t, out.String(), "Installed:")
}

func TestRun_DefaultPathReportNoSandboxLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	writeFile(t, path, skeleton)

	in, out := newInstaller(t, Options{DefaultPath: path}, "gymhappy-support\ntok\n")
	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.NotContains(t, out.String(), "sandbox")
}

func TestRun_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	in, _ := newInstaller(t, Options{ConfigPath: path}, "1\n123|abc\n")
	_, err := in.Run(context.Background())
	require.NoError(t, err)
	first := readFile(t, path)

	in, out := newInstaller(t, Options{ConfigPath: path, Preview: true}, "1\n123|abc\ny\n")
	_, err = in.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, readFile(t, path))
	assert.Contains(t, out.String(), "(no changes detected)")
	assert.Contains(t, out.String(), "installed  (select to update credentials)")
}

func TestRun_UpdateReportedInPreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"mcpServers":{"gymhappy-support":{"command":"npx","args":["old"]}}}`)

	in, out := newInstaller(t, Options{ConfigPath: path, Preview: true}, "1\nnew\nn\n")
	_, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), `~ UPDATE "gymhappy-support"`)
}

func TestRun_Quit(t *testing.T) {
	for _, answer := range []string{"\n", "q\n", "Quit\n"} {
		path := filepath.Join(t.TempDir(), "config.json")
		writeFile(t, path, skeleton)

		in, out := newInstaller(t, Options{ConfigPath: path}, answer)
		res, err := in.Run(context.Background())
		require.NoError(t, err)
		assert.False(t, res.Written)
		assert.Contains(t, out.String(), "Bye!")
		assert.NoFileExists(t, path+".backup")
	}
}

func TestRun_InvalidChoiceReprompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, skeleton)

	in, out := newInstaller(t, Options{ConfigPath: path}, "9\n1\n\n")
	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Written)

	got := out.String()
	assert.Contains(t, got, "Invalid choice")
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Which MCPs would you like to install?")))
	assert.Contains(t, got, "Skipping GymHappy Support, no token provided.")
	assert.Contains(t, got, "Nothing was installed.")
	assert.Equal(t, skeleton, readFile(t, path))
}

func TestRun_UnknownTokensIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	in, out := newInstaller(t, Options{ConfigPath: path}, "1,7\ntok\n")

	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Contains(t, out.String(), "Ignoring unknown choice: 7")
}

func TestRun_AllWithoutRuntime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	in, out := newInstaller(t, Options{ConfigPath: path, NodeMinMajor: 22}, "A\ntok\nmb_key\n")
	in.Runtime = stubRuntime{}

	res, err := in.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GymHappy Support"}, res.Installed)
	assert.Contains(t, out.String(), "requires Node.js v22 or higher")

	doc, err := mcpconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gymhappy-support"}, doc.ServerKeys())
}

func TestRun_ClosedInputIsClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, skeleton)

	for _, input := range []string{"", "1\n", "1\ntok\n"} {
		in, _ := newInstaller(t, Options{ConfigPath: path, Preview: true}, input)
		res, err := in.Run(context.Background())
		require.NoError(t, err, "input %q", input)
		assert.False(t, res.Written)
	}
	assert.Equal(t, skeleton, readFile(t, path))
}

func TestRun_DefaultConfigMissing(t *testing.T) {
	in, _ := newInstaller(t, Options{DefaultPath: filepath.Join(t.TempDir(), "absent.json")}, "1\n")

	_, err := in.Run(context.Background())
	var pe *mcpconfig.PathError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, mcpconfig.ErrConfigNotFound)
}

func TestRun_InvalidJSONIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, "{\"mcpServers\": {,}}")

	in, _ := newInstaller(t, Options{ConfigPath: path}, "1\ntok\n")
	_, err := in.Run(context.Background())
	var pe *mcpconfig.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "{\"mcpServers\": {,}}", readFile(t, path))
}
