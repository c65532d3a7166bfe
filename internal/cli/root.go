package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/mcpinstall/internal/config"
	"github.com/dshills/mcpinstall/internal/installer"
	"github.com/dshills/mcpinstall/internal/logging"
	"github.com/dshills/mcpinstall/internal/nodeenv"
	"github.com/dshills/mcpinstall/internal/output"
	"github.com/dshills/mcpinstall/internal/prompt"
)

const version = "1.0.0"

// Exit codes
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

var rootCmd = &cobra.Command{
	Use:   "mcpinstall",
	Short: "Add PushPress MCP servers to Claude Desktop",
	Long: `mcpinstall adds PushPress-managed MCP servers to Claude Desktop's
claude_desktop_config.json. Existing servers and settings are kept; a
.backup copy is written next to the file before every change.

Use --preview to review the exact change before it is written, and --config
to work on a sandbox file instead of the real Claude Desktop config.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyConfig, "", "Use this config file instead of Claude Desktop's (created if missing)")
	pf.Bool(config.KeyShowSecrets, false, "Show credentials in previews and listings instead of masking them")
	pf.Bool(config.KeyVerbose, false, "Log diagnostics to stderr (same as --log-level debug)")
	pf.String(config.KeyLogLevel, config.Default().LogLevel, "Diagnostic log level (debug, info, warn, error)")

	f := rootCmd.Flags()
	f.Bool(config.KeyPreview, false, "Show the config diff and ask before writing anything")
	f.Int(config.KeyNodeMinMajor, config.Default().NodeMinMajor, "Minimum Node.js major version for npm-based servers")
	f.String(config.KeyNVMDir, "", "nvm installation directory (default $NVM_DIR or ~/.nvm)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	stop := handleSignals()
	defer stop()

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// activeTerminal is restored before exiting on a signal, so an interrupted
// secret prompt does not leave echo disabled.
var activeTerminal *prompt.Terminal

// handleSignals makes SIGINT and SIGTERM a clean exit. The config is only
// ever replaced by rename, so exiting mid-run cannot leave it half written.
func handleSignals() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-ch; !ok {
			return
		}
		if activeTerminal != nil {
			activeTerminal.Restore()
		}
		fmt.Fprintln(os.Stdout)
		os.Exit(ExitSuccess)
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}

// loadConfig resolves settings for cmd: defaults <- env <- flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(v)
}

func newLogger(cfg config.Config, w io.Writer) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, w)
}

// resolveDefaultPath returns the Claude Desktop config path, or "" when an
// override is in effect.
func resolveDefaultPath(cfg config.Config) (string, error) {
	if cfg.ConfigPath != "" {
		return "", nil
	}
	return config.DesktopConfigPath()
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	defaultPath, err := resolveDefaultPath(cfg)
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
		exitCode = ExitFailure
		return nil
	}

	versionsDir, err := config.NodeVersionsDir(cfg.NVMDir)
	if err != nil {
		log.Debug("no nvm directory", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	term := prompt.NewTerminal(os.Stdin, out)
	defer term.Close()
	activeTerminal = term

	in := &installer.Installer{
		Opts: installer.Options{
			ConfigPath:   cfg.ConfigPath,
			DefaultPath:  defaultPath,
			Preview:      cfg.Preview,
			ShowSecrets:  cfg.ShowSecrets,
			NodeMinMajor: cfg.NodeMinMajor,
		},
		Prompt:  term,
		Out:     out,
		Theme:   output.NewTheme(out),
		Runtime: nodeenv.New(cfg.NodeMinMajor, versionsDir, log),
		Log:     log,
	}

	if _, err := in.Run(cmd.Context()); err != nil {
		printError(cmd.ErrOrStderr(), err)
		exitCode = ExitFailure
	}
	return nil
}

// hinter is implemented by errors that carry a remediation for the operator.
type hinter interface {
	Hint() string
}

// printError reports a fatal error, followed by its hint when it has one.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var h hinter
	if errors.As(err, &h) {
		fmt.Fprintf(w, "       %s\n", h.Hint())
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print mcpinstall version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mcpinstall version %s\n", version)
	},
}
