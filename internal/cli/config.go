package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/mcpinstall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect installer settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings (defaults, MCPINSTALL_* environment, flags)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the Claude Desktop config path that would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.ConfigPath
		if path == "" {
			if path, err = config.DesktopConfigPath(); err != nil {
				printError(cmd.ErrOrStderr(), err)
				exitCode = ExitFailure
				return nil
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
