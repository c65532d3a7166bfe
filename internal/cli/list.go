package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/mcpinstall/internal/mcpconfig"
	"github.com/dshills/mcpinstall/internal/output"
)

var flagFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the MCP servers in the config",
	Long:  "List the MCP servers in the Claude Desktop config, in file order. Credentials are masked unless --show-secrets is given. Never writes to the file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := output.GetWriter(flagFormat)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		path := cfg.ConfigPath
		if path == "" {
			if path, err = resolveDefaultPath(cfg); err != nil {
				printError(cmd.ErrOrStderr(), err)
				exitCode = ExitFailure
				return nil
			}
		}

		listing, err := readListing(path)
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			exitCode = ExitFailure
			return nil
		}
		if !cfg.ShowSecrets {
			listing = listing.Masked()
		}

		if err := w.Write(cmd.OutOrStdout(), listing); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error writing output: %v\n", err)
			exitCode = ExitFailure
		}
		return nil
	},
}

// readListing loads the servers at path without creating or changing it.
func readListing(path string) (*output.Listing, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, &mcpconfig.PathError{Path: path, Err: mcpconfig.ErrConfigNotFound}
	}
	doc, err := mcpconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &output.Listing{Path: path, Servers: doc.Servers()}, nil
}

func init() {
	listCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json, markdown)")
}
