package cli

import (
	"fmt"

	"github.com/runoshun/logtree/internal/infra/config"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command with subcommands.
func newConfigCommand(newContainer ContainerFactory, global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect logtree configuration",
		Long: `Inspect the configuration file and the effective settings.

The config file is TOML with the sections [query], [output], and [log].

Example:
  [query]
  include_flags = ["starting", "executing"]
  require_output = true

  [output]
  format = "text"   # text, json, yaml
  color = "auto"    # auto, always, never

  [log]
  level = "warn"`,
	}

	cmd.AddCommand(
		newConfigShowCommand(newContainer, global),
		newConfigPathCommand(newContainer, global),
	)

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(newContainer ContainerFactory, global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildContainer(cmd, newContainer, *global)
			if err != nil {
				return err
			}
			data, err := config.Encode(c.Config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// newConfigPathCommand creates the config path subcommand.
func newConfigPathCommand(newContainer ContainerFactory, global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildContainer(cmd, newContainer, *global)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.ConfigLoader.Path())
			return nil
		},
	}
}
