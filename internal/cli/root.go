// Package cli provides the command-line interface for logtree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runoshun/logtree/internal/app"
	"github.com/runoshun/logtree/internal/domain"
	"github.com/runoshun/logtree/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// usageLine is printed for missing or incomplete query arguments.
const usageLine = "Usage: logtree --input=<input_file> --include_flags=<flags> [--require_output]"

// minQueryArgs is the number of command-line tokens a query needs.
const minQueryArgs = 3

type argCountKey struct{}

// Execute runs root with args as its command line.
// The query's argument minimum is checked against the raw tokens in args.
func Execute(ctx context.Context, root *cobra.Command, args []string) error {
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	return root.ExecuteContext(context.WithValue(ctx, argCountKey{}, len(args)))
}

// rawArgCount returns the number of tokens the command line carried.
func rawArgCount(cmd *cobra.Command) int {
	if n, ok := cmd.Context().Value(argCountKey{}).(int); ok {
		return n
	}
	return len(os.Args) - 1
}

// ContainerFactory builds the dependency container once global flags are parsed.
type ContainerFactory func(opts app.Options) (*app.Container, error)

// globalOptions holds persistent flags shared by every command.
type globalOptions struct {
	ConfigPath string
	LogLevel   string
}

// queryOptions holds the flags that select nodes.
type queryOptions struct {
	Input         string
	IncludeFlags  string
	Format        string
	Color         string
	RequireOutput bool
}

func (o *queryOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Input, "input", "", "Path to the log file (~ is expanded)")
	names := make([]string, 0, len(domain.AllFlags()))
	for _, f := range domain.AllFlags() {
		names = append(names, string(f))
	}
	fs.StringVar(&o.IncludeFlags, "include_flags", "", "Comma-separated flags to keep: "+strings.Join(names, ", "))
	fs.BoolVar(&o.RequireOutput, "require_output", false, "Keep only nodes with captured output")
}

// input builds the use case input, falling back to config for flags not given.
func (o *queryOptions) input(fs *pflag.FlagSet, cfg *domain.Config) usecase.QueryNodesInput {
	in := usecase.QueryNodesInput{
		Path:          o.Input,
		RequireOutput: o.RequireOutput,
	}
	if fs.Changed("include_flags") {
		in.IncludeFlags = domain.ParseFlags(o.IncludeFlags)
	} else {
		for _, f := range cfg.Query.IncludeFlags {
			in.IncludeFlags = append(in.IncludeFlags, domain.Flag(f))
		}
	}
	if !fs.Changed("require_output") {
		in.RequireOutput = cfg.Query.RequireOutput
	}
	return in
}

// NewRootCommand creates the root command for logtree.
// The root command itself runs a query; subcommands offer other views of the same tree.
func NewRootCommand(newContainer ContainerFactory, version string) *cobra.Command {
	var global globalOptions
	var opts queryOptions

	root := &cobra.Command{
		Use:   "logtree",
		Short: "Query task trees recorded in execution logs",
		Long: `logtree reads a sequential execution log, rebuilds the hierarchy of
tasks it records, and prints the tasks matching the given filters.

Recognized lines (first match wins):
  Task Added: <task>         new task, flag "added"
  ✨ Starting task: <task>    new task, flag "starting"
  ... Finished: ...          closes the current task
  Executing: <task>          new task, flag "executing"
Any other line is appended to the output of the current task.

Examples:
  # Show every started task that produced output
  logtree --input=~/build.log --include_flags=starting --require_output

  # Export added and executing tasks as YAML
  logtree --input=build.log --include_flags=added,executing --format=yaml --require_output`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			errW := cmd.ErrOrStderr()
			if rawArgCount(cmd) < minQueryArgs {
				_, _ = fmt.Fprintln(errW, usageLine)
				return nil
			}
			if opts.Input == "" {
				_, _ = fmt.Fprintln(errW, "Missing input file path. "+usageLine)
				return nil
			}

			c, err := buildContainer(cmd, newContainer, global)
			if err != nil {
				return err
			}

			format, err := resolveFormat(cmd.Flags(), opts.Format, c.Config)
			if err != nil {
				return err
			}
			colorMode, err := resolveColor(cmd.Flags(), opts.Color, c.Config)
			if err != nil {
				return err
			}

			uc := c.QueryNodesUseCase()
			out, err := uc.Execute(cmd.Context(), opts.input(cmd.Flags(), c.Config))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return renderNodes(w, out.Nodes, format, newStyles(w, colorMode))
		},
	}

	root.PersistentFlags().StringVar(&global.ConfigPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/logtree/config.toml)")
	root.PersistentFlags().StringVar(&global.LogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")

	opts.addFlags(root.Flags())
	root.Flags().StringVar(&opts.Format, "format", "", "Output format: text, json, yaml")
	root.Flags().StringVar(&opts.Color, "color", "", "Color text output: auto, always, never")

	root.AddCommand(
		newTreeCommand(newContainer, &global),
		newBrowseCommand(newContainer, &global),
		newConfigCommand(newContainer, &global),
	)

	return root
}

// buildContainer creates the container and reports config warnings.
func buildContainer(cmd *cobra.Command, newContainer ContainerFactory, global globalOptions) (*app.Container, error) {
	c, err := newContainer(app.Options{
		ConfigPath: global.ConfigPath,
		LogLevel:   global.LogLevel,
		LogOutput:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	writeWarnings(cmd.ErrOrStderr(), c.Config.Warnings)
	return c, nil
}

func resolveFormat(fs *pflag.FlagSet, flagValue string, cfg *domain.Config) (domain.OutputFormat, error) {
	if fs.Changed("format") {
		return domain.ParseOutputFormat(flagValue)
	}
	return domain.ParseOutputFormat(cfg.Output.Format)
}

func resolveColor(fs *pflag.FlagSet, flagValue string, cfg *domain.Config) (domain.ColorMode, error) {
	if fs.Changed("color") {
		return domain.ParseColorMode(flagValue)
	}
	return domain.ParseColorMode(cfg.Output.Color)
}

func writeWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
