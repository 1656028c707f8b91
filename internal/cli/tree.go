package cli

import (
	"fmt"

	"github.com/runoshun/logtree/internal/usecase"
	"github.com/spf13/cobra"
)

// newTreeCommand creates the tree command for printing the task hierarchy.
func newTreeCommand(newContainer ContainerFactory, global *globalOptions) *cobra.Command {
	var opts struct {
		Input    string
		Color    string
		Root     int
		MaxDepth int
	}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the task hierarchy of a log",
		Long: `Print every task recorded in the log as an indented tree.

Each line shows the node index, the task text, its flag, and how many
output lines were captured for it.

Examples:
  # Whole log
  logtree tree --input=build.log

  # Only the subtree under node 4, two levels deep
  logtree tree --input=build.log --root 4 --max-depth 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Input == "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Missing input file path. Usage: logtree tree --input=<input_file>")
				return nil
			}

			c, err := buildContainer(cmd, newContainer, *global)
			if err != nil {
				return err
			}
			colorMode, err := resolveColor(cmd.Flags(), opts.Color, c.Config)
			if err != nil {
				return err
			}

			in := usecase.ShowTreeInput{
				Path:     opts.Input,
				MaxDepth: opts.MaxDepth,
			}
			if cmd.Flags().Changed("root") {
				in.Root = &opts.Root
			}

			out, err := c.ShowTreeUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return renderTree(w, out, newStyles(w, colorMode))
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "Path to the log file (~ is expanded)")
	cmd.Flags().IntVar(&opts.Root, "root", 0, "Show only the subtree under this node index")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "Limit the number of levels shown (0 = unlimited)")
	cmd.Flags().StringVar(&opts.Color, "color", "", "Color output: auto, always, never")

	return cmd
}
