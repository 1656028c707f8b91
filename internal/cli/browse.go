package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/logtree/internal/tui"
	"github.com/runoshun/logtree/internal/usecase"
	"github.com/spf13/cobra"
)

// launchBrowserFunc is a function variable for launching the browser, allowing it to be mocked in tests.
var launchBrowserFunc = launchBrowser

// newBrowseCommand creates the browse command for exploring nodes interactively.
func newBrowseCommand(newContainer ContainerFactory, global *globalOptions) *cobra.Command {
	var opts queryOptions
	var all bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse filtered tasks interactively",
		Long: `Open an interactive browser over the tasks in a log.

The left pane lists the tasks passing the filters, indented by depth.
The right pane shows the captured output of the selected task.

Examples:
  # Browse every task
  logtree browse --input=build.log --all

  # Browse executing tasks with output
  logtree browse --input=build.log --include_flags=executing --require_output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Input == "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Missing input file path. Usage: logtree browse --input=<input_file>")
				return nil
			}

			c, err := buildContainer(cmd, newContainer, *global)
			if err != nil {
				return err
			}

			in := opts.input(cmd.Flags(), c.Config)
			in.NoFlagFilter = all
			out, err := c.QueryNodesUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return launchBrowserFunc(out)
		},
	}

	opts.addFlags(cmd.Flags())
	cmd.Flags().BoolVar(&all, "all", false, "Ignore --include_flags and list every task")

	return cmd
}

// launchBrowser runs the browser TUI until the user quits.
func launchBrowser(out *usecase.QueryNodesOutput) error {
	model := tui.New(out.Tree, out.Nodes)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
