// Package cli wires the cobra command surface: one-shot execution, the REPL,
// and introspection commands for history and registered triggers.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/intentshell/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.Planner.Prompter = NewPrompter(nil, nil, container.Config.Preferences.ConfirmEnabled)

	runCmd := newRunCommand(container)

	root := &cobra.Command{
		Use:   "intentshell [input]",
		Short: "intentshell - natural language command execution",
		Long:  "intentshell resolves natural language into guarded actions with a self-healing retry loop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			runCmd.SetArgs(args)
			return runCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd)
	root.AddCommand(newReplCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newTriggersCommand(container))
	return root, nil
}

func newRunCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "run [natural language]",
		Short: "Resolve and execute one input line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			outcome, err := container.Planner.Run(cmd.Context(), input)
			if err != nil {
				return err
			}
			RenderOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
}
