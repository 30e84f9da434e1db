package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/intentshell/internal/app"
)

// newReplCommand starts the interactive loop. Commands are strictly
// serialized: one line is fully resolved and executed, including repair
// retries, before the next prompt appears.
func newReplCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "intentshell — type a request, :stats for session info, :quit to leave")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
					continue
				case line == ":quit" || line == ":q" || line == "exit":
					return nil
				case line == ":stats":
					printStats(container, out)
					continue
				}

				outcome, err := container.Planner.Run(cmd.Context(), line)
				if err != nil {
					fmt.Fprintf(out, "✗ %v\n", err)
					continue
				}
				RenderOutcome(out, outcome)
			}
			return scanner.Err()
		},
	}
}

func printStats(container *app.Container, out io.Writer) {
	stats := container.Session.Stats()
	fmt.Fprintf(out, "session %s, started %s\n", stats.SessionID, humanize.Time(stats.StartedAt))
	fmt.Fprintf(out, "commands: %d total, %d successful\n", stats.Total, stats.Successful)
}
