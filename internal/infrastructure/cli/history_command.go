package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/intentshell/internal/app"
	"github.com/doeshing/intentshell/internal/domain"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transaction events",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if container.Recorder == nil {
				fmt.Fprintln(out, "recording is disabled")
				return nil
			}
			events, err := container.Recorder.Recent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "no recorded transactions")
				return nil
			}
			for _, event := range events {
				fmt.Fprintf(out, "%-14s %-18s %-10s %s  %q\n",
					humanize.Time(event.Timestamp),
					event.Stage,
					statusLabel(event),
					event.ActionID,
					event.Input,
				)
				if event.Message != "" {
					fmt.Fprintf(out, "%32s%s\n", "", event.Message)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events to show")
	return cmd
}

func statusLabel(event domain.TransactionEvent) string {
	if event.Success {
		return "ok"
	}
	if event.ErrorKind != domain.ErrNone {
		return string(event.ErrorKind)
	}
	return "pending"
}
