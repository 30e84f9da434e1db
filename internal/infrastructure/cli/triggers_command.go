package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/intentshell/internal/app"
)

func newTriggersCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "triggers",
		Short: "List registered trigger patterns and their safety tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, trig := range container.Registry.Catalog() {
				tier, _ := container.Registry.TierOf(trig.ActionID)
				fmt.Fprintf(out, "%-28q %-20s %-12s %s\n", trig.Pattern, trig.ActionID, tier, trig.HandlerID)
			}
			return nil
		},
	}
}
