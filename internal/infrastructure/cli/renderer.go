package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/intentshell/internal/domain"
)

// RenderOutcome prints a terminal outcome for human consumption.
func RenderOutcome(w io.Writer, outcome domain.Outcome) {
	switch {
	case outcome.Success():
		fmt.Fprintf(w, "✓ %s\n", outcome.Message)
		if outcome.Repaired {
			fmt.Fprintf(w, "  (succeeded after %d repair attempt(s))\n", outcome.RetryCount)
		}

	case outcome.Kind == domain.ErrAmbiguousInput:
		fmt.Fprintln(w, "Did you mean:")
		for i, s := range outcome.Suggestions {
			fmt.Fprintf(w, "  %d. %s (%.0f%%, %s)\n", i+1, s.ActionID, s.Confidence*100, s.HandlerID)
		}

	default:
		fmt.Fprintf(w, "✗ [%s] %s\n", outcome.Kind, outcome.Message)
	}
}
