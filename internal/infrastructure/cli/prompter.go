package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

// Prompter implements ports.ConfirmationPrompter over stdio. Destructive
// actions require the word "yes" typed out; state-changing actions accept
// y/N. When stdin is not a terminal every confirmation is declined, which the
// planner reports as a user abort.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	enabled     bool
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer, enabled bool) *Prompter {
	interactive := true
	if in == nil {
		in = os.Stdin
		interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		enabled:     enabled,
		interactive: interactive,
	}
}

// Enabled reports whether confirmations can be collected at all.
func (p *Prompter) Enabled() bool {
	return p.enabled && p.interactive
}

// Confirm asks the user to approve a risky action.
func (p *Prompter) Confirm(tier domain.SafetyTier, actionID, description string) (bool, error) {
	fmt.Fprintf(p.out, "\n⚠️  %s action: %s\n", strings.ToUpper(string(tier)), actionID)
	if description != "" {
		fmt.Fprintf(p.out, "  matched: %s\n", description)
	}
	if tier == domain.TierDestructive {
		return p.askExplicit()
	}
	return p.ask("[y/N]: ")
}

// ConfirmRepair surfaces a proposed corrected input before it is retried.
func (p *Prompter) ConfirmRepair(original, corrected string) (bool, error) {
	fmt.Fprintf(p.out, "\nThe action failed. Retry with a corrected input?\n  original:  %s\n  corrected: %s\n", original, corrected)
	return p.ask("[y/N]: ")
}

func (p *Prompter) ask(prompt string) (bool, error) {
	fmt.Fprint(p.out, "Continue? ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

func (p *Prompter) askExplicit() (bool, error) {
	fmt.Fprint(p.out, "Type 'yes' to confirm (or anything else to cancel): ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(line) == "yes", nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
