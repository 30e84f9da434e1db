package providers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

// System handles process and environment actions.
type System struct{}

// NewSystem builds the system handler.
func NewSystem() *System {
	return &System{}
}

func (s *System) ID() string { return "system" }

func (s *System) Description() string {
	return "process and environment actions"
}

func (s *System) Triggers() []domain.Trigger {
	return []domain.Trigger{
		{Pattern: "list processes", ActionID: "list_processes"},
		{Pattern: "show processes", ActionID: "list_processes"},
		{Pattern: "kill process", ActionID: "kill_process"},
		{Pattern: "terminate process", ActionID: "kill_process"},
		{Pattern: "show environment variable", ActionID: "show_env"},
		{Pattern: "print env", ActionID: "show_env"},
	}
}

func (s *System) SafetyTierOf(actionID string) (domain.SafetyTier, bool) {
	switch actionID {
	case "list_processes", "show_env":
		return domain.TierReadOnly, true
	case "kill_process":
		return domain.TierDestructive, true
	default:
		return "", false
	}
}

func (s *System) Invoke(ctx context.Context, inv ports.Invocation) (domain.ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ActionResult{}, err
	}
	switch inv.ActionID {
	case "list_processes":
		return s.listProcesses(ctx)
	case "kill_process":
		return s.killProcess(inv)
	case "show_env":
		return s.showEnv(inv)
	default:
		return domain.ActionResult{
			Success:   false,
			Message:   fmt.Sprintf("action %q not found", inv.ActionID),
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
}

func (s *System) listProcesses(ctx context.Context) (domain.ActionResult, error) {
	out, err := exec.CommandContext(ctx, "ps", "-e", "-o", "pid=,comm=").Output()
	if err != nil {
		return failureFromErr(err), nil
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	shown := lines
	suffix := ""
	if len(shown) > maxListedEntries {
		suffix = fmt.Sprintf(" (+%d more)", len(shown)-maxListedEntries)
		shown = shown[:maxListedEntries]
	}
	return domain.ActionResult{
		Success: true,
		Message: fmt.Sprintf("%d processes:\n%s%s", len(lines), strings.Join(shown, "\n"), suffix),
	}, nil
}

func (s *System) killProcess(inv ports.Invocation) (domain.ActionResult, error) {
	pid, ok := targetPID(inv)
	if !ok {
		return domain.ActionResult{
			Success:   false,
			Message:   "no process id named in the request",
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return domain.ActionResult{
			Success:   false,
			Message:   fmt.Sprintf("process %d not found", pid),
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
	if err := proc.Kill(); err != nil {
		if os.IsPermission(err) {
			return domain.ActionResult{
				Success:   false,
				Message:   fmt.Sprintf("permission denied signalling process %d", pid),
				ErrorKind: domain.ErrHandlerPermissionDenied,
			}, nil
		}
		return domain.ActionResult{
			Success:   false,
			Message:   fmt.Sprintf("process %d not found", pid),
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
	return domain.ActionResult{
		Success: true,
		Message: fmt.Sprintf("signalled process %d", pid),
		SideEffects: map[string]string{
			domain.SideEffectLastProcess: strconv.Itoa(pid),
		},
	}, nil
}

func (s *System) showEnv(inv ports.Invocation) (domain.ActionResult, error) {
	for _, e := range inv.Entities {
		if e.Kind != domain.EntityEnvVar {
			continue
		}
		if !e.Resolved {
			return domain.ActionResult{
				Success:   false,
				Message:   fmt.Sprintf("environment variable %s does not exist", e.RawText),
				ErrorKind: domain.ErrHandlerNotFound,
			}, nil
		}
		return domain.ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s=%s", e.RawText, e.ResolvedValue),
		}, nil
	}
	return domain.ActionResult{
		Success:   false,
		Message:   "no environment variable named in the request",
		ErrorKind: domain.ErrHandlerNotFound,
	}, nil
}

// targetPID pulls the process id from a numeric entity, falling back to the
// last process the session touched.
func targetPID(inv ports.Invocation) (int, bool) {
	for _, e := range inv.Entities {
		if e.Kind == domain.EntityNumericLit {
			if pid, err := strconv.Atoi(e.RawText); err == nil && pid > 0 {
				return pid, true
			}
		}
	}
	if last := inv.Session.LastProcess(); last != "" {
		if pid, err := strconv.Atoi(last); err == nil && pid > 0 {
			return pid, true
		}
	}
	return 0, false
}

var _ ports.ActionHandler = (*System)(nil)
