package domain

import "fmt"

// ErrorKind is the typed failure taxonomy for one command. Every terminal
// outcome is returned to the caller as a value, never as an uncaught fault.
type ErrorKind string

const (
	// ErrNone marks a successful outcome.
	ErrNone ErrorKind = ""
	// ErrNoMatch: no candidate above the rejection threshold and no
	// reasoner available or usable.
	ErrNoMatch ErrorKind = "no_match"
	// ErrAmbiguousInput: the resolver asked for disambiguation. A normal
	// terminal outcome, not a failure.
	ErrAmbiguousInput ErrorKind = "ambiguous_input"
	// ErrUnsafeTarget: protected-target denylist hit. Fatal, never retried.
	ErrUnsafeTarget ErrorKind = "unsafe_target"
	// ErrUserAborted: confirmation declined. Fatal for this command but not
	// counted toward circuit-breaker failures.
	ErrUserAborted ErrorKind = "user_aborted"
	// ErrCircuitOpen: the action's circuit is open; the handler was not
	// invoked.
	ErrCircuitOpen ErrorKind = "circuit_open"

	// Handler-reported failures.
	ErrHandlerNotFound         ErrorKind = "handler_not_found"
	ErrHandlerPermissionDenied ErrorKind = "handler_permission_denied"
	ErrHandlerTimeout          ErrorKind = "handler_timeout"
	ErrHandlerUnknown          ErrorKind = "handler_unknown"
)

// RepairEligible reports whether a failure of this kind may trigger the
// self-healing loop. Timeouts and permission problems are never retried
// automatically.
func (k ErrorKind) RepairEligible() bool {
	return k == ErrHandlerNotFound
}

// ActionResult is what a handler returns from one invocation. SideEffects is
// an opaque mapping the handler may populate (paths touched, pids signalled).
type ActionResult struct {
	Success     bool
	Message     string
	ErrorKind   ErrorKind
	SideEffects map[string]string
}

// Outcome is the planner's terminal result for one input line.
type Outcome struct {
	Kind        ErrorKind
	Message     string
	ActionID    string
	HandlerID   string
	Confidence  float64
	Result      *ActionResult
	Suggestions []ScoredCandidate
	RetryCount  int
	Repaired    bool
}

// Success reports whether the command completed without a failure kind.
func (o Outcome) Success() bool {
	return o.Kind == ErrNone
}

// CircuitOpenMessage builds the user-facing text for an open circuit.
func CircuitOpenMessage(key string, failures int) string {
	return fmt.Sprintf(
		"circuit open for %s after %d consecutive failures; check the underlying issue manually before retrying",
		key, failures)
}

// PermissionDeniedMessage decorates a permission failure with an elevation hint.
func PermissionDeniedMessage(msg string) string {
	return msg + " (try re-running with elevated privileges)"
}
