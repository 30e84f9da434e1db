// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the resolution-and-execution
// core and external adapters (infrastructure). The core depends only on these
// abstractions; concrete handlers, reasoners, recorders and resolvers live in
// the infrastructure layer.
//
// Every optional collaborator (reasoner, recorder, prompter) is resolved once
// at startup and may be nil; call sites degrade to a defined fallback when a
// capability is absent.
package ports

import (
	"context"

	"github.com/doeshing/intentshell/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.intentshell/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SessionView is the read-only window handlers get onto session state.
// Handlers never mutate the session directly; cross-command state changes
// flow back through their ActionResult and are applied by the planner.
type SessionView interface {
	LastDirectory() string
	LastClipboard() (string, bool)
	LastProcess() string
	RecentInputs(n int) []string
}

// Invocation carries everything a handler needs for one action dispatch.
// Entities are resolved (env vars, clipboard refs) by the planner immediately
// before dispatch; unresolved entities arrive with Resolved=false.
type Invocation struct {
	ActionID string
	RawInput string
	Entities []domain.Entity
	Session  SessionView
}

// ActionHandler is the capability implemented by domain providers. A handler
// registers its triggers and one safety tier per action at startup and
// exposes a single dispatch operation. Invoke must honor ctx cancellation,
// must not block indefinitely, and reports action-level failures through the
// result's ErrorKind; a non-nil error is treated as an unknown handler fault.
type ActionHandler interface {
	ID() string
	Description() string
	Triggers() []domain.Trigger
	SafetyTierOf(actionID string) (domain.SafetyTier, bool)
	Invoke(ctx context.Context, inv Invocation) (domain.ActionResult, error)
}

// Proposal is a reasoner-suggested action for input the heuristic matcher
// rejected. Confidence is the reasoner's self-reported score.
type Proposal struct {
	ActionID   string
	HandlerID  string
	Confidence float64
	Reasoning  string
}

// RepairRequest asks the reasoner for a corrected input after a classified,
// repair-eligible execution failure.
type RepairRequest struct {
	ErrorKind     domain.ErrorKind
	ErrorMessage  string
	OriginalInput string
}

// RecentContext is the session excerpt handed to the reasoner.
type RecentContext struct {
	WorkingDir   string
	RecentInputs []string
}

// Reasoner is the optional external reasoning capability. Both calls must be
// timeout-bounded by the implementation; absence of a Reasoner degrades the
// pipeline to pure heuristic matching with no other contract changes.
type Reasoner interface {
	Propose(ctx context.Context, input string, recent RecentContext) (Proposal, error)
	Repair(ctx context.Context, req RepairRequest) (string, error)
}

// TransactionRecorder is the optional sink for structured pipeline events.
// Implementations must swallow their own storage errors upstream of the
// command: a failed Record never fails the command itself (the planner also
// guards this).
type TransactionRecorder interface {
	Record(event domain.TransactionEvent) error
	RecordRepair(event domain.RepairEvent) error
	Recent(limit int) ([]domain.TransactionEvent, error)
	Close() error
}

// ValueResolver resolves deferred entity values at execution time.
type ValueResolver interface {
	ResolveEnv(name string) (string, bool)
	ReadClipboard() (string, bool)
}

// ConfirmationPrompter handles interactive confirmations for risky actions
// and for proposed repairs. Repairs are always surfaced to the caller before
// being applied, never silently substituted.
type ConfirmationPrompter interface {
	Confirm(tier domain.SafetyTier, actionID, description string) (bool, error)
	ConfirmRepair(original, corrected string) (bool, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, zap).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
