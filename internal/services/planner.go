// Package services orchestrates the command lifecycle: parse, resolve,
// safety-check, dispatch, and the bounded self-healing retry loop.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/intentshell/internal/breaker"
	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/parser"
	"github.com/doeshing/intentshell/internal/ports"
	"github.com/doeshing/intentshell/internal/registry"
	"github.com/doeshing/intentshell/internal/safety"
	"github.com/doeshing/intentshell/internal/session"
)

// Planner drives one input line end to end. Commands within a session are
// strictly serialized: a line is fully resolved and executed, including any
// repair retries, before the next is accepted. Session state and the breaker
// table are written only here, never by handlers.
type Planner struct {
	Registry *registry.Registry
	Safety   *safety.Controller
	Breaker  *breaker.Breaker
	Session  *session.State
	Logger   ports.Logger

	// Optional capabilities; every call site has a defined fallback when
	// one is absent.
	Resolver ports.ValueResolver
	Reasoner ports.Reasoner
	Recorder ports.TransactionRecorder
	Prompter ports.ConfirmationPrompter

	// MaxRepairAttempts bounds the self-healing loop. Zero means one.
	MaxRepairAttempts int
	// HandlerTimeout caps one handler dispatch. Zero means 30s.
	HandlerTimeout time.Duration
	// ReasonerTimeout caps one propose/repair call. Zero means 10s.
	ReasonerTimeout time.Duration
}

// Run resolves and executes one input line.
func (p *Planner) Run(ctx context.Context, input string) (domain.Outcome, error) {
	if p.Registry == nil || p.Safety == nil || p.Breaker == nil || p.Session == nil || p.Logger == nil {
		return domain.Outcome{}, errors.New("services.Planner dependencies not satisfied")
	}

	maxRepairs := p.MaxRepairAttempts
	if maxRepairs <= 0 {
		maxRepairs = 1
	}

	current := input
	for attempt := 0; ; attempt++ {
		parsed, err := parser.Parse(ctx, current, p.Registry.Catalog())
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("parse input: %w", err)
		}

		candidate, outcome, terminal := p.selectCandidate(ctx, current, parsed)
		if terminal {
			p.commitTerminal(current, outcome)
			return outcome, nil
		}

		outcome, corrected, retry := p.execute(ctx, current, candidate, parsed.Entities, attempt, maxRepairs)
		if retry {
			current = corrected
			continue
		}
		p.commitTerminal(current, outcome)
		return outcome, nil
	}
}

// selectCandidate turns a parse into an executable candidate, consulting the
// reasoner on rejection. The bool result marks a terminal outcome.
func (p *Planner) selectCandidate(ctx context.Context, input string, parsed parser.Result) (domain.ScoredCandidate, domain.Outcome, bool) {
	decision := parsed.Decision
	switch decision.Kind {
	case domain.DecisionExecute:
		return decision.Top, domain.Outcome{}, false

	case domain.DecisionSuggest:
		return domain.ScoredCandidate{}, domain.Outcome{
			Kind:        domain.ErrAmbiguousInput,
			Message:     suggestMessage(decision.Suggestions),
			Suggestions: decision.Suggestions,
		}, true

	default: // reject
		if p.Reasoner == nil {
			return domain.ScoredCandidate{}, domain.Outcome{
				Kind:    domain.ErrNoMatch,
				Message: fmt.Sprintf("no action matched %q", input),
			}, true
		}
		proposal, err := p.propose(ctx, input)
		if err != nil {
			p.Logger.Warn("reasoner propose failed", map[string]interface{}{"error": err.Error()})
			return domain.ScoredCandidate{}, domain.Outcome{
				Kind:    domain.ErrNoMatch,
				Message: fmt.Sprintf("no action matched %q", input),
			}, true
		}
		if _, ok := p.Registry.HandlerFor(proposal.HandlerID); !ok {
			return domain.ScoredCandidate{}, domain.Outcome{
				Kind:    domain.ErrNoMatch,
				Message: fmt.Sprintf("reasoner proposed unknown handler %q", proposal.HandlerID),
			}, true
		}
		// Synthetic execute candidate with the reasoner's self-reported
		// confidence.
		return domain.ScoredCandidate{
			ActionID:       proposal.ActionID,
			HandlerID:      proposal.HandlerID,
			Confidence:     proposal.Confidence,
			MatchedPattern: input,
		}, domain.Outcome{}, false
	}
}

// execute runs one dispatch attempt. When it returns retry=true, the caller
// loops with the corrected input.
func (p *Planner) execute(ctx context.Context, input string, cand domain.ScoredCandidate, entities []domain.Entity, attempt, maxRepairs int) (domain.Outcome, string, bool) {
	key := cand.Key()
	base := domain.Outcome{
		ActionID:   cand.ActionID,
		HandlerID:  cand.HandlerID,
		Confidence: cand.Confidence,
		RetryCount: attempt,
	}

	if !p.Breaker.Allow(key) {
		base.Kind = domain.ErrCircuitOpen
		base.Message = domain.CircuitOpenMessage(key, p.Breaker.FailureCount(key))
		return base, "", false
	}

	handler, ok := p.Registry.HandlerFor(cand.HandlerID)
	if !ok {
		p.Breaker.RecordFailure(key)
		base.Kind = domain.ErrHandlerUnknown
		base.Message = fmt.Sprintf("handler %q not registered", cand.HandlerID)
		return base, "", false
	}

	tier := p.Safety.Classify(cand.ActionID)
	if tier == domain.TierDestructive {
		if target, hit := p.Safety.ProtectedTarget(input, entities); hit {
			p.record(domain.TransactionEvent{
				Stage:     domain.StageAudit,
				Input:     input,
				ActionID:  cand.ActionID,
				HandlerID: cand.HandlerID,
				ErrorKind: domain.ErrUnsafeTarget,
				Message:   fmt.Sprintf("denylisted target %q", target),
			})
			base.Kind = domain.ErrUnsafeTarget
			base.Message = fmt.Sprintf("%q is a protected target and can never be acted on", target)
			return base, "", false
		}
	}

	if p.Safety.RequiresConfirmation(tier, p.Session.LastActionFailed()) {
		confirmed := p.confirm(tier, cand)
		if tier == domain.TierDestructive {
			// Destructive attempts hit the audit sink regardless of
			// the confirmation outcome.
			p.record(domain.TransactionEvent{
				Stage:      domain.StageAudit,
				Input:      input,
				ActionID:   cand.ActionID,
				HandlerID:  cand.HandlerID,
				Confidence: cand.Confidence,
				Success:    confirmed,
				Message:    confirmationNote(confirmed),
			})
		}
		if !confirmed {
			// Not counted as a handler failure for breaker purposes.
			base.Kind = domain.ErrUserAborted
			base.Message = "action cancelled"
			return base, "", false
		}
	}

	resolved := p.resolveEntities(entities)
	inv := ports.Invocation{
		ActionID: cand.ActionID,
		RawInput: input,
		Entities: resolved,
		Session:  p.Session,
	}

	p.record(domain.TransactionEvent{
		Stage:      domain.StagePreDispatch,
		Input:      input,
		ActionID:   cand.ActionID,
		HandlerID:  cand.HandlerID,
		Confidence: cand.Confidence,
		Entities:   resolved,
		RetryCount: attempt,
	})

	result := p.dispatch(ctx, handler, inv)

	kind := domain.ErrNone
	if !result.Success {
		kind = classifyFailure(result)
	}
	p.record(domain.TransactionEvent{
		Stage:      domain.StagePostDispatch,
		Input:      input,
		ActionID:   cand.ActionID,
		HandlerID:  cand.HandlerID,
		Confidence: cand.Confidence,
		Success:    result.Success,
		ErrorKind:  kind,
		RetryCount: attempt,
		Message:    result.Message,
	})

	if result.Success {
		p.Breaker.RecordSuccess(key)
		base.Kind = domain.ErrNone
		base.Message = result.Message
		base.Result = &result
		base.Repaired = attempt > 0
		return base, "", false
	}

	// A cancelled dispatch counts as a failure but is never repaired.
	cancelled := ctx.Err() != nil

	if kind.RepairEligible() && !cancelled && attempt < maxRepairs && p.Reasoner != nil {
		if corrected, ok := p.attemptRepair(ctx, input, cand, kind, result.Message, attempt); ok {
			p.Breaker.RecordFailure(key)
			return domain.Outcome{}, corrected, true
		}
	}

	p.Breaker.RecordFailure(key)
	base.Kind = kind
	base.Message = failureMessage(kind, result.Message)
	base.Result = &result
	return base, "", false
}

// dispatch invokes the handler under the configured timeout and folds
// transport-level errors into a typed result.
func (p *Planner) dispatch(ctx context.Context, handler ports.ActionHandler, inv ports.Invocation) domain.ActionResult {
	timeout := p.HandlerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := handler.Invoke(hctx, inv)
	if err != nil {
		kind := domain.ErrHandlerUnknown
		if errors.Is(err, context.DeadlineExceeded) {
			kind = domain.ErrHandlerTimeout
		}
		return domain.ActionResult{
			Success:   false,
			Message:   err.Error(),
			ErrorKind: kind,
		}
	}
	return result
}

// attemptRepair asks the reasoner for a corrected input and surfaces it to
// the caller for confirmation; a repair is never applied silently. Timeout or
// refusal degrades to returning the original failure.
func (p *Planner) attemptRepair(ctx context.Context, input string, cand domain.ScoredCandidate, kind domain.ErrorKind, errMsg string, attempt int) (string, bool) {
	rctx, cancel := context.WithTimeout(ctx, p.reasonerTimeout())
	defer cancel()

	corrected, err := p.Reasoner.Repair(rctx, ports.RepairRequest{
		ErrorKind:     kind,
		ErrorMessage:  errMsg,
		OriginalInput: input,
	})
	if err != nil || strings.TrimSpace(corrected) == "" || corrected == input {
		if err != nil {
			p.Logger.Warn("reasoner repair failed", map[string]interface{}{"error": err.Error()})
		}
		return "", false
	}

	accepted := p.confirmRepair(input, corrected)
	p.recordRepair(domain.RepairEvent{
		OriginalInput:  input,
		OriginalAction: cand.ActionID,
		ErrorKind:      kind,
		ErrorMessage:   errMsg,
		SuggestedInput: corrected,
		Accepted:       accepted,
		RetryCount:     attempt + 1,
	})
	p.record(domain.TransactionEvent{
		Stage:      domain.StageRepairAttempted,
		Input:      input,
		ActionID:   cand.ActionID,
		HandlerID:  cand.HandlerID,
		Confidence: cand.Confidence,
		Success:    accepted,
		ErrorKind:  kind,
		RetryCount: attempt + 1,
		Message:    corrected,
	})
	return corrected, accepted
}

func (p *Planner) propose(ctx context.Context, input string) (ports.Proposal, error) {
	rctx, cancel := context.WithTimeout(ctx, p.reasonerTimeout())
	defer cancel()
	return p.Reasoner.Propose(rctx, input, ports.RecentContext{
		WorkingDir:   p.Session.LastDirectory(),
		RecentInputs: p.Session.RecentInputs(5),
	})
}

func (p *Planner) reasonerTimeout() time.Duration {
	if p.ReasonerTimeout > 0 {
		return p.ReasonerTimeout
	}
	return 10 * time.Second
}

// resolveEntities fills deferred values immediately before dispatch.
// Clipboard refs come from the session's last-known snapshot, falling back to
// a live read; unresolved entities pass through with Resolved=false.
func (p *Planner) resolveEntities(entities []domain.Entity) []domain.Entity {
	if len(entities) == 0 {
		return nil
	}
	out := make([]domain.Entity, len(entities))
	copy(out, entities)
	for i, e := range out {
		switch e.Kind {
		case domain.EntityEnvVar:
			if p.Resolver != nil {
				if v, ok := p.Resolver.ResolveEnv(e.RawText); ok {
					out[i].ResolvedValue = v
					out[i].Resolved = true
				}
			}
		case domain.EntityClipboardRef:
			if v, ok := p.Session.LastClipboard(); ok {
				out[i].ResolvedValue = v
				out[i].Resolved = true
			} else if p.Resolver != nil {
				if v, ok := p.Resolver.ReadClipboard(); ok {
					out[i].ResolvedValue = v
					out[i].Resolved = true
				}
			}
		}
	}
	return out
}

func (p *Planner) confirm(tier domain.SafetyTier, cand domain.ScoredCandidate) bool {
	if p.Prompter == nil || !p.Prompter.Enabled() {
		return false
	}
	ok, err := p.Prompter.Confirm(tier, cand.ActionID, cand.MatchedPattern)
	if err != nil {
		p.Logger.Warn("confirmation failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return ok
}

func (p *Planner) confirmRepair(original, corrected string) bool {
	if p.Prompter == nil || !p.Prompter.Enabled() {
		return false
	}
	ok, err := p.Prompter.ConfirmRepair(original, corrected)
	if err != nil {
		p.Logger.Warn("repair confirmation failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return ok
}

// record forwards an event to the recorder; recording failures never fail
// the command.
func (p *Planner) record(event domain.TransactionEvent) {
	if p.Recorder == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := p.Recorder.Record(event); err != nil {
		p.Logger.Warn("transaction record failed", map[string]interface{}{"error": err.Error()})
	}
}

func (p *Planner) recordRepair(event domain.RepairEvent) {
	if p.Recorder == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := p.Recorder.RecordRepair(event); err != nil {
		p.Logger.Warn("repair record failed", map[string]interface{}{"error": err.Error()})
	}
}

// commitTerminal folds the outcome into session state. Ambiguous outcomes
// commit nothing. Outcomes that never reached a handler (no match, open
// circuit, denylist hit, declined confirmation) are committed for history but
// marked undispatched, so they neither count as an action failing nor reset a
// previous failure.
func (p *Planner) commitTerminal(input string, outcome domain.Outcome) {
	if outcome.Kind == domain.ErrAmbiguousInput {
		return
	}
	var effects map[string]string
	if outcome.Result != nil {
		effects = outcome.Result.SideEffects
	}
	p.Session.Commit(session.CommandEntry{
		Timestamp:  time.Now(),
		Input:      input,
		ActionID:   outcome.ActionID,
		Success:    outcome.Success(),
		Dispatched: outcome.Result != nil,
		Confidence: outcome.Confidence,
	}, effects)
}

func suggestMessage(suggestions []domain.ScoredCandidate) string {
	var b strings.Builder
	b.WriteString("did you mean:")
	for _, s := range suggestions {
		fmt.Fprintf(&b, " %s (%.2f, %s)", s.ActionID, s.Confidence, s.HandlerID)
	}
	return b.String()
}

func failureMessage(kind domain.ErrorKind, msg string) string {
	if kind == domain.ErrHandlerPermissionDenied {
		return domain.PermissionDeniedMessage(msg)
	}
	return msg
}

func confirmationNote(confirmed bool) string {
	if confirmed {
		return "destructive action confirmed"
	}
	return "destructive action declined"
}
