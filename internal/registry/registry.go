// Package registry composes action handlers into a trigger catalog and
// enforces the startup invariant that every registered action carries exactly
// one safety classification. Misconfiguration here is a fatal registration
// error, never a per-command one.
package registry

import (
	"fmt"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

// Registry indexes handlers and their triggers. Registration order is
// preserved in the catalog because the matcher breaks score ties by it.
type Registry struct {
	handlers map[string]ports.ActionHandler
	catalog  []domain.Trigger
	tiers    map[string]domain.SafetyTier
	owners   map[string]string
	log      ports.Logger
}

// New creates an empty registry.
func New(log ports.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]ports.ActionHandler),
		tiers:    make(map[string]domain.SafetyTier),
		owners:   make(map[string]string),
		log:      log,
	}
}

// Register validates and indexes a handler and its triggers.
func (r *Registry) Register(h ports.ActionHandler) error {
	id := h.ID()
	if id == "" {
		return fmt.Errorf("registry: handler with empty id")
	}
	if _, exists := r.handlers[id]; exists {
		return fmt.Errorf("registry: handler %q already registered", id)
	}

	triggers := h.Triggers()
	staged := make([]domain.Trigger, 0, len(triggers))
	for _, trig := range triggers {
		if trig.Pattern == "" {
			return fmt.Errorf("registry: handler %q registered an empty pattern", id)
		}
		if trig.ActionID == "" {
			return fmt.Errorf("registry: handler %q registered a trigger without an action id", id)
		}
		if trig.HandlerID == "" {
			trig.HandlerID = id
		}
		if trig.HandlerID != id {
			return fmt.Errorf("registry: handler %q registered trigger owned by %q", id, trig.HandlerID)
		}
		if owner, taken := r.owners[trig.ActionID]; taken && owner != id {
			return fmt.Errorf("registry: action %q already owned by handler %q", trig.ActionID, owner)
		}
		tier, ok := h.SafetyTierOf(trig.ActionID)
		if !ok || !tier.Known() {
			return fmt.Errorf("registry: action %q has no safety classification", trig.ActionID)
		}
		if prev, seen := r.tiers[trig.ActionID]; seen && prev != tier {
			return fmt.Errorf("registry: action %q classified as both %s and %s", trig.ActionID, prev, tier)
		}
		staged = append(staged, trig)
	}

	r.handlers[id] = h
	for _, trig := range staged {
		tier, _ := h.SafetyTierOf(trig.ActionID)
		r.tiers[trig.ActionID] = tier
		r.owners[trig.ActionID] = id
		r.catalog = append(r.catalog, trig)
	}
	if r.log != nil {
		r.log.Info("handler registered", map[string]interface{}{
			"handler":  id,
			"triggers": len(staged),
		})
	}
	return nil
}

// Catalog returns the trigger catalog in registration order.
func (r *Registry) Catalog() []domain.Trigger {
	return r.catalog
}

// HandlerFor looks up a handler by id.
func (r *Registry) HandlerFor(handlerID string) (ports.ActionHandler, bool) {
	h, ok := r.handlers[handlerID]
	return h, ok
}

// TierOf returns the safety tier registered for an action.
func (r *Registry) TierOf(actionID string) (domain.SafetyTier, bool) {
	tier, ok := r.tiers[actionID]
	return tier, ok
}

// Handlers returns all registered handlers keyed by id.
func (r *Registry) Handlers() map[string]ports.ActionHandler {
	return r.handlers
}
