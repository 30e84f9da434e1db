// Package breaker tracks consecutive failures per (handler_id, action_id)
// key and gates whether another attempt is permitted. When a key trips, the
// planner short-circuits with CircuitOpen instead of invoking the handler,
// preventing repair loops from hammering a broken action.
package breaker

import "sync"

// DefaultFailureThreshold is the number of consecutive failures that opens a
// circuit.
const DefaultFailureThreshold = 3

// State of one key's circuit.
type State int

const (
	// Closed is the normal operating state; attempts flow through.
	Closed State = iota
	// Open means the key has tripped; attempts are rejected until a reset.
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

type circuit struct {
	consecutiveFailures int
	state               State
}

// Breaker is a table of per-key circuits. Command processing is serialized
// per session, but a background watcher and tests may probe concurrently, so
// the table is mutex-guarded. Keys are independent of each other.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	circuits  map[string]*circuit
}

// New creates a breaker table. A non-positive threshold falls back to the
// default of 3.
func New(threshold int) *Breaker {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	return &Breaker{
		threshold: threshold,
		circuits:  make(map[string]*circuit),
	}
}

// Allow reports whether an attempt for key may proceed.
func (b *Breaker) Allow(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.circuits[key]
	return !ok || c.state == Closed
}

// RecordFailure counts one failed attempt; reaching the threshold opens the
// circuit.
func (b *Breaker) RecordFailure(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.circuits[key]
	if !ok {
		c = &circuit{}
		b.circuits[key] = c
	}
	c.consecutiveFailures++
	if c.consecutiveFailures >= b.threshold {
		c.state = Open
	}
}

// RecordSuccess resets the key to zero failures and closes its circuit.
func (b *Breaker) RecordSuccess(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.circuits, key)
}

// FailureCount returns the current consecutive-failure count for key.
func (b *Breaker) FailureCount(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.circuits[key]; ok {
		return c.consecutiveFailures
	}
	return 0
}

// StateOf returns the circuit state for key.
func (b *Breaker) StateOf(key string) State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.circuits[key]; ok {
		return c.state
	}
	return Closed
}
