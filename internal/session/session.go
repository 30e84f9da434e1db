// Package session tracks stateful context across commands within one
// session: command history, the last directory visited, the last clipboard
// snapshot and the last process queried.
//
// Single-writer discipline: the planner is the only component that commits
// command results. A background watcher may refresh the clipboard snapshot
// asynchronously; that write and all reads are serialized by one mutex.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/intentshell/internal/domain"
)

// CommandEntry is one line of session history. Dispatched marks whether a
// handler was actually invoked; outcomes that never reached a handler (no
// match, open circuit, declined confirmation) are recorded but do not count
// as an action failing.
type CommandEntry struct {
	Timestamp  time.Time
	Input      string
	ActionID   string
	Success    bool
	Dispatched bool
	Confidence float64
}

// Stats summarizes a session.
type Stats struct {
	SessionID  string
	StartedAt  time.Time
	Total      int
	Successful int
}

// State is the mutable session context shared across commands.
type State struct {
	mu sync.Mutex

	id        string
	startedAt time.Time

	history          []CommandEntry
	lastDirectory    string
	lastClipboard    string
	hasClipboard     bool
	lastProcess      string
	lastActionFailed bool
}

// New starts a fresh session.
func New() *State {
	return &State{
		id:        uuid.NewString(),
		startedAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// LastDirectory implements ports.SessionView.
func (s *State) LastDirectory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDirectory
}

// LastClipboard implements ports.SessionView. The second return is false
// until a snapshot has been taken.
func (s *State) LastClipboard() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastClipboard, s.hasClipboard
}

// LastProcess implements ports.SessionView.
func (s *State) LastProcess() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastProcess
}

// RecentInputs implements ports.SessionView, newest last.
func (s *State) RecentInputs(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.history) == 0 {
		return nil
	}
	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	inputs := make([]string, 0, len(s.history)-start)
	for _, e := range s.history[start:] {
		inputs = append(inputs, e.Input)
	}
	return inputs
}

// LastActionFailed reports whether the most recently dispatched action
// failed. Commands that never dispatched a handler leave the flag untouched.
func (s *State) LastActionFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActionFailed
}

// Commit records a finished command and folds handler side effects into
// session state. Called only by the planner, after a step completes.
func (s *State) Commit(entry CommandEntry, effects map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.history = append(s.history, entry)
	if entry.Dispatched {
		s.lastActionFailed = !entry.Success
	}

	if dir, ok := effects[domain.SideEffectLastDirectory]; ok {
		s.lastDirectory = dir
	}
	if proc, ok := effects[domain.SideEffectLastProcess]; ok {
		s.lastProcess = proc
	}
	if clip, ok := effects[domain.SideEffectClipboard]; ok {
		s.lastClipboard = clip
		s.hasClipboard = true
	}
}

// SetClipboard refreshes the clipboard snapshot. This is the one entry point
// a background watcher may use; it is serialized against planner reads.
func (s *State) SetClipboard(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastClipboard = value
	s.hasClipboard = true
}

// Stats returns session counters.
func (s *State) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := Stats{
		SessionID: s.id,
		StartedAt: s.startedAt,
		Total:     len(s.history),
	}
	for _, e := range s.history {
		if e.Success {
			stats.Successful++
		}
	}
	return stats
}
