package session

import (
	"sync"
	"testing"

	"github.com/doeshing/intentshell/internal/domain"
)

func TestCommitFoldsSideEffects(t *testing.T) {
	s := New()
	s.Commit(CommandEntry{Input: "open desktop", ActionID: "open_desktop", Success: true}, map[string]string{
		domain.SideEffectLastDirectory: "/home/me/Desktop",
	})
	s.Commit(CommandEntry{Input: "copy that", ActionID: "copy", Success: true}, map[string]string{
		domain.SideEffectClipboard: "hello",
	})

	if got := s.LastDirectory(); got != "/home/me/Desktop" {
		t.Errorf("LastDirectory() = %q", got)
	}
	clip, ok := s.LastClipboard()
	if !ok || clip != "hello" {
		t.Errorf("LastClipboard() = %q, %v", clip, ok)
	}
	if s.LastActionFailed() {
		t.Error("LastActionFailed() = true after success")
	}
}

func TestLastActionFailedTracksMostRecentDispatch(t *testing.T) {
	s := New()
	s.Commit(CommandEntry{Input: "a", Success: true, Dispatched: true}, nil)
	s.Commit(CommandEntry{Input: "b", Success: false, Dispatched: true}, nil)
	if !s.LastActionFailed() {
		t.Error("LastActionFailed() = false after failure")
	}
	s.Commit(CommandEntry{Input: "c", Success: true, Dispatched: true}, nil)
	if s.LastActionFailed() {
		t.Error("LastActionFailed() = true after recovery")
	}
}

func TestUndispatchedCommitsLeaveFailureFlagAlone(t *testing.T) {
	s := New()
	// A no-match line before any action runs.
	s.Commit(CommandEntry{Input: "gibberish", Success: false}, nil)
	if s.LastActionFailed() {
		t.Error("LastActionFailed() = true though no handler ran")
	}

	s.Commit(CommandEntry{Input: "b", Success: false, Dispatched: true}, nil)
	// Another undispatched line must not clear a real failure either.
	s.Commit(CommandEntry{Input: "more gibberish", Success: false}, nil)
	if !s.LastActionFailed() {
		t.Error("LastActionFailed() = false, failure cleared by an undispatched commit")
	}
}

func TestClipboardEmptyUntilSnapshot(t *testing.T) {
	s := New()
	if _, ok := s.LastClipboard(); ok {
		t.Error("LastClipboard() ok before any snapshot")
	}
	s.SetClipboard("from watcher")
	if clip, ok := s.LastClipboard(); !ok || clip != "from watcher" {
		t.Errorf("LastClipboard() = %q, %v", clip, ok)
	}
}

func TestRecentInputs(t *testing.T) {
	s := New()
	for _, in := range []string{"one", "two", "three"} {
		s.Commit(CommandEntry{Input: in, Success: true}, nil)
	}
	got := s.RecentInputs(2)
	if len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Errorf("RecentInputs(2) = %v", got)
	}
	if got := s.RecentInputs(10); len(got) != 3 {
		t.Errorf("RecentInputs(10) = %v", got)
	}
	if got := s.RecentInputs(0); got != nil {
		t.Errorf("RecentInputs(0) = %v", got)
	}
}

func TestStats(t *testing.T) {
	s := New()
	s.Commit(CommandEntry{Input: "a", Success: true}, nil)
	s.Commit(CommandEntry{Input: "b", Success: false}, nil)
	stats := s.Stats()
	if stats.Total != 2 || stats.Successful != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.SessionID == "" {
		t.Error("Stats().SessionID empty")
	}
}

func TestWatcherWritesAreSerializedAgainstReads(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetClipboard("value")
		}()
		go func() {
			defer wg.Done()
			s.LastClipboard()
		}()
	}
	wg.Wait()
	if clip, ok := s.LastClipboard(); !ok || clip != "value" {
		t.Errorf("LastClipboard() = %q, %v", clip, ok)
	}
}
