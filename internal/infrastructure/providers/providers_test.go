package providers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
	"github.com/doeshing/intentshell/internal/registry"
	"github.com/doeshing/intentshell/internal/session"
)

func TestBuiltInHandlersRegisterCleanly(t *testing.T) {
	reg := registry.New(nil)
	for _, h := range []ports.ActionHandler{NewFilesystem(), NewSystem()} {
		if err := reg.Register(h); err != nil {
			t.Fatalf("Register(%s) error = %v", h.ID(), err)
		}
	}
	// Every trigger must resolve to a classified action.
	for _, trig := range reg.Catalog() {
		if _, ok := reg.TierOf(trig.ActionID); !ok {
			t.Errorf("action %q has no tier", trig.ActionID)
		}
	}
}

func TestKillProcessIsDestructive(t *testing.T) {
	tier, ok := NewSystem().SafetyTierOf("kill_process")
	if !ok || tier != domain.TierDestructive {
		t.Fatalf("SafetyTierOf(kill_process) = %s, %v", tier, ok)
	}
}

func invocation(actionID, raw string, entities ...domain.Entity) ports.Invocation {
	return ports.Invocation{
		ActionID: actionID,
		RawInput: raw,
		Entities: entities,
		Session:  session.New(),
	}
}

func TestOpenDirectoryReportsMissingPathAsNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	res, err := NewFilesystem().Invoke(context.Background(), invocation(
		"open_directory", "open "+missing,
		domain.Entity{Kind: domain.EntityPath, RawText: missing},
	))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Success || res.ErrorKind != domain.ErrHandlerNotFound {
		t.Errorf("Invoke() = %+v, want handler_not_found", res)
	}
}

func TestOpenDirectorySetsLastDirectory(t *testing.T) {
	dir := t.TempDir()
	res, err := NewFilesystem().Invoke(context.Background(), invocation(
		"open_directory", "open "+dir,
		domain.Entity{Kind: domain.EntityPath, RawText: dir},
	))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Invoke() = %+v", res)
	}
	if res.SideEffects[domain.SideEffectLastDirectory] != dir {
		t.Errorf("SideEffects = %v, want last_directory=%s", res.SideEffects, dir)
	}
}

func TestListFilesUsesSessionDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	sess := session.New()
	sess.Commit(session.CommandEntry{Input: "open", Success: true}, map[string]string{
		domain.SideEffectLastDirectory: dir,
	})
	res, err := NewFilesystem().Invoke(context.Background(), ports.Invocation{
		ActionID: "list_files",
		RawInput: "list files",
		Session:  sess,
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Invoke() = %+v", res)
	}
}

func TestCreateThenDeleteFile(t *testing.T) {
	fs := NewFilesystem()
	dir := filepath.Join(t.TempDir(), "made")
	res, err := fs.Invoke(context.Background(), invocation(
		"create_directory", "create folder "+dir,
		domain.Entity{Kind: domain.EntityPath, RawText: dir},
	))
	if err != nil || !res.Success {
		t.Fatalf("create: res=%+v err=%v", res, err)
	}

	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err = fs.Invoke(context.Background(), invocation(
		"delete_file", "delete file "+file,
		domain.Entity{Kind: domain.EntityPath, RawText: file},
	))
	if err != nil || !res.Success {
		t.Fatalf("delete: res=%+v err=%v", res, err)
	}

	// Deleting again is a not-found failure, which the planner may repair.
	res, err = fs.Invoke(context.Background(), invocation(
		"delete_file", "delete file "+file,
		domain.Entity{Kind: domain.EntityPath, RawText: file},
	))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Success || res.ErrorKind != domain.ErrHandlerNotFound {
		t.Errorf("second delete = %+v, want handler_not_found", res)
	}
}

func TestShowEnvRequiresResolvedEntity(t *testing.T) {
	sys := NewSystem()
	res, err := sys.Invoke(context.Background(), invocation(
		"show_env", "print env %HOME%",
		domain.Entity{Kind: domain.EntityEnvVar, RawText: "HOME", ResolvedValue: "/home/me", Resolved: true},
	))
	if err != nil || !res.Success {
		t.Fatalf("resolved: res=%+v err=%v", res, err)
	}

	res, err = sys.Invoke(context.Background(), invocation(
		"show_env", "print env %MISSING%",
		domain.Entity{Kind: domain.EntityEnvVar, RawText: "MISSING"},
	))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Success || res.ErrorKind != domain.ErrHandlerNotFound {
		t.Errorf("unresolved = %+v, want handler_not_found", res)
	}
}

func TestKillProcessWithoutTargetIsNotFound(t *testing.T) {
	res, err := NewSystem().Invoke(context.Background(), invocation("kill_process", "kill process"))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Success || res.ErrorKind != domain.ErrHandlerNotFound {
		t.Errorf("Invoke() = %+v, want handler_not_found", res)
	}
}
