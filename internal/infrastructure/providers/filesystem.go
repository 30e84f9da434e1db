// Package providers ships the built-in action handlers: filesystem
// navigation and basic system/process actions. They register real triggers
// and safety tiers so the pipeline is usable end to end without any external
// handler.
package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/pkg/filesystem"
	"github.com/doeshing/intentshell/internal/ports"
)

const maxListedEntries = 20

// Filesystem handles directory navigation and file manipulation.
type Filesystem struct{}

// NewFilesystem builds the filesystem handler.
func NewFilesystem() *Filesystem {
	return &Filesystem{}
}

func (f *Filesystem) ID() string { return "filesystem" }

func (f *Filesystem) Description() string {
	return "directory navigation and file manipulation"
}

func (f *Filesystem) Triggers() []domain.Trigger {
	return []domain.Trigger{
		{Pattern: "open desktop", ActionID: "open_directory"},
		{Pattern: "open downloads", ActionID: "open_directory"},
		{Pattern: "open documents", ActionID: "open_directory"},
		{Pattern: "open folder", ActionID: "open_directory"},
		{Pattern: "go to directory", ActionID: "open_directory"},
		{Pattern: "list files", ActionID: "list_files"},
		{Pattern: "show files", ActionID: "list_files"},
		{Pattern: "create folder", ActionID: "create_directory"},
		{Pattern: "make directory", ActionID: "create_directory"},
		{Pattern: "delete file", ActionID: "delete_file"},
		{Pattern: "remove file", ActionID: "delete_file"},
	}
}

func (f *Filesystem) SafetyTierOf(actionID string) (domain.SafetyTier, bool) {
	switch actionID {
	case "open_directory", "list_files":
		return domain.TierReadOnly, true
	case "create_directory":
		return domain.TierStateChanging, true
	case "delete_file":
		return domain.TierDestructive, true
	default:
		return "", false
	}
}

func (f *Filesystem) Invoke(ctx context.Context, inv ports.Invocation) (domain.ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ActionResult{}, err
	}
	switch inv.ActionID {
	case "open_directory":
		return f.openDirectory(inv)
	case "list_files":
		return f.listFiles(inv)
	case "create_directory":
		return f.createDirectory(inv)
	case "delete_file":
		return f.deleteFile(inv)
	default:
		return domain.ActionResult{
			Success:   false,
			Message:   fmt.Sprintf("action %q not found", inv.ActionID),
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
}

func (f *Filesystem) openDirectory(inv ports.Invocation) (domain.ActionResult, error) {
	target := targetDirectory(inv)
	if target == "" {
		return domain.ActionResult{
			Success:   false,
			Message:   "no directory named in the request",
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActionResult{
				Success:   false,
				Message:   fmt.Sprintf("directory %q does not exist", target),
				ErrorKind: domain.ErrHandlerNotFound,
			}, nil
		}
		return failureFromErr(err), nil
	}
	if !info.IsDir() {
		return domain.ActionResult{
			Success:   false,
			Message:   fmt.Sprintf("%q is not a directory", target),
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
	return domain.ActionResult{
		Success: true,
		Message: fmt.Sprintf("now in %s", target),
		SideEffects: map[string]string{
			domain.SideEffectLastDirectory: target,
		},
	}, nil
}

func (f *Filesystem) listFiles(inv ports.Invocation) (domain.ActionResult, error) {
	dir := targetDirectory(inv)
	if dir == "" {
		dir = inv.Session.LastDirectory()
	}
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActionResult{
				Success:   false,
				Message:   fmt.Sprintf("directory %q does not exist", dir),
				ErrorKind: domain.ErrHandlerNotFound,
			}, nil
		}
		return failureFromErr(err), nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	listed := names
	suffix := ""
	if len(listed) > maxListedEntries {
		suffix = fmt.Sprintf(" (+%d more)", len(listed)-maxListedEntries)
		listed = listed[:maxListedEntries]
	}
	return domain.ActionResult{
		Success: true,
		Message: fmt.Sprintf("%d entries in %s: %s%s", len(names), dir, strings.Join(listed, ", "), suffix),
	}, nil
}

func (f *Filesystem) createDirectory(inv ports.Invocation) (domain.ActionResult, error) {
	target := entityPath(inv.Entities)
	if target == "" {
		return domain.ActionResult{
			Success:   false,
			Message:   "no path named in the request",
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return failureFromErr(err), nil
	}
	return domain.ActionResult{
		Success: true,
		Message: fmt.Sprintf("created %s", target),
		SideEffects: map[string]string{
			domain.SideEffectLastDirectory: target,
		},
	}, nil
}

func (f *Filesystem) deleteFile(inv ports.Invocation) (domain.ActionResult, error) {
	target := entityPath(inv.Entities)
	if target == "" {
		return domain.ActionResult{
			Success:   false,
			Message:   "no path named in the request",
			ErrorKind: domain.ErrHandlerNotFound,
		}, nil
	}
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return domain.ActionResult{
				Success:   false,
				Message:   fmt.Sprintf("file %q does not exist", target),
				ErrorKind: domain.ErrHandlerNotFound,
			}, nil
		}
		return failureFromErr(err), nil
	}
	return domain.ActionResult{
		Success: true,
		Message: fmt.Sprintf("deleted %s", target),
	}, nil
}

// targetDirectory resolves the directory a request refers to: an explicit
// path entity first, then a well-known folder name in the raw input.
func targetDirectory(inv ports.Invocation) string {
	if p := entityPath(inv.Entities); p != "" {
		return p
	}
	input := strings.ToLower(inv.RawInput)
	for _, folder := range []string{"desktop", "downloads", "documents", "pictures", "music"} {
		if strings.Contains(input, folder) {
			return filepath.Join(filesystem.UserHomeDir(), capitalize(folder))
		}
	}
	if strings.Contains(input, "home") {
		return filesystem.UserHomeDir()
	}
	return ""
}

func entityPath(entities []domain.Entity) string {
	for _, e := range entities {
		if e.Kind == domain.EntityPath {
			return expandTilde(e.RawText)
		}
	}
	return ""
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return path
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func failureFromErr(err error) domain.ActionResult {
	kind := domain.ErrHandlerUnknown
	if os.IsPermission(err) {
		kind = domain.ErrHandlerPermissionDenied
	}
	return domain.ActionResult{
		Success:   false,
		Message:   err.Error(),
		ErrorKind: kind,
	}
}

var _ ports.ActionHandler = (*Filesystem)(nil)
