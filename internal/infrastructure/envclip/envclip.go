// Package envclip resolves deferred entity values from the process
// environment and the system clipboard.
package envclip

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/intentshell/internal/ports"
)

// Resolver implements ports.ValueResolver using os.LookupEnv and
// platform-specific clipboard tools.
type Resolver struct{}

// NewResolver builds the resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveEnv looks up an environment variable by name.
func (r *Resolver) ResolveEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ReadClipboard reads the current clipboard contents. Returns false when no
// clipboard utility is available or the read fails.
func (r *Resolver) ReadClipboard() (string, bool) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbpaste")
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard", "-o")
		} else if _, err := exec.LookPath("wl-paste"); err == nil {
			cmd = exec.Command("wl-paste", "--no-newline")
		} else {
			return "", false
		}
	default:
		return "", false
	}
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimRight(string(out), "\n"), true
}

var _ ports.ValueResolver = (*Resolver)(nil)
