// Package safety implements the risk-tier confirmation policy and the
// protected-target denylist.
package safety

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/intentshell/internal/domain"
)

// TierLookup resolves an action to its registered safety tier.
type TierLookup interface {
	TierOf(actionID string) (domain.SafetyTier, bool)
}

// DenylistFile is the YAML schema for ~/.intentshell/denylist.yaml.
type DenylistFile struct {
	Protected []string `yaml:"protected"`
}

// Controller enforces the confirmation policy:
//
//	read_only       never confirms
//	state_changing  confirms only when the previous action failed
//	destructive     always confirms, always audited
//
// plus an unconditional denylist of protected process names that destructive
// terminate actions can never target.
type Controller struct {
	tiers     TierLookup
	protected map[string]struct{}
}

// NewController builds a controller, loading denylist extensions from path
// (compiled defaults when the file is missing or empty).
func NewController(tiers TierLookup, denylistPath string) (*Controller, error) {
	names, err := loadDenylist(denylistPath)
	if err != nil {
		return nil, err
	}
	protected := make(map[string]struct{}, len(names))
	for _, name := range names {
		protected[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return &Controller{tiers: tiers, protected: protected}, nil
}

// Classify returns the safety tier for an action. Unmapped actions are a
// registration-time error; should one slip through, the controller falls back
// to state_changing rather than read_only.
func (c *Controller) Classify(actionID string) domain.SafetyTier {
	if tier, ok := c.tiers.TierOf(actionID); ok {
		return tier
	}
	return domain.TierStateChanging
}

// RequiresConfirmation applies the confirmation policy for one tier.
func (c *Controller) RequiresConfirmation(tier domain.SafetyTier, lastActionFailed bool) bool {
	switch tier {
	case domain.TierReadOnly:
		return false
	case domain.TierStateChanging:
		return lastActionFailed
	case domain.TierDestructive:
		return true
	default:
		return true
	}
}

// ProtectedTarget reports whether the input names a denylisted target.
// Checked for destructive actions only; a hit is rejected unconditionally
// with UnsafeTarget, never surfaced as a confirmable risk.
func (c *Controller) ProtectedTarget(input string, entities []domain.Entity) (string, bool) {
	for _, field := range strings.Fields(strings.ToLower(input)) {
		token := strings.Trim(field, `"'.,!?;:`)
		if _, hit := c.protected[token]; hit {
			return token, true
		}
	}
	for _, e := range entities {
		raw := strings.ToLower(strings.TrimSpace(e.RawText))
		if _, hit := c.protected[raw]; hit {
			return raw, true
		}
	}
	return "", false
}

func loadDenylist(path string) ([]string, error) {
	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || path == "" {
			return defaultProtected(), nil
		}
		return nil, err
	}
	var file DenylistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Protected) == 0 {
		return defaultProtected(), nil
	}
	// User entries extend, never replace, the compiled defaults.
	return append(defaultProtected(), file.Protected...), nil
}

func defaultProtected() []string {
	return []string{
		"csrss.exe",
		"smss.exe",
		"wininit.exe",
		"winlogon.exe",
		"lsass.exe",
		"services.exe",
		"svchost.exe",
		"init",
		"systemd",
		"launchd",
		"kernel_task",
	}
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Join(userHomeDir(), path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
