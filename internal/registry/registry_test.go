package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

type fakeHandler struct {
	id       string
	triggers []domain.Trigger
	tiers    map[string]domain.SafetyTier
}

func (f *fakeHandler) ID() string                 { return f.id }
func (f *fakeHandler) Description() string        { return "fake" }
func (f *fakeHandler) Triggers() []domain.Trigger { return f.triggers }
func (f *fakeHandler) SafetyTierOf(actionID string) (domain.SafetyTier, bool) {
	tier, ok := f.tiers[actionID]
	return tier, ok
}
func (f *fakeHandler) Invoke(context.Context, ports.Invocation) (domain.ActionResult, error) {
	return domain.ActionResult{Success: true}, nil
}

func TestRegisterIndexesTriggersInOrder(t *testing.T) {
	r := New(nil)
	first := &fakeHandler{
		id: "filesystem",
		triggers: []domain.Trigger{
			{Pattern: "open desktop", ActionID: "open_desktop"},
			{Pattern: "list files", ActionID: "list_files"},
		},
		tiers: map[string]domain.SafetyTier{
			"open_desktop": domain.TierReadOnly,
			"list_files":   domain.TierReadOnly,
		},
	}
	second := &fakeHandler{
		id:       "system",
		triggers: []domain.Trigger{{Pattern: "kill process", ActionID: "kill_process"}},
		tiers:    map[string]domain.SafetyTier{"kill_process": domain.TierDestructive},
	}

	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	catalog := r.Catalog()
	require.Len(t, catalog, 3)
	assert.Equal(t, "open_desktop", catalog[0].ActionID)
	assert.Equal(t, "filesystem", catalog[0].HandlerID)
	assert.Equal(t, "kill_process", catalog[2].ActionID)

	tier, ok := r.TierOf("kill_process")
	require.True(t, ok)
	assert.Equal(t, domain.TierDestructive, tier)

	h, ok := r.HandlerFor("system")
	require.True(t, ok)
	assert.Equal(t, "system", h.ID())
}

func TestRegisterRejectsMissingSafetyTier(t *testing.T) {
	r := New(nil)
	h := &fakeHandler{
		id:       "broken",
		triggers: []domain.Trigger{{Pattern: "do thing", ActionID: "do_thing"}},
		tiers:    map[string]domain.SafetyTier{},
	}
	err := r.Register(h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safety classification")
	assert.Empty(t, r.Catalog(), "failed registration must not leak triggers")
}

func TestRegisterRejectsDuplicateActionID(t *testing.T) {
	r := New(nil)
	a := &fakeHandler{
		id:       "a",
		triggers: []domain.Trigger{{Pattern: "open desktop", ActionID: "open_desktop"}},
		tiers:    map[string]domain.SafetyTier{"open_desktop": domain.TierReadOnly},
	}
	b := &fakeHandler{
		id:       "b",
		triggers: []domain.Trigger{{Pattern: "open the desktop", ActionID: "open_desktop"}},
		tiers:    map[string]domain.SafetyTier{"open_desktop": domain.TierReadOnly},
	}
	require.NoError(t, r.Register(a))
	err := r.Register(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already owned")
}

func TestRegisterRejectsDuplicateHandlerAndEmptyPattern(t *testing.T) {
	r := New(nil)
	h := &fakeHandler{
		id:       "fs",
		triggers: []domain.Trigger{{Pattern: "list files", ActionID: "list_files"}},
		tiers:    map[string]domain.SafetyTier{"list_files": domain.TierReadOnly},
	}
	require.NoError(t, r.Register(h))
	require.Error(t, r.Register(h))

	empty := &fakeHandler{
		id:       "empty",
		triggers: []domain.Trigger{{Pattern: "", ActionID: "x"}},
		tiers:    map[string]domain.SafetyTier{"x": domain.TierReadOnly},
	}
	require.Error(t, r.Register(empty))
}
