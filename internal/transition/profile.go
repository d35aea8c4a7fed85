package transition

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

// Phase names one keyframe of an item's lifecycle.
type Phase string

const (
	PhaseAppear   Phase = "appear"
	PhaseAppeared Phase = "appeared"
	PhaseEnter    Phase = "enter"
	PhaseEntered  Phase = "entered"
	PhaseLeaved   Phase = "leaved"
)

// Phases lists every phase in lifecycle order.
func Phases() []Phase {
	return []Phase{PhaseAppear, PhaseAppeared, PhaseEnter, PhaseEntered, PhaseLeaved}
}

// Func computes the style of an item for one phase. It must be pure.
type Func func(rect layout.Rect, size layout.ContainerSize, index int) style.Styles

// Profile bundles the style functions of every phase. The grid treats a
// profile as an opaque strategy and only ever calls it.
type Profile struct {
	Name     string
	Appear   Func
	Appeared Func
	Enter    Func
	Entered  Func
	Leaved   Func
}

// Styles evaluates the function for phase. Missing functions yield an empty map.
func (p Profile) Styles(phase Phase, rect layout.Rect, size layout.ContainerSize, index int) style.Styles {
	fn := p.Func(phase)
	if fn == nil {
		return style.Styles{}
	}
	out := fn(rect, size, index)
	if out == nil {
		return style.Styles{}
	}
	return out
}

// Func returns the function registered for phase.
func (p Profile) Func(phase Phase) Func {
	switch phase {
	case PhaseAppear:
		return p.Appear
	case PhaseAppeared:
		return p.Appeared
	case PhaseEnter:
		return p.Enter
	case PhaseEntered:
		return p.Entered
	case PhaseLeaved:
		return p.Leaved
	default:
		return nil
	}
}

// Validate reports a configuration error when any phase is missing.
func (p Profile) Validate() error {
	for _, phase := range Phases() {
		if p.Func(phase) == nil {
			return gridErrors.NewConfigError("transitions", p.Name, fmt.Sprintf("missing %s function", phase))
		}
	}
	return nil
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Profile{}
)

func init() {
	for _, p := range []Profile{FadeUp, FadeDown, Fade, ScaleUp, ScaleDown, Flip, Helix} {
		registry[p.Name] = p
	}
}

// Register makes a profile available by name, replacing any previous one.
func Register(p Profile) error {
	if p.Name == "" {
		return gridErrors.NewConfigError("transitions", "", "profile name is required")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.Name] = p
	return nil
}

// Lookup returns the profile registered under name.
func Lookup(name string) (Profile, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Names returns the registered profile names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
