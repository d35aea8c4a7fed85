package grid

import (
	"strconv"
	"time"

	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
)

// ItemState is a step of an item's lifecycle.
type ItemState int

const (
	StateIdle ItemState = iota
	StateAppearing
	StateEntering
	StateAppeared
	StateMoving
	StateLeaving
	StateRemoved
)

func (s ItemState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAppearing:
		return "appearing"
	case StateEntering:
		return "entering"
	case StateAppeared:
		return "appeared"
	case StateMoving:
		return "moving"
	case StateLeaving:
		return "leaving"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// env is shared by a grid and its items. The grid swaps settings in place
// when options change so items always read the current configuration.
type env struct {
	settings
	sched scheduler.Scheduler
}

// owner receives lifecycle reports from items.
type owner interface {
	itemMounted(*Item)
	itemUnmounted(*Item)
}

// Item controls the animated style of one grid child. Only its grid
// drives it; hosts read it through the accessors and Render.
type Item struct {
	key     string
	content any
	index   int
	rect    layout.Rect
	size    layout.ContainerSize
	style   style.Styles
	state   ItemState
	mounted bool
	rtl     bool // direction of the last applied position

	// pending scheduler work, zero when idle
	timer scheduler.Handle
	frame scheduler.Handle

	env   *env
	owner owner
}

// ItemView is what a host draws for one item. Style is composed: transforms
// are serialised and vendor prefixes added.
type ItemView struct {
	Key       string
	Index     int
	Component string
	State     ItemState
	Rect      layout.Rect
	Style     style.Styles
	Content   any
}

func newItem(key string, content any, index int, rect layout.Rect, size layout.ContainerSize, e *env, o owner) *Item {
	it := &Item{
		key:     key,
		content: content,
		index:   index,
		rect:    rect,
		size:    size,
		env:     e,
		owner:   o,
	}
	it.style = style.ApplyPatch(it.position(1), it.phaseStyles(transition.PhaseAppear))
	return it
}

func (i *Item) Key() string                { return i.key }
func (i *Item) Content() any               { return i.content }
func (i *Item) Index() int                 { return i.index }
func (i *Item) Rect() layout.Rect          { return i.rect }
func (i *Item) Size() layout.ContainerSize { return i.size }
func (i *Item) State() ItemState           { return i.state }
func (i *Item) Mounted() bool              { return i.mounted }

// Style returns a copy of the semantic style, before composition.
func (i *Item) Style() style.Styles {
	return style.ApplyPatch(i.style)
}

// Render returns the item's view with its style composed for display.
func (i *Item) Render() ItemView {
	s := i.env.settings
	anchor := "left"
	if s.RTL {
		anchor = "right"
	}

	raw := style.ApplyPatch(i.style, style.Styles{
		"display":    "block",
		"position":   "absolute",
		"top":        "0",
		anchor:       "0",
		"width":      px(i.rect.Width),
		"transition": style.Transition([]string{"opacity", "transform"}, s.Duration, s.easing.CSS()),
	})

	return ItemView{
		Key:       i.key,
		Index:     i.index,
		Component: s.ItemComponent,
		State:     i.state,
		Rect:      i.rect,
		Style:     style.Compose(raw, s.Units, s.VendorPrefix),
		Content:   i.content,
	}
}

func (i *Item) mount() {
	if i.mounted || i.state == StateRemoved {
		return
	}
	i.mounted = true
	i.owner.itemMounted(i)
}

// appear starts the initial fade in, staggered by index.
func (i *Item) appear() {
	if !i.mounted {
		return
	}
	i.state = StateAppearing
	i.cancel(&i.timer)

	delay := i.env.AppearDelay * time.Duration(i.index)
	i.track(&i.timer, func(fn func()) scheduler.Handle { return i.env.sched.After(delay, fn) }, func() {
		i.style = style.ApplyPatch(i.style, i.phaseStyles(transition.PhaseAppeared), i.position(1))
		i.state = StateAppeared
	})
}

// enter animates an item added to a live grid.
func (i *Item) enter() {
	if !i.mounted {
		return
	}
	i.state = StateEntering
	i.cancel(&i.timer)
	i.style = style.ApplyPatch(i.style, i.position(2), i.phaseStyles(transition.PhaseEnter))

	i.track(&i.timer, i.after(i.env.Duration), func() {
		i.style = style.ApplyPatch(i.style, i.phaseStyles(transition.PhaseEntered), i.position(1))
		i.state = StateAppeared
	})
}

// update moves the item to a new rect on the next frame. Calls that change
// nothing are ignored; several calls before the frame collapse into one
// move to the latest rect.
func (i *Item) update(rect layout.Rect, size layout.ContainerSize, index int) {
	if !i.mounted || i.state == StateLeaving {
		return
	}
	if rect == i.rect && size == i.size && index == i.index && i.rtl == i.env.RTL {
		return
	}
	i.rect, i.size, i.index = rect, size, index
	if i.frame != 0 {
		return
	}

	i.track(&i.frame, i.env.sched.Schedule, func() {
		i.style = style.ApplyPatch(i.style, i.position(2))
		if i.state == StateAppeared || i.state == StateMoving {
			i.state = StateMoving
			i.settle()
		}
	})
}

// settle drops a moved item back to the resting z-order once its move
// transition has run.
func (i *Item) settle() {
	i.cancel(&i.timer)
	i.track(&i.timer, i.after(i.env.Duration), func() {
		i.style = style.ApplyPatch(i.style, i.position(1))
		i.state = StateAppeared
	})
}

// leave animates the item out and calls done once the transition has run.
func (i *Item) leave(done func()) {
	if !i.mounted || i.state == StateLeaving {
		return
	}
	i.cancel(&i.timer)
	i.cancel(&i.frame)
	i.state = StateLeaving
	i.style = style.ApplyPatch(i.style, i.position(2), i.phaseStyles(transition.PhaseLeaved))

	i.track(&i.timer, i.after(i.env.Duration), done)
}

// unmount cancels pending work and deregisters. Nothing changes the item
// afterwards.
func (i *Item) unmount() {
	if !i.mounted {
		return
	}
	i.mounted = false
	i.cancel(&i.timer)
	i.cancel(&i.frame)
	i.state = StateRemoved
	i.owner.itemUnmounted(i)
}

func (i *Item) after(d time.Duration) func(func()) scheduler.Handle {
	return func(fn func()) scheduler.Handle {
		return i.env.sched.After(d, fn)
	}
}

// track schedules fn and keeps its handle in slot while it is pending. fn
// only runs while the item is mounted. Synchronous schedulers run fn before
// returning, in which case slot is left as fn set it.
func (i *Item) track(slot *scheduler.Handle, schedule func(func()) scheduler.Handle, fn func()) {
	fired := false
	h := schedule(func() {
		fired = true
		*slot = 0
		if i.mounted {
			fn()
		}
	})
	if !fired {
		*slot = h
	}
}

func (i *Item) cancel(slot *scheduler.Handle) {
	if *slot != 0 {
		i.env.sched.Cancel(*slot)
		*slot = 0
	}
}

func (i *Item) phaseStyles(phase transition.Phase) style.Styles {
	return i.env.Transitions.Styles(phase, i.rect, i.size, i.index)
}

// position places the item at its rect. Under RTL the x offset is negated
// and the item is anchored to the right edge instead.
func (i *Item) position(z int) style.Styles {
	x := layout.Round(i.rect.Left)
	i.rtl = i.env.RTL
	if i.rtl {
		x = -x
	}
	return style.Styles{
		"translateX": px(x),
		"translateY": px(layout.Round(i.rect.Top)),
		"zIndex":     strconv.Itoa(z),
	}
}

func px(v float64) string {
	if v == 0 {
		v = 0 // no "-0px"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
