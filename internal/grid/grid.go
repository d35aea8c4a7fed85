package grid

import (
	"math"
	"sort"

	"github.com/alexisbeaulieu97/stackgrid/internal/layout"
	"github.com/alexisbeaulieu97/stackgrid/internal/logger"
	"github.com/alexisbeaulieu97/stackgrid/internal/scheduler"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
	gridErrors "github.com/alexisbeaulieu97/stackgrid/pkg/errors"
)

// Child is one entry of the grid's input. Children without a key or
// content are dropped.
type Child struct {
	Key     string
	Content any
}

// Metrics are the heights a host can report for a rendered item.
type Metrics struct {
	ScrollHeight float64
	ClientHeight float64
	OffsetHeight float64
}

// Height is the largest finite metric, never below zero.
func (m Metrics) Height() float64 {
	h := 0.0
	for _, v := range []float64{m.ScrollHeight, m.ClientHeight, m.OffsetHeight} {
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v > h {
			h = v
		}
	}
	return h
}

// Measurer reports the natural height of a rendered item. A grid without
// a measurer has no display and lays out in server mode.
type Measurer interface {
	Measure(item *Item) (Metrics, bool)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(item *Item) (Metrics, bool)

func (f MeasureFunc) Measure(item *Item) (Metrics, bool) {
	return f(item)
}

// State is the outcome of the last layout pass.
type State struct {
	Keys   []string             `json:"keys" yaml:"keys" msgpack:"keys"`
	Result layout.Result        `json:"result" yaml:"result" msgpack:"result"`
	Size   layout.ContainerSize `json:"size" yaml:"size" msgpack:"size"`
	Server bool                 `json:"server" yaml:"server" msgpack:"server"`
	Pass   uint64               `json:"pass" yaml:"pass" msgpack:"pass"`
}

// Rect returns the rect of key, or false when key was not laid out.
func (s State) Rect(key string) (layout.Rect, bool) {
	for i, k := range s.Keys {
		if k == key {
			return s.Result.Rects[i], true
		}
	}
	return layout.Rect{}, false
}

func (s State) rectAt(i int) layout.Rect {
	if i < len(s.Result.Rects) {
		return s.Result.Rects[i]
	}
	return layout.Rect{}
}

// View is everything a host needs to draw the grid.
type View struct {
	Component string
	Style     style.Styles
	Items     []ItemView
}

// Option configures a grid's collaborators.
type Option func(*Grid)

// WithScheduler sets the scheduler driving frames and timers. Without one
// the process-wide scheduler is used.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(g *Grid) {
		g.env.sched = s
	}
}

// WithMeasurer gives the grid a display to measure items on.
func WithMeasurer(m Measurer) Option {
	return func(g *Grid) {
		g.measurer = m
	}
}

// WithLogger injects a logger.
func WithLogger(log *logger.Logger) Option {
	return func(g *Grid) {
		g.log = log
	}
}

// Grid coordinates layout passes and the item controllers of its children.
// It is not safe for concurrent use; hosts drive it from one event loop.
type Grid struct {
	env      *env
	measurer Measurer
	log      *logger.Logger

	children    []Child
	controllers map[string]*Item // controllers of current children
	registry    map[string]*Item // mounted items, used for measurement
	leaving     map[string]*Item

	width, height float64
	state         State
	mounted       bool

	pending  bool
	frame    scheduler.Handle
	requests uint64
	passes   uint64
}

// New creates an unmounted grid. Configuration errors are returned here.
func New(opts Options, options ...Option) (*Grid, error) {
	s, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	g := &Grid{
		env:         &env{settings: s},
		log:         logger.Nop(),
		controllers: make(map[string]*Item),
		registry:    make(map[string]*Item),
		leaving:     make(map[string]*Item),
	}
	for _, opt := range options {
		opt(g)
	}
	if g.env.sched == nil {
		g.env.sched = scheduler.Default()
	}
	if g.log == nil {
		g.log = logger.Nop()
	}
	g.log = g.log.For("grid")

	g.state, err = g.compute()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Server reports whether the grid has no display to measure on.
func (g *Grid) Server() bool {
	return g.measurer == nil
}

// Mounted reports whether Mount has been called without a later Unmount.
func (g *Grid) Mounted() bool {
	return g.mounted
}

// Layout returns the last computed layout.
func (g *Grid) Layout() State {
	st := g.state
	st.Keys = append([]string(nil), st.Keys...)
	st.Result.Rects = append([]layout.Rect(nil), st.Result.Rects...)
	st.Result.Columns = append([]int(nil), st.Result.Columns...)
	return st
}

// Children returns the accepted children in order.
func (g *Grid) Children() []Child {
	return append([]Child(nil), g.children...)
}

// Item returns the live controller for key, including leaving items.
func (g *Grid) Item(key string) (*Item, bool) {
	if it, ok := g.controllers[key]; ok {
		return it, true
	}
	it, ok := g.leaving[key]
	return it, ok
}

// Pending reports whether a layout pass is queued.
func (g *Grid) Pending() bool {
	return g.pending
}

// Mount creates a controller for every child, starts their appear
// transitions and queues the first measured layout.
func (g *Grid) Mount() error {
	if g.mounted {
		return nil
	}
	st, err := g.compute()
	if err != nil {
		return err
	}
	g.state = st
	g.mounted = true

	for i, c := range g.children {
		it := g.spawn(c, i)
		it.mount()
		it.appear()
	}
	g.RequestLayout()
	g.log.WithFields(map[string]any{
		"items":     len(g.children),
		"scheduler": scheduler.NameOf(g.env.sched),
		"server":    g.Server(),
	}).Debug("grid mounted")
	return nil
}

// Unmount tears down every item and drops pending work.
func (g *Grid) Unmount() {
	if !g.mounted {
		return
	}
	g.mounted = false
	if g.frame != 0 {
		g.env.sched.Cancel(g.frame)
		g.frame = 0
	}
	g.pending = false

	for _, it := range g.sortedItems(g.controllers) {
		it.unmount()
	}
	for _, it := range g.sortedItems(g.leaving) {
		it.unmount()
	}
	g.controllers = make(map[string]*Item)
	g.leaving = make(map[string]*Item)
	g.log.Debug("grid unmounted")
}

// SetChildren replaces the grid's input. Items that disappear leave, new
// ones enter, and a layout pass is queued. A duplicate key rejects the
// whole update and keeps the previous children.
func (g *Grid) SetChildren(children []Child) error {
	accepted := make([]Child, 0, len(children))
	seen := make(map[string]int, len(children))
	for i, c := range children {
		if c.Key == "" || c.Content == nil {
			g.log.WithField("index", i).Debug("dropping child without key or content")
			continue
		}
		if first, dup := seen[c.Key]; dup {
			err := gridErrors.NewDuplicateKeyError(c.Key, first, i)
			g.log.WithField("key", c.Key).Warn("rejected children with duplicate key")
			return err
		}
		seen[c.Key] = i
		accepted = append(accepted, c)
	}

	previous := g.children
	g.children = accepted

	if !g.mounted {
		st, err := g.compute()
		if err != nil {
			g.children = previous
			return err
		}
		g.state = st
		return nil
	}
	return g.reconcile(seen)
}

func (g *Grid) reconcile(present map[string]int) error {
	for _, it := range g.sortedItems(g.controllers) {
		if _, ok := present[it.key]; ok {
			continue
		}
		delete(g.controllers, it.key)
		g.leaving[it.key] = it
		it.leave(func() { g.finishLeave(it) })
	}

	// New items start from a provisional layout; the queued pass corrects
	// it once they are measured.
	provisional, err := g.compute()
	if err != nil {
		return err
	}

	for i, c := range g.children {
		if it, ok := g.controllers[c.Key]; ok {
			it.content = c.Content
			continue
		}
		if old, ok := g.leaving[c.Key]; ok {
			delete(g.leaving, c.Key)
			old.unmount()
		}
		it := newItem(c.Key, c.Content, i, provisional.rectAt(i), provisional.Size, g.env, g)
		g.controllers[c.Key] = it
		it.mount()
		it.enter()
	}

	g.RequestLayout()
	return nil
}

func (g *Grid) finishLeave(it *Item) {
	if g.leaving[it.key] == it {
		delete(g.leaving, it.key)
	}
	it.unmount()
}

// Resize reports a new container size. Only the width affects layout.
func (g *Grid) Resize(width, height float64) {
	if width == g.width && height == g.height {
		return
	}
	g.width, g.height = width, height

	if !g.mounted {
		if st, err := g.compute(); err == nil {
			g.state = st
		} else {
			g.log.Error(err, "layout failed after resize")
		}
		return
	}
	g.RequestLayout()
}

// SetOptions applies new options. Invalid options are rejected and the
// current ones kept.
func (g *Grid) SetOptions(opts Options) error {
	s, err := opts.resolve()
	if err != nil {
		return err
	}
	g.env.settings = s

	if !g.mounted {
		st, err := g.compute()
		if err != nil {
			return err
		}
		g.state = st
		return nil
	}
	g.RequestLayout()
	return nil
}

// Options returns the options in effect, with defaults filled in.
func (g *Grid) Options() Options {
	return g.env.Options
}

// RequestLayout queues a layout pass for the next frame. Requests made
// before the frame collapse into that single pass, which reads the inputs
// current when it runs.
func (g *Grid) RequestLayout() {
	if !g.mounted {
		return
	}
	g.requests++
	if g.pending {
		return
	}
	g.pending = true

	fired := false
	h := g.env.sched.Schedule(func() {
		fired = true
		g.pending = false
		g.frame = 0
		if !g.mounted {
			return
		}
		if err := g.UpdateLayout(); err != nil {
			g.log.Error(err, "layout pass failed")
		}
	})
	if !fired {
		g.frame = h
	}
}

// UpdateLayout runs a layout pass now and pushes the new rects to every
// item. It does nothing while the grid is unmounted.
func (g *Grid) UpdateLayout() error {
	if !g.mounted {
		return nil
	}
	st, err := g.compute()
	if err != nil {
		return err
	}
	g.passes++
	st.Pass = g.passes
	g.state = st

	for i, key := range st.Keys {
		it, ok := g.controllers[key]
		if !ok {
			continue
		}
		it.update(st.Result.Rects[i], st.Size, i)
	}

	g.log.WithFields(map[string]any{
		"pass":     st.Pass,
		"requests": g.requests,
		"items":    len(st.Keys),
		"columns":  st.Result.ColumnCount,
		"height":   st.Result.ContentHeight,
	}).Debug("layout pass")

	if !st.Server && g.env.OnLayout != nil {
		g.env.OnLayout()
	}
	return nil
}

// Render returns the container and item views. Leaving items are drawn
// after current ones, at their last rect.
func (g *Grid) Render() View {
	s := g.env.settings
	view := View{
		Component: s.Component,
		Style:     g.containerStyle(),
	}

	if g.Server() && !s.EnableSSR {
		return view
	}

	if !g.mounted {
		// Unmounted items have not registered; render throwaway controllers
		// at the current rects.
		for i, c := range g.children {
			it := newItem(c.Key, c.Content, i, g.state.rectAt(i), g.state.Size, g.env, g)
			view.Items = append(view.Items, it.Render())
		}
		return view
	}

	for _, c := range g.children {
		if it, ok := g.controllers[c.Key]; ok {
			view.Items = append(view.Items, it.Render())
		}
	}
	for _, it := range g.sortedItems(g.leaving) {
		view.Items = append(view.Items, it.Render())
	}
	return view
}

func (g *Grid) containerStyle() style.Styles {
	easeOut, err := transition.ParseEasing("easeOut")
	if err != nil {
		easeOut = g.env.easing
	}
	return style.Styles{
		"position":   "relative",
		"transition": style.Transition([]string{"height"}, g.env.Duration, easeOut.CSS()),
		"height":     px(g.state.Result.ContentHeight),
	}
}

func (g *Grid) itemMounted(it *Item) {
	g.registry[it.key] = it
	g.RequestLayout()
}

func (g *Grid) itemUnmounted(it *Item) {
	if g.registry[it.key] == it {
		delete(g.registry, it.key)
	}
}

// compute lays out the current children without touching any item.
func (g *Grid) compute() (State, error) {
	keys := make([]string, len(g.children))
	for i, c := range g.children {
		keys[i] = c.Key
	}

	if g.Server() {
		r := layout.ComputeServer(len(keys))
		return State{Keys: keys, Result: r, Size: r.Size(g.width), Server: true}, nil
	}

	heights := make([]float64, len(keys))
	for i, key := range keys {
		heights[i] = g.itemHeight(key)
	}

	s := g.env.settings
	r, err := layout.Compute(layout.Params{
		ContainerWidth: g.width,
		Column:         s.column,
		GutterWidth:    s.GutterWidth,
		GutterHeight:   s.GutterHeight,
		Orientation:    s.orientation(),
		Heights:        heights,
	})
	if err != nil {
		return State{}, err
	}
	return State{Keys: keys, Result: r, Size: r.Size(g.width)}, nil
}

// itemHeight is the measured height of a registered item, 0 otherwise.
func (g *Grid) itemHeight(key string) float64 {
	it, ok := g.registry[key]
	if !ok {
		return 0
	}
	m, ok := g.measurer.Measure(it)
	if !ok {
		return 0
	}
	return m.Height()
}

func (g *Grid) spawn(c Child, index int) *Item {
	it := newItem(c.Key, c.Content, index, g.state.rectAt(index), g.state.Size, g.env, g)
	g.controllers[c.Key] = it
	return it
}

func (g *Grid) sortedItems(items map[string]*Item) []*Item {
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].index == out[b].index {
			return out[a].key < out[b].key
		}
		return out[a].index < out[b].index
	})
	return out
}
