package scheduler

import (
	"sync"
	"time"
)

// FrameProvider is a display's refresh callback mechanism.
type FrameProvider interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
}

// Timers is a delay-based callback source.
type Timers interface {
	After(d time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// Surface describes what a display offers. Hosts register frame providers
// under well-known names; Detect picks the first one available.
type Surface interface {
	FrameProvider(name string) (FrameProvider, bool)
	Timers() Timers
}

// Providers lists frame provider names in the order Detect tries them.
var Providers = []string{"native", "compositor", "vsync"}

// FrameInterval is the refresh period assumed when a surface only offers timers.
const FrameInterval = time.Second / 60

// Handles from the frame provider and the timer source live in separate
// spaces, so the detected scheduler tags them in the low bit.
const (
	frameTag Handle = 0
	timerTag Handle = 1
)

type detected struct {
	name   string
	frames FrameProvider
	timers Timers
}

// Detect inspects surface once and returns the best scheduler it supports.
// A nil surface yields Sync. A surface without a frame provider gets a
// timer firing every FrameInterval.
func Detect(surface Surface) Scheduler {
	if surface == nil {
		return Sync{}
	}
	timers := surface.Timers()
	if timers == nil {
		return Sync{}
	}
	for _, name := range Providers {
		if fp, ok := surface.FrameProvider(name); ok && fp != nil {
			return &detected{name: name, frames: fp, timers: timers}
		}
	}
	return &detected{name: "timer", frames: timerFrames{timers}, timers: timers}
}

func (d *detected) Schedule(fn func()) Handle {
	return d.frames.RequestFrame(fn)<<1 | frameTag
}

func (d *detected) After(delay time.Duration, fn func()) Handle {
	return d.timers.After(delay, fn)<<1 | timerTag
}

func (d *detected) Cancel(h Handle) {
	if h&1 == timerTag {
		d.timers.Cancel(h >> 1)
		return
	}
	d.frames.CancelFrame(h >> 1)
}

func (d *detected) Name() string {
	return d.name
}

// timerFrames approximates display refresh with a fixed-period timer.
type timerFrames struct {
	timers Timers
}

func (t timerFrames) RequestFrame(fn func()) Handle {
	return t.timers.After(FrameInterval, fn)
}

func (t timerFrames) CancelFrame(h Handle) {
	t.timers.Cancel(h)
}

// LoopSurface exposes a Loop as a surface. The loop's frames are registered
// under Name, or as the timer fallback when Name is empty.
type LoopSurface struct {
	Loop *Loop
	Name string
}

func (s LoopSurface) FrameProvider(name string) (FrameProvider, bool) {
	if s.Name == "" || name != s.Name {
		return nil, false
	}
	return loopFrames{s.Loop}, true
}

func (s LoopSurface) Timers() Timers {
	return s.Loop
}

type loopFrames struct {
	loop *Loop
}

func (f loopFrames) RequestFrame(fn func()) Handle { return f.loop.Schedule(fn) }
func (f loopFrames) CancelFrame(h Handle)          { f.loop.Cancel(h) }

var global struct {
	mu sync.Mutex
	s  Scheduler
}

// Init detects the process-wide scheduler from the first non-nil surface.
// Once detected, later calls return the same scheduler whatever surface
// they pass. A nil surface is not recorded, so it cannot block a host that
// registers its surface later.
func Init(surface Surface) Scheduler {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.s != nil {
		return global.s
	}
	if surface == nil {
		return Sync{}
	}
	global.s = Detect(surface)
	return global.s
}

// Default returns the process-wide scheduler, or Sync while no surface has
// been registered.
func Default() Scheduler {
	return Init(nil)
}
