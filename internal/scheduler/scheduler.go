package scheduler

import (
	"time"
)

// Handle identifies a scheduled callback so it can be cancelled.
type Handle uint64

// Sentinel is the handle returned by the synchronous scheduler. Cancelling
// it does nothing.
const Sentinel Handle = 1

// Scheduler runs callbacks on the next display refresh or after a fixed
// delay. All callbacks run on the host's event loop, one at a time.
type Scheduler interface {
	// Schedule runs fn on the next display refresh.
	Schedule(fn func()) Handle
	// After runs fn once d has elapsed.
	After(d time.Duration, fn func()) Handle
	// Cancel drops a pending callback. Unknown or fired handles are ignored.
	Cancel(h Handle)
}

// Sync is used when there is no display surface, as when rendering on a
// server. Callbacks run immediately and every handle is Sentinel.
type Sync struct{}

// Schedule runs fn before returning.
func (Sync) Schedule(fn func()) Handle {
	if fn != nil {
		fn()
	}
	return Sentinel
}

// After runs fn before returning; there is no clock to wait on.
func (Sync) After(_ time.Duration, fn func()) Handle {
	if fn != nil {
		fn()
	}
	return Sentinel
}

// Cancel is a no-op.
func (Sync) Cancel(Handle) {}

// Name reports the strategy for diagnostics.
func (Sync) Name() string {
	return "sync"
}

// Named is implemented by schedulers that can report which strategy they use.
type Named interface {
	Name() string
}

// NameOf returns the strategy name of s, or "custom".
func NameOf(s Scheduler) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return "custom"
}
