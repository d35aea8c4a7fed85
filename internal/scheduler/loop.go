package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

type task struct {
	id       Handle
	fn       func()
	deadline time.Time
}

type timerQueue []*task

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].id < q[j].id
	}
	return q[i].deadline.Before(q[j].deadline)
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(*task)) }
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Loop is a cooperative frame loop. It owns no goroutines: the host calls
// Tick once per display refresh and every due timer and frame callback runs
// inside that call. Work requested while a tick is running waits for the
// next tick.
type Loop struct {
	mu     sync.Mutex
	now    time.Time
	next   Handle
	active map[Handle]*task
	frames []*task
	timers timerQueue
}

// NewLoop creates a loop whose clock starts at start.
func NewLoop(start time.Time) *Loop {
	return &Loop{
		now:    start,
		next:   Sentinel,
		active: make(map[Handle]*task),
	}
}

// Now returns the time of the last tick.
func (l *Loop) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

func (l *Loop) add(fn func()) *task {
	l.next++
	t := &task{id: l.next, fn: fn}
	l.active[t.id] = t
	return t
}

// Schedule queues fn for the next tick.
func (l *Loop) Schedule(fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.add(fn)
	l.frames = append(l.frames, t)
	return t.id
}

// After queues fn for the first tick at or after now+d.
func (l *Loop) After(d time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.add(fn)
	t.deadline = l.now.Add(d)
	heap.Push(&l.timers, t)
	return t.id
}

// Cancel drops a pending callback.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, h)
}

// Pending returns the number of callbacks still waiting to run.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.active)
}

// Name reports the strategy for diagnostics.
func (l *Loop) Name() string {
	return "loop"
}

// Tick advances the clock to now and runs, in order, every timer that is
// due (earliest deadline first) and then every frame callback queued before
// this tick began. It returns how many callbacks ran.
func (l *Loop) Tick(now time.Time) int {
	l.mu.Lock()
	if now.After(l.now) {
		l.now = now
	}

	var due []*task
	for l.timers.Len() > 0 && !l.timers[0].deadline.After(l.now) {
		t := heap.Pop(&l.timers).(*task)
		if _, ok := l.active[t.id]; !ok {
			continue
		}
		due = append(due, t)
	}

	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	ran := 0
	for _, t := range append(due, frames...) {
		if !l.claim(t.id) {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// claim removes a task from the active set, reporting whether it was still pending.
func (l *Loop) claim(id Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.active[id]; !ok {
		return false
	}
	delete(l.active, id)
	return true
}

// Advance ticks the loop d after its current time.
func (l *Loop) Advance(d time.Duration) int {
	return l.Tick(l.Now().Add(d))
}

// Run ticks the loop every interval until ctx is done. Hosts that have
// their own refresh signal call Tick directly instead.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}
