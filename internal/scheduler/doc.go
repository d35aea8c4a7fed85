// Package scheduler runs animation callbacks on display refreshes and
// timers. The package-level scheduler is detected once per process; code
// that needs a deterministic clock constructs a Loop directly.
package scheduler
