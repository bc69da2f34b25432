package mapper

import (
	"time"
)

// Timer is the single platform-specific piece of the resolver: a
// cancellable single-shot delay. Start re-arms the timer, implicitly
// cancelling a previous arming, so at most one timeout is ever outstanding.
type Timer interface {
	Start(d time.Duration)
	Stop()
}

// AfterFuncTimer runs a callback once after the delay. The callback fires
// on a background goroutine; it must hand the timeout over to the
// input-handling task (for example through a channel) instead of calling
// Feed directly.
type AfterFuncTimer struct {
	fn func()
	t  *time.Timer
}

// NewAfterFuncTimer creates a timer invoking fn when the delay elapses.
func NewAfterFuncTimer(fn func()) *AfterFuncTimer {
	return &AfterFuncTimer{fn: fn}
}

// Start arms the timer, cancelling any previous arming.
func (a *AfterFuncTimer) Start(d time.Duration) {
	a.Stop()
	a.t = time.AfterFunc(d, a.fn)
}

// Stop cancels an armed timer. Stopping an idle timer is a no-op.
func (a *AfterFuncTimer) Stop() {
	if a.t != nil {
		a.t.Stop()
		a.t = nil
	}
}
