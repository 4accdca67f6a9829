package services

import (
	"sync"
	"time"
)

// ExpiryTimer drives the session deadline check. It holds no deadline of
// its own: the tick callback reads the authoritative store snapshot each
// time, so remaining time is always computed from the original absolute
// deadline and cannot drift or go stale.
//
// The tick callback returns true to stop the timer from inside a tick,
// which is how the expiry path shuts the timer down without Cancel.
type ExpiryTimer struct {
	mu       sync.Mutex
	armed    bool
	canceled bool
	stop     chan struct{}
	interval time.Duration
}

// NewExpiryTimer creates a timer that fires roughly once per interval.
func NewExpiryTimer(interval time.Duration) *ExpiryTimer {
	return &ExpiryTimer{interval: interval}
}

// Arm starts the tick loop. Only one armed timer may exist per session;
// re-arming is a programming error and is rejected.
func (t *ExpiryTimer) Arm(tick func() (stop bool)) error {
	t.mu.Lock()
	if t.armed {
		t.mu.Unlock()
		return ErrTimerArmed
	}
	t.armed = true
	t.canceled = false
	t.stop = make(chan struct{})
	stopCh := t.stop
	t.mu.Unlock()

	go t.run(tick, stopCh)
	return nil
}

func (t *ExpiryTimer) run(tick func() bool, stopCh chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// The callback runs under the timer mutex so that Cancel,
			// which takes the same mutex, cannot return while a tick is
			// still in flight. Cancel must therefore never be called from
			// inside the callback; ticks stop themselves by returning true.
			t.mu.Lock()
			if t.canceled {
				t.mu.Unlock()
				return
			}
			done := tick()
			if done {
				t.armed = false
			}
			t.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Cancel synchronously disables the timer. After Cancel returns the tick
// callback will not fire again.
func (t *ExpiryTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed {
		return
	}
	t.armed = false
	t.canceled = true
	close(t.stop)
}
