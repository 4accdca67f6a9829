package services

import "sync"

// Cleanup guards a session's release routine so the external close call
// fires at most once no matter which exit path wins: terminal push or
// poll outcome, timer expiry, explicit cancel, or owning-view teardown.
// Several of those can race, so the guard is a consumed flag under a
// mutex rather than a convention.
type Cleanup struct {
	mu       sync.Mutex
	consumed bool
	release  func()
}

// NewCleanup wraps release in an at-most-once guard.
func NewCleanup(release func()) *Cleanup {
	return &Cleanup{release: release}
}

// Run executes the release routine if no earlier trigger already has.
// It reports whether this call performed the release.
func (c *Cleanup) Run() bool {
	c.mu.Lock()
	if c.consumed {
		c.mu.Unlock()
		return false
	}
	c.consumed = true
	fn := c.release
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

// Consumed reports whether the release has already fired.
func (c *Cleanup) Consumed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumed
}
