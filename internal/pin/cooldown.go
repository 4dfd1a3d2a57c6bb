// File: internal/pin/cooldown.go
package pin

import (
	"context"
	"sync"
	"time"
)

// Cooldown counts down the seconds until a PIN may be resent. Each Tick is one second.
type Cooldown struct {
	mu        sync.Mutex
	remaining int
}

// Start (re)starts the countdown at seconds. Non-positive values leave it available.
func (c *Cooldown) Start(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.mu.Lock()
	c.remaining = seconds
	c.mu.Unlock()
}

// Tick decrements the countdown by one and returns what is left.
func (c *Cooldown) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining
}

func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Available reports whether a resend is allowed now.
func (c *Cooldown) Available() bool {
	return c.Remaining() == 0
}

// Run ticks once per value received on ticks until the countdown reaches zero or ctx is done.
func (c *Cooldown) Run(ctx context.Context, ticks <-chan time.Time) {
	if c.Available() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok || c.Tick() == 0 {
				return
			}
		}
	}
}
