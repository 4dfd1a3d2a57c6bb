// File: internal/pin/registry.go
package pin

import (
	"sync"

	"nutrisnap_gateway/internal/config"
)

// Registry tracks one resend cooldown per client key (user id or client IP).
type Registry struct {
	mu        sync.Mutex
	cooldowns map[string]*Cooldown
	seconds   int
}

func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		cooldowns: make(map[string]*Cooldown),
		seconds:   cfg.PinResendCooldownSeconds,
	}
}

// Seconds is the length of a freshly started cooldown.
func (r *Registry) Seconds() int { return r.seconds }

// Start begins a cooldown for key unless one is still running.
// It returns the seconds left on the running cooldown and false when the resend must wait.
func (r *Registry) Start(key string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cd, ok := r.cooldowns[key]; ok && !cd.Available() {
		return cd.Remaining(), false
	}
	if r.seconds <= 0 {
		return 0, true
	}
	cd := &Cooldown{}
	cd.Start(r.seconds)
	r.cooldowns[key] = cd
	return r.seconds, true
}

// Remaining returns the seconds left for key, zero when none is running.
func (r *Registry) Remaining(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cd, ok := r.cooldowns[key]; ok {
		return cd.Remaining()
	}
	return 0
}

// TickAll advances every running cooldown by one second and forgets the finished ones.
// It returns how many are still running.
func (r *Registry) TickAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, cd := range r.cooldowns {
		if cd.Tick() == 0 {
			delete(r.cooldowns, key)
		}
	}
	return len(r.cooldowns)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cooldowns)
}
