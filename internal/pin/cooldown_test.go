package pin

import (
	"context"
	"sync"
	"testing"
	"time"

	"nutrisnap_gateway/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldown_SixtyTicks(t *testing.T) {
	var cd Cooldown
	assert.True(t, cd.Available())

	cd.Start(60)
	assert.Equal(t, 60, cd.Remaining())
	for i := 59; i >= 0; i-- {
		assert.False(t, cd.Available())
		assert.Equal(t, i, cd.Tick())
	}
	assert.True(t, cd.Available())
	assert.Equal(t, 0, cd.Tick(), "ticking an idle cooldown stays at zero")
}

func TestCooldown_Run(t *testing.T) {
	var cd Cooldown
	cd.Start(3)
	ticks := make(chan time.Time, 3)
	for i := 0; i < 3; i++ {
		ticks <- time.Now()
	}
	cd.Run(context.Background(), ticks)
	assert.True(t, cd.Available())
}

func TestCooldown_RunStopsOnCancel(t *testing.T) {
	var cd Cooldown
	cd.Start(10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cd.Run(ctx, make(chan time.Time))
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 10, cd.Remaining())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(&config.Config{PinResendCooldownSeconds: 2})

	seconds, ok := r.Start("user:1")
	require.True(t, ok)
	assert.Equal(t, 2, seconds)

	left, ok := r.Start("user:1")
	assert.False(t, ok)
	assert.Equal(t, 2, left)

	_, ok = r.Start("user:2")
	assert.True(t, ok, "cooldowns are per key")

	assert.Equal(t, 2, r.TickAll())
	assert.Equal(t, 1, r.Remaining("user:1"))
	assert.Equal(t, 0, r.TickAll())
	assert.Equal(t, 0, r.Len())

	_, ok = r.Start("user:1")
	assert.True(t, ok)
}

func TestRegistry_DisabledCooldown(t *testing.T) {
	r := NewRegistry(&config.Config{PinResendCooldownSeconds: 0})
	for i := 0; i < 3; i++ {
		_, ok := r.Start("k")
		assert.True(t, ok)
	}
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := NewRegistry(&config.Config{PinResendCooldownSeconds: 60})
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := r.Start("same"); ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
			r.TickAll()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, accepted)
}
