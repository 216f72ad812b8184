package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*FixedWindowRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := NewFixedWindowLimiter(limit, window)
	rl.now = clock.Now
	return rl, clock
}

func TestFixedWindowRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(2, 5*time.Second)

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 3*time.Second, retry)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "keys are counted separately")

	clock.Advance(3 * time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok, "window resets")
}

func TestFixedWindowRateLimiter_Sweep(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Second)

	rl.Allow("a")
	clock.Advance(500 * time.Millisecond)
	rl.Allow("b")

	clock.Advance(600 * time.Millisecond)
	assert.Equal(t, 1, rl.Sweep())
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "b")
}

func TestFixedWindowRateLimiter_RunStopsOnCancel(t *testing.T) {
	rl := NewFixedWindowLimiter(1, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
