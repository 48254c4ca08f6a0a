package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests pin the limiter's notion of now.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(limit int, clock *fakeClock) *Limiter {
	l := NewLimiter(limit, time.Minute)
	l.now = clock.Now
	return l
}

func TestLimiterAllow(t *testing.T) {
	t.Run("admits up to the limit and rejects the next", func(t *testing.T) {
		clock := newFakeClock()
		l := newTestLimiter(5, clock)

		for i := 0; i < 5; i++ {
			assert.True(t, l.Allow("client-a"), "request %d should be admitted", i+1)
		}
		assert.False(t, l.Allow("client-a"))
	})

	t.Run("identities are independent", func(t *testing.T) {
		clock := newFakeClock()
		l := newTestLimiter(1, clock)

		assert.True(t, l.Allow("client-a"))
		assert.False(t, l.Allow("client-a"))
		assert.True(t, l.Allow("client-b"))
	})

	t.Run("window slides rather than resetting on a bucket boundary", func(t *testing.T) {
		clock := newFakeClock()
		l := newTestLimiter(3, clock)

		// Admissions at t=0s, 10s, 20s.
		assert.True(t, l.Allow("client-a"))
		clock.Advance(10 * time.Second)
		assert.True(t, l.Allow("client-a"))
		clock.Advance(10 * time.Second)
		assert.True(t, l.Allow("client-a"))

		// t=59.9s: the t=0 admission is still inside the trailing window.
		clock.Advance(39*time.Second + 900*time.Millisecond)
		assert.False(t, l.Allow("client-a"))

		// t=60.1s: the t=0 admission has aged out, one slot is free.
		clock.Advance(200 * time.Millisecond)
		assert.True(t, l.Allow("client-a"))

		// The t=10s admission is still in-window, so the next is rejected.
		assert.False(t, l.Allow("client-a"))
	})

	t.Run("rejected attempts are not recorded", func(t *testing.T) {
		clock := newFakeClock()
		l := newTestLimiter(2, clock)

		assert.True(t, l.Allow("client-a"))
		assert.True(t, l.Allow("client-a"))

		// Hammer while limited; none of these may extend the window.
		clock.Advance(30 * time.Second)
		for i := 0; i < 10; i++ {
			assert.False(t, l.Allow("client-a"))
		}

		// Both admissions age out 60s after they happened, regardless of the
		// rejected attempts at t=30s.
		clock.Advance(31 * time.Second)
		assert.True(t, l.Allow("client-a"))
	})

	t.Run("concurrent requests cannot overshoot the limit", func(t *testing.T) {
		clock := newFakeClock()
		l := newTestLimiter(50, clock)

		var wg sync.WaitGroup
		var mu sync.Mutex
		admitted := 0

		for i := 0; i < 200; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if l.Allow("client-a") {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, admitted)
	})

	t.Run("one slot left, two concurrent requests, exactly one admitted", func(t *testing.T) {
		clock := newFakeClock()
		l := newTestLimiter(2, clock)
		assert.True(t, l.Allow("client-a"))

		var wg sync.WaitGroup
		results := make([]bool, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = l.Allow("client-a")
			}(i)
		}
		wg.Wait()

		assert.NotEqual(t, results[0], results[1])
	})
}

func TestLimiterSweep(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(10, clock)

	assert.True(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-b"))
	assert.Equal(t, 2, l.Size())

	// client-b stays active, client-a goes idle.
	clock.Advance(45 * time.Second)
	assert.True(t, l.Allow("client-b"))
	clock.Advance(30 * time.Second)

	l.sweep()

	assert.Equal(t, 1, l.Size())
	assert.True(t, l.Allow("client-a"), "a swept identity starts a fresh window")
}

func TestLimiterJanitorStartStop(t *testing.T) {
	l := NewLimiter(10, time.Minute)
	l.StartJanitor(10 * time.Millisecond)
	assert.True(t, l.Allow("client-a"))
	l.Stop()

	// Stop is idempotent.
	l.Stop()
}

func TestLimiterJanitorDoubleStart(t *testing.T) {
	l := NewLimiter(10, time.Minute)
	l.StartJanitor(10 * time.Millisecond)

	// A second start while running is a no-op; a single Stop must still
	// account for every janitor goroutine.
	l.StartJanitor(10 * time.Millisecond)
	l.Stop()

	// After Stop the janitor can be started again.
	l.StartJanitor(10 * time.Millisecond)
	l.Stop()
}
