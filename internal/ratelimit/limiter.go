// Package ratelimit implements an exact sliding-window request limiter keyed
// by client identity.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultWindow is the trailing interval requests are counted over.
const DefaultWindow = time.Minute

// Limiter counts admitted requests per client identity over a trailing
// window. The whole check-and-record sequence runs under one lock so that two
// concurrent requests from the same identity cannot both observe a stale
// count and both be admitted into the last remaining slot.
type Limiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	requests map[string][]time.Time

	// now is replaceable in tests to pin window boundaries.
	now func() time.Time

	stop chan struct{}
	done chan struct{}
}

// NewLimiter builds a limiter admitting at most limit requests per identity
// within the trailing window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		limit:    limit,
		window:   window,
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow reports whether a request from clientID is admitted. Admitted
// requests are recorded against the window; rejected attempts are not.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := l.prune(clientID, now)

	if len(kept) >= l.limit {
		l.requests[clientID] = kept
		return false
	}

	l.requests[clientID] = append(kept, now)
	return true
}

// prune drops timestamps that have fallen out of the trailing window.
// Caller must hold the lock.
func (l *Limiter) prune(clientID string, now time.Time) []time.Time {
	stamps := l.requests[clientID]
	kept := stamps[:0]
	for _, ts := range stamps {
		if now.Sub(ts) < l.window {
			kept = append(kept, ts)
		}
	}
	return kept
}

// StartJanitor periodically evicts identities whose every recorded request
// has aged out of the window. Without it the map grows for the lifetime of
// the process, one entry per distinct client ever seen. A second call while
// a janitor is already running is a no-op; call Stop first to restart.
func (l *Limiter) StartJanitor(interval time.Duration) {
	if l.stop != nil {
		return
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})

	go func() {
		defer close(l.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop halts the janitor if it was started.
func (l *Limiter) Stop() {
	if l.stop == nil {
		return
	}
	close(l.stop)
	<-l.done
	l.stop = nil
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for clientID, stamps := range l.requests {
		idle := true
		for _, ts := range stamps {
			if now.Sub(ts) < l.window {
				idle = false
				break
			}
		}
		if idle {
			delete(l.requests, clientID)
		}
	}
}

// Size reports the number of tracked identities.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}
