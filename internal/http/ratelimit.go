package http

import (
	"sync"
	"time"
)

const (
	rateLimitWindow   = time.Minute
	rateLimitRequests = 60
)

// rateLimiter tracks request timestamps per client IP. Only mutating
// requests are counted; reads are unlimited.
type rateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		requests: make(map[string][]time.Time),
		done:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// allow reports whether the client may issue another request in the
// current window and records it if so.
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rateLimitWindow)

	recent := rl.requests[clientIP][:0]
	for _, t := range rl.requests[clientIP] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rateLimitRequests {
		rl.requests[clientIP] = recent
		return false
	}

	rl.requests[clientIP] = append(recent, now)
	return true
}

// cleanupLoop drops idle clients so the map does not grow without
// bound.
func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rateLimitWindow)
	for ip, times := range rl.requests {
		recent := times[:0]
		for _, t := range times {
			if t.After(cutoff) {
				recent = append(recent, t)
			}
		}
		if len(recent) == 0 {
			delete(rl.requests, ip)
		} else {
			rl.requests[ip] = recent
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() {
		close(rl.done)
	})
}
