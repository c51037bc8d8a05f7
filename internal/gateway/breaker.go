package gateway

import (
	"sync"
	"time"
)

// breaker is a two-state circuit: closed while the provider answers, open for
// a cooldown after failThreshold consecutive failures. While open, a single
// probe request is let through once the cooldown elapses.
type breaker struct {
	mu               sync.Mutex
	open             bool
	consecutiveFails int
	failThreshold    int
	openFor          time.Duration
	retryAt          time.Time
	probeInFlight    bool
}

func newBreaker(threshold int, openFor time.Duration) *breaker {
	if threshold <= 0 {
		threshold = 3
	}
	if openFor <= 0 {
		openFor = 15 * time.Second
	}
	return &breaker{failThreshold: threshold, openFor: openFor}
}

func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}
	if time.Now().After(b.retryAt) && !b.probeInFlight {
		b.probeInFlight = true
		return true
	}
	return false
}

func (b *breaker) onSuccess() {
	b.mu.Lock()
	b.open = false
	b.consecutiveFails = 0
	b.probeInFlight = false
	b.mu.Unlock()
}

func (b *breaker) onFailure() {
	b.mu.Lock()
	b.consecutiveFails++
	b.probeInFlight = false
	if b.consecutiveFails >= b.failThreshold {
		b.open = true
		b.retryAt = time.Now().Add(b.openFor)
	}
	b.mu.Unlock()
}
