package ratelimit

import (
	"sync"
	"time"
)

// IPRateLimiter rate limits requests per client IP, lazily creating one
// token bucket per address
type IPRateLimiter struct {
	limiters   map[string]*bucketEntry
	mu         sync.Mutex
	maxTokens  float64
	refillRate float64
	maxIdle    time.Duration
	stopChan   chan struct{}
}

type bucketEntry struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

// NewIPRateLimiter creates a new IPRateLimiter
func NewIPRateLimiter(maxTokens, refillRate float64) *IPRateLimiter {
	limiter := &IPRateLimiter{
		limiters:   make(map[string]*bucketEntry),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		maxIdle:    30 * time.Minute,
		stopChan:   make(chan struct{}),
	}

	go limiter.cleanupLoop()

	return limiter
}

// Allow checks if a request from the given IP can proceed
func (ipl *IPRateLimiter) Allow(ip string) bool {
	ipl.mu.Lock()

	entry, exists := ipl.limiters[ip]

	if !exists {
		entry = &bucketEntry{bucket: NewTokenBucket(ipl.maxTokens, ipl.refillRate)}
		ipl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	ipl.mu.Unlock()

	return entry.bucket.Allow()
}

// cleanupLoop drops buckets for addresses not seen for maxIdle
func (ipl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-ipl.maxIdle)
			ipl.mu.Lock()
			for ip, entry := range ipl.limiters {
				if entry.lastSeen.Before(cutoff) {
					delete(ipl.limiters, ip)
				}
			}
			ipl.mu.Unlock()
		case <-ipl.stopChan:
			return
		}
	}
}

// Stop stops the background cleanup goroutine
func (ipl *IPRateLimiter) Stop() {
	close(ipl.stopChan)
}
