package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhausts(t *testing.T) {
	tb := NewTokenBucket(3, 0)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTokenBucketNeverExceedsMax(t *testing.T) {
	tb := NewTokenBucket(2, 1000)

	assert.LessOrEqual(t, tb.Available(), 2.0)
}

func TestIPRateLimiterIsolatesAddresses(t *testing.T) {
	ipl := NewIPRateLimiter(1, 0)
	defer ipl.Stop()

	assert.True(t, ipl.Allow("10.0.0.1"))
	assert.False(t, ipl.Allow("10.0.0.1"))

	// a different address gets its own bucket
	assert.True(t, ipl.Allow("10.0.0.2"))
}
