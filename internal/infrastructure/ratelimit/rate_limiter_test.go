package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketDepletesAndRefills(t *testing.T) {
	bucket := NewTokenBucket(3, 3, 50*time.Millisecond)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))

	time.Sleep(60 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestTokenBucketCapsAtMax(t *testing.T) {
	bucket := NewTokenBucket(2, 10, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.False(t, allowed)
}

func TestLimiterIsolatesKeys(t *testing.T) {
	limiter := NewLimiter(1, 1, time.Minute)

	allowed, _ := limiter.Allow("user-a")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("user-a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("user-b")
	assert.True(t, allowed)
}

func TestLimiterCleanupKeepsActiveBuckets(t *testing.T) {
	limiter := NewLimiter(2, 2, time.Minute)

	limiter.Allow("draining")
	limiter.Cleanup()

	// The depleted bucket survives cleanup, so the key stays limited.
	limiter.Allow("draining")
	allowed, _ := limiter.Allow("draining")
	assert.False(t, allowed)
	assert.Len(t, limiter.buckets, 1)
}
