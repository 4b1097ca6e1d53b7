package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a refilling token bucket.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token if one is available; otherwise it reports the wait
// until the next refill.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()

	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate

	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	nextRefill := tb.lastRefill.Add(tb.refillTime)
	return false, nextRefill.Sub(now)
}

// Limiter keys token buckets by subject (a uid here), used to cap WebSocket
// connection churn per user.
type Limiter struct {
	buckets    map[string]*TokenBucket
	maxTokens  int
	refillRate int
	refillTime time.Duration
	mutex      sync.RWMutex
}

func NewLimiter(maxTokens, refillRate int, refillTime time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*TokenBucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
	}
}

func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mutex.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = NewTokenBucket(l.maxTokens, l.refillRate, l.refillTime)
		l.buckets[key] = bucket
	}
	l.mutex.Unlock()

	return bucket.Allow()
}

// Cleanup drops full buckets so the map does not grow unbounded. Callers run
// it periodically.
func (l *Limiter) Cleanup() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for key, bucket := range l.buckets {
		if bucket.GetTokens() == bucket.maxTokens {
			delete(l.buckets, key)
		}
	}
}

func (tb *TokenBucket) GetTokens() int {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.tokens
}
