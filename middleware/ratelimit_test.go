package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAllow(t *testing.T) {
	// Negligible refill so the burst is all we measure
	tb := NewTokenBucket(2, 0.0001)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, 3600)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// A different client gets its own bucket
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiterRefill(t *testing.T) {
	// 3600 tokens/hour = 1/sec; after consuming the burst the next request
	// within the same instant is rejected.
	rl := NewRateLimiter(3600, 3600)
	key := "9.9.9.9"

	for i := 0; i < 3600; i++ {
		if !rl.Allow(key) {
			t.Fatalf("request %d unexpectedly limited", i)
		}
	}
	assert.False(t, rl.Allow(key))
}
