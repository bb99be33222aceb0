package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)

	assert.True(t, rl.allow("1.2.3.4"))
	assert.True(t, rl.allow("1.2.3.4"))
	assert.True(t, rl.allow("1.2.3.4"))
	assert.False(t, rl.allow("1.2.3.4"), "burst exhausted")

	// Other clients have their own bucket.
	assert.True(t, rl.allow("5.6.7.8"))
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(6000, 1) // 100 tokens/sec

	assert.True(t, rl.allow("refill"))
	assert.False(t, rl.allow("refill"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.allow("refill"), "bucket should refill over time")
}

func TestRateLimiterRefillCapsAtBurst(t *testing.T) {
	rl := NewRateLimiter(6000, 2)

	assert.True(t, rl.allow("cap"))
	time.Sleep(50 * time.Millisecond) // far more than enough to overfill

	assert.True(t, rl.allow("cap"))
	assert.True(t, rl.allow("cap"))
	assert.False(t, rl.allow("cap"), "tokens must cap at burst")
}
