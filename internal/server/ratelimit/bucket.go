package ratelimit

import (
	"math"
	"time"
)

// bucket is a token bucket refilled continuously at rate tokens per second.
// It is not safe for concurrent use; the Limiter serializes access.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		last:     now,
	}
}

func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = math.Min(b.capacity, b.tokens+elapsed.Seconds()*b.rate)
		b.last = now
	}
}

// take consumes one token if available and reports the bucket state after
func (b *bucket) take(now time.Time) (ok bool, remaining int, full time.Time, retry time.Duration) {
	b.refill(now)
	if b.tokens >= 1 {
		b.tokens--
		ok = true
	} else {
		retry = b.until(1 - b.tokens)
	}
	return ok, int(b.tokens), now.Add(b.until(b.capacity - b.tokens)), retry
}

// until is the time needed to accumulate n tokens
func (b *bucket) until(n float64) time.Duration {
	if n <= 0 || b.rate <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(n / b.rate * float64(time.Second)))
}
