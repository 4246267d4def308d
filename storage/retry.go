package storage

import (
	"math"
	"math/rand"
	"time"
)

// RetryPolicy controls attempt counts and backoff between storage
// attempts.
type RetryPolicy struct {
	MaxAttempts int
	BackoffBase float64 // seconds; delay grows as base^attempt
	MaxBackoff  time.Duration
	Jitter      float64 // fraction of the delay added at random
}

// Delay returns the pause before the given retry. attempt counts from 1
// for the first retry.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	seconds := math.Pow(p.BackoffBase, float64(attempt))
	delay := time.Duration(seconds * float64(time.Second))
	if p.MaxBackoff > 0 && delay > p.MaxBackoff {
		delay = p.MaxBackoff
	}
	if p.Jitter > 0 {
		delay += time.Duration(rand.Float64() * p.Jitter * float64(delay))
	}
	return delay
}
