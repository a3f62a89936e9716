package queue

import "time"

// BackoffFunc computes the delay before re-admitting a job after its
// n-th failed attempt (attempt is 1-indexed: the value of Job.Attempts
// at the time of the failure).
type BackoffFunc func(attempt int) time.Duration

// Exponential returns the deterministic backoff used by default:
// Delay(n) = 2^n × unit, no jitter, so retry timing can be reproduced
// exactly in tests. The unit should normally match the worker's poll
// interval.
func Exponential(unit time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 0 {
			attempt = 0
		}
		// Clamp the shift; beyond 30 doublings the delay is effectively
		// unbounded anyway and further shifts would overflow.
		if attempt > 30 {
			attempt = 30
		}
		return (1 << uint(attempt)) * unit
	}
}

// Constant returns a fixed delay regardless of the attempt number.
func Constant(interval time.Duration) BackoffFunc {
	return func(int) time.Duration {
		return interval
	}
}
