package resilience

import "time"

// RetryPolicy describes bounded retry with exponential backoff for an HTTP
// dependency. MaxAttempts counts the first try, so MaxAttempts=3 means at
// most two retries. Only statuses in RetryableStatuses (and transport-level
// failures) are retried; everything else propagates immediately.
type RetryPolicy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	RetryableStatuses []int
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		InitialBackoff:    500 * time.Millisecond,
		RetryableStatuses: []int{500, 502, 503, 504},
	}
}

func NormalizeRetryPolicy(p RetryPolicy) RetryPolicy {
	defaults := DefaultRetryPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = defaults.MaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = defaults.InitialBackoff
	}
	if len(p.RetryableStatuses) == 0 {
		p.RetryableStatuses = append([]int(nil), defaults.RetryableStatuses...)
	}
	return p
}

// Backoff returns the delay before the given zero-based retry attempt,
// doubling from InitialBackoff: 0.5s, 1s, 2s, ...
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	backoff := p.InitialBackoff
	for i := 0; i < attempt; i++ {
		backoff *= 2
	}
	return backoff
}

func (p RetryPolicy) IsRetryableStatus(status int) bool {
	for _, candidate := range p.RetryableStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}
