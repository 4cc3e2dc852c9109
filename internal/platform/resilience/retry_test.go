package resilience

import (
	"testing"
	"time"
)

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()

	if p.MaxAttempts != 3 {
		t.Fatalf("unexpected MaxAttempts: %d", p.MaxAttempts)
	}
	if p.InitialBackoff != 500*time.Millisecond {
		t.Fatalf("unexpected InitialBackoff: %s", p.InitialBackoff)
	}
	for _, status := range []int{500, 502, 503, 504} {
		if !p.IsRetryableStatus(status) {
			t.Fatalf("expected status %d to be retryable", status)
		}
	}
	for _, status := range []int{400, 404, 429} {
		if p.IsRetryableStatus(status) {
			t.Fatalf("expected status %d not to be retryable", status)
		}
	}
}

func TestNormalizeRetryPolicy(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		got := NormalizeRetryPolicy(RetryPolicy{})
		want := DefaultRetryPolicy()

		if got.MaxAttempts != want.MaxAttempts || got.InitialBackoff != want.InitialBackoff {
			t.Fatalf("unexpected policy: %+v", got)
		}
		if len(got.RetryableStatuses) != len(want.RetryableStatuses) {
			t.Fatalf("unexpected statuses: %v", got.RetryableStatuses)
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		in := RetryPolicy{MaxAttempts: 5, InitialBackoff: time.Second, RetryableStatuses: []int{503}}
		got := NormalizeRetryPolicy(in)

		if got.MaxAttempts != 5 || got.InitialBackoff != time.Second {
			t.Fatalf("unexpected policy: %+v", got)
		}
		if len(got.RetryableStatuses) != 1 || got.RetryableStatuses[0] != 503 {
			t.Fatalf("unexpected statuses: %v", got.RetryableStatuses)
		}
	})
}

func TestRetryPolicy_BackoffDoubles(t *testing.T) {
	p := DefaultRetryPolicy()

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: -1, want: 500 * time.Millisecond},
		{attempt: 0, want: 500 * time.Millisecond},
		{attempt: 1, want: time.Second},
		{attempt: 2, want: 2 * time.Second},
		{attempt: 3, want: 4 * time.Second},
	}
	for _, tc := range cases {
		if got := p.Backoff(tc.attempt); got != tc.want {
			t.Fatalf("Backoff(%d) = %s, want %s", tc.attempt, got, tc.want)
		}
	}
}
