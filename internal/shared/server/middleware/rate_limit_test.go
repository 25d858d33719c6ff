package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4", rule) {
			t.Fatalf("request %d within burst should pass", i)
		}
	}
	if limiter.Allow("1.2.3.4", rule) {
		t.Fatal("request past burst should be rejected")
	}

	now = now.Add(2 * time.Second)
	if !limiter.Allow("1.2.3.4", rule) {
		t.Fatal("refill should allow another request")
	}
}

func TestRateLimiterKeysIsolated(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if !limiter.Allow("a", rule) {
		t.Fatal("first key should pass")
	}
	if limiter.Allow("a", rule) {
		t.Fatal("first key should now be limited")
	}
	if !limiter.Allow("b", rule) {
		t.Fatal("second key must not share the bucket")
	}
}

func TestRateLimiterZeroRuleDisabled(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("x", RateLimitRule{}) {
			t.Fatal("zero rule must not limit")
		}
	}
}
