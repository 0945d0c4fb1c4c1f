package service

import (
	"testing"
	"time"
)

func TestAttemptLimiter_BlocksAfterMax(t *testing.T) {
	limiter := NewAttemptLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("alice@example.com") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow("alice@example.com") {
		t.Fatalf("fourth attempt should be blocked")
	}
}

func TestAttemptLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewAttemptLimiter(time.Minute, 1)

	if !limiter.Allow("alice@example.com") {
		t.Fatalf("first key should be allowed")
	}
	if !limiter.Allow("bob@example.com") {
		t.Fatalf("second key should be allowed")
	}
	if limiter.Allow("alice@example.com") {
		t.Fatalf("first key should now be blocked")
	}
}

func TestAttemptLimiter_WindowExpires(t *testing.T) {
	limiter := NewAttemptLimiter(50*time.Millisecond, 1)

	if !limiter.Allow("alice@example.com") {
		t.Fatalf("first attempt should be allowed")
	}
	if limiter.Allow("alice@example.com") {
		t.Fatalf("second attempt inside window should be blocked")
	}

	time.Sleep(80 * time.Millisecond)
	if !limiter.Allow("alice@example.com") {
		t.Fatalf("attempt after window should be allowed")
	}
}
