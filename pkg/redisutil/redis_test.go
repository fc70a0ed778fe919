package redisutil

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestAttemptWindowScriptCompiles(t *testing.T) {
	// Compile-time smoke test: the script should be initialized.
	if attemptWindowScript == nil {
		t.Fatalf("expected script to be initialized")
	}
}

func TestNewAttemptLimiterValidation(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()

	if _, err := NewAttemptLimiter(nil, 5, time.Minute); err == nil {
		t.Fatalf("expected error for nil client")
	}
	if _, err := NewAttemptLimiter(rdb, 0, time.Minute); err == nil {
		t.Fatalf("expected error for zero limit")
	}
	if _, err := NewAttemptLimiter(rdb, 5, 0); err == nil {
		t.Fatalf("expected error for zero window")
	}
	if _, err := NewAttemptLimiter(rdb, 5, time.Minute); err != nil {
		t.Fatalf("valid limiter: %v", err)
	}
}
