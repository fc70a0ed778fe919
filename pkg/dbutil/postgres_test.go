package dbutil

import (
	"testing"
	"time"
)

func TestPoolConfigDefaults(t *testing.T) {
	got := PostgresPoolConfig{}.withDefaults()
	if got.MaxOpenConns != 25 || got.MaxIdleConns != 25 {
		t.Fatalf("unexpected conn defaults: %+v", got)
	}
	if got.PingTimeout != 5*time.Second {
		t.Fatalf("unexpected ping timeout: %v", got.PingTimeout)
	}
}

func TestPoolConfigKeepsExplicitValues(t *testing.T) {
	in := PostgresPoolConfig{MaxOpenConns: 3, PingTimeout: time.Second}
	got := in.withDefaults()
	if got.MaxOpenConns != 3 || got.PingTimeout != time.Second {
		t.Fatalf("explicit values clobbered: %+v", got)
	}
}
