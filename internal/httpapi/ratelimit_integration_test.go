package httpapi

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func setupTestRedisLimiter(t *testing.T, ctx context.Context, max int, window time.Duration) *RedisLimiter {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR or REDIS_ADDR is required for integration tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	prefix := fmt.Sprintf("test:ratelimit:%d:", time.Now().UnixNano())
	t.Cleanup(func() {
		keys, err := client.Keys(context.Background(), prefix+"*").Result()
		if err == nil && len(keys) > 0 {
			_ = client.Del(context.Background(), keys...).Err()
		}
	})
	return NewRedisLimiter(client, prefix, max, window)
}

func TestRedisLimiterCeiling(t *testing.T) {
	ctx := context.Background()
	limiter := setupTestRedisLimiter(t, ctx, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("allow %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d should be under the ceiling", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, "client-a")
	if err != nil {
		t.Fatalf("allow over ceiling: %v", err)
	}
	if allowed {
		t.Fatal("request over the ceiling should be rejected")
	}

	// The window is per identifier; a different client is unaffected.
	allowed, err = limiter.Allow(ctx, "client-b")
	if err != nil {
		t.Fatalf("allow other client: %v", err)
	}
	if !allowed {
		t.Fatal("other client should not share the bucket")
	}
}

func TestRedisLimiterWindowReset(t *testing.T) {
	ctx := context.Background()
	limiter := setupTestRedisLimiter(t, ctx, 1, 300*time.Millisecond)

	allowed, err := limiter.Allow(ctx, "client-reset")
	if err != nil {
		t.Fatalf("first allow: %v", err)
	}
	if !allowed {
		t.Fatal("first request should be allowed")
	}

	allowed, err = limiter.Allow(ctx, "client-reset")
	if err != nil {
		t.Fatalf("second allow: %v", err)
	}
	if allowed {
		t.Fatal("second request inside the window should be rejected")
	}

	time.Sleep(400 * time.Millisecond)

	allowed, err = limiter.Allow(ctx, "client-reset")
	if err != nil {
		t.Fatalf("allow after window: %v", err)
	}
	if !allowed {
		t.Fatal("request after the window elapsed should be allowed")
	}
}
