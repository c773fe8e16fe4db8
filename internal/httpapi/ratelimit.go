package httpapi

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter bounds request frequency per identifier over a sliding window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter keeps an ordered list of request timestamps per identifier.
// A request is allowed while fewer than max timestamps fall inside the
// trailing window; allowed requests append their own timestamp. Identifiers
// idle for a full window are swept out so memory stays bounded.
type MemoryLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		l.sweep(now)
		return false, nil
	}

	l.hits[key] = append(recent, now)
	l.sweep(now)
	return true, nil
}

// sweep drops identifiers whose newest entry fell out of the window. Runs at
// most once per window; caller holds the lock.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-l.window)
	for key, timestamps := range l.hits {
		if len(timestamps) == 0 || !timestamps[len(timestamps)-1].After(cutoff) {
			delete(l.hits, key)
		}
	}
}

// RedisLimiter is the shared-store variant: a sorted set per identifier,
// trimmed and counted atomically in a Lua script, for deployments where a
// per-process window is not enough.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, max: max, window: window}
}

var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
	if redis.call('ZCARD', key) >= limit then
		return 0
	end
	local seq = redis.call('INCR', key .. ':seq')
	redis.call('ZADD', key, now, now .. '-' .. seq)
	redis.call('PEXPIRE', key, window)
	redis.call('PEXPIRE', key .. ':seq', window)
	return 1
`)

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	allowed, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.prefix + key},
		time.Now().UnixMilli(), l.window.Milliseconds(), l.max,
	).Int64()
	if err != nil {
		return false, err
	}
	return allowed == 1, nil
}

// RateLimitMiddleware applies the generic per-client ceiling to every request.
// A limiter backend failure fails open with a log line rather than taking the
// whole surface down.
func RateLimitMiddleware(limiter Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := limiter.Allow(r.Context(), "global-"+clientIP(r))
		if err != nil {
			log.Printf("rate limiter error: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
