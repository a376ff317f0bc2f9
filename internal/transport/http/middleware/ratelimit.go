package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// RateLimiter applies a fixed per-minute budget per client IP. Counters
// reset on window boundaries rather than refilling gradually.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	catalog *i18n.Catalog
}

func NewRateLimiter(perMinute int, catalog *i18n.Catalog) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   perMinute,
		window:  time.Minute,
		catalog: catalog,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		key := clientIP(r)
		retryAfter, ok := rl.allow(key)
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			failLocalized(w, r, http.StatusTooManyRequests, "RATE_LIMITED", rl.catalog)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(key string) (time.Duration, bool) {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || now.After(b.resetAt) {
		rl.buckets[key] = &bucket{count: 1, resetAt: now.Add(rl.window)}
		return 0, true
	}
	if b.count >= rl.limit {
		return time.Until(b.resetAt), false
	}
	b.count++
	return 0, true
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
