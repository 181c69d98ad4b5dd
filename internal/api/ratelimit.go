package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// rateLimiter is a keyed fixed-window counter. Content routes share one
// instance; its counters are the only mutable shared state in the
// authorization layer, so check-and-increment and window reset happen
// in a single critical section.
type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	span    time.Duration
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

func newRateLimiter(limit int, span time.Duration) *rateLimiter {
	return &rateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		span:    span,
		now:     time.Now,
	}
}

// allow counts one request against key's current window and reports
// whether it fits the budget.
func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.span {
		w = &window{start: now}
		rl.windows[key] = w
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// middleware rejects over-budget requests with 429 before any
// credential evaluation happens.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.allow(key) {
			log.Warn().Str("ip", key).Str("path", r.URL.Path).Msg("rate limit exceeded")
			rateLimitedTotal.Inc()
			writeError(w, http.StatusTooManyRequests, codeRateLimit, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
