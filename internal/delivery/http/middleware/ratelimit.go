package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	h "timevents/internal/delivery/http/helpers"
	"timevents/internal/metrics"
)

// LoginLimiter throttles requests per client IP with a token bucket: a burst
// of limit requests, refilled evenly over window.
type LoginLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*limiterEntry
	limit       int
	every       time.Duration
	ttl         time.Duration
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter returns a limiter allowing limit attempts per window per
// client. A non-positive limit disables limiting. Call Stop to end the
// background cleanup.
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		limiters:    make(map[string]*limiterEntry),
		limit:       limit,
		ttl:         window,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	if limit > 0 && window > 0 {
		l.every = window / time.Duration(limit)
		go l.cleanupLoop(window)
	}
	return l
}

// Wrap applies the limiter to next. Rejected requests get 429 with Retry-After.
// A nil or disabled limiter returns next unchanged.
func (l *LoginLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	if l == nil || l.every <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			metrics.LoginAttempts.WithLabelValues(metrics.LoginRateLimited).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(l.every.Seconds())))
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "too many login attempts")
			return
		}
		next(w, r)
	}
}

func (l *LoginLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(l.every), l.limit)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *LoginLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCleanup:
			return
		}
	}
}

// cleanup drops entries idle for longer than the window; their buckets are full again.
func (l *LoginLimiter) cleanup() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.ttl {
			delete(l.limiters, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *LoginLimiter) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() { close(l.stopCleanup) })
}

// clientIP keys on the connection address. Forwarding headers are ignored
// since they are client controlled.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
