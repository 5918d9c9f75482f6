package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/appdeck/internal/utils"
)

// RateLimitConfig configures a per-client token bucket.
type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int              // sweep early once this many clients are tracked
	SweepInterval     time.Duration    // default 1m
	IdleTTL           time.Duration    // forget clients idle this long, default 15m
	TrustProxy        bool             // resolve IP from proxy headers when true
	Now               func() time.Time // clock, time.Now when nil
}

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type limiter struct {
	cfg       RateLimitConfig
	limit     rate.Limit
	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerIPPerMin = max(cfg.RefillPerIPPerMin, 1)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &limiter{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.RefillPerIPPerMin) / 60.0),
		clients:   make(map[string]*client, 64),
		lastSweep: cfg.Now(),
	}
}

// allow consumes one token for key. When refused it reports how many whole
// seconds until a token is available.
func (l *limiter) allow(key string, now time.Time) (ok bool, remaining int, retryAfterSec int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval ||
		(l.cfg.MaxEntries > 0 && len(l.clients) >= l.cfg.MaxEntries) {
		l.sweepLocked(now)
	}

	c := l.clients[key]
	if c == nil {
		c = &client{lim: rate.NewLimiter(l.limit, l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	if c.lim.AllowN(now, 1) {
		return true, int(math.Floor(c.lim.TokensAt(now))), 0
	}

	r := c.lim.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, 0, max(int(math.Ceil(delay.Seconds())), 1)
}

func (l *limiter) sweepLocked(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > l.cfg.IdleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// RateLimit limits requests per client IP. Rejected requests get 429 with
// a Retry-After header.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limitStr := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, l.cfg.TrustProxy)
			ok, remaining, retry := l.allow(key, l.cfg.Now())

			w.Header().Set("X-RateLimit-Limit", limitStr)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				deny(w, http.StatusTooManyRequests, "Too many requests", "RATE_LIMITED")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
