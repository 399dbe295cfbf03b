package publicauth

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultLimiterIdleTTL = 10 * time.Minute

// LimiterConfig sets the per-address token bucket for login attempts.
type LimiterConfig struct {
	PerMinute float64
	Burst     int
	IdleTTL   time.Duration
}

type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter keeps one token bucket per client address. Idle buckets are
// dropped on access once they outlive IdleTTL.
type loginLimiter struct {
	conf      LimiterConfig
	now       func() time.Time
	mu        sync.Mutex
	buckets   map[string]*keyLimiter
	lastPrune time.Time
}

func newLoginLimiter(conf LimiterConfig, now func() time.Time) *loginLimiter {
	if conf.IdleTTL <= 0 {
		conf.IdleTTL = defaultLimiterIdleTTL
	}
	if now == nil {
		now = time.Now
	}
	return &loginLimiter{conf: conf, now: now, buckets: make(map[string]*keyLimiter)}
}

// allow reports whether key may attempt a login now. A zero rate disables
// throttling.
func (l *loginLimiter) allow(key string) bool {
	if l == nil || l.conf.PerMinute <= 0 {
		return true
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) > l.conf.IdleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > l.conf.IdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastPrune = now
	}
	b, ok := l.buckets[key]
	if !ok {
		burst := l.conf.Burst
		if burst <= 0 {
			burst = 1
		}
		b = &keyLimiter{limiter: rate.NewLimiter(rate.Limit(l.conf.PerMinute/60), burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *loginLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// retryAfter is the number of seconds until one more token is available.
func (l *loginLimiter) retryAfter() int {
	if l == nil || l.conf.PerMinute <= 0 {
		return 0
	}
	return int(math.Ceil(60 / l.conf.PerMinute))
}
