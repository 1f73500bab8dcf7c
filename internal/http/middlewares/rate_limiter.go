package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "study-planner.com/study-planner/internal/errors"
)

type bucket struct {
	count int
	start time.Time
}

// rateLimiter counts requests per user in fixed windows. Expired buckets
// are swept at most once per window.
type rateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

// allow records a request for key and reports how long to wait when the
// window is exhausted.
func (l *rateLimiter) allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.window {
		for k, b := range l.buckets {
			if now.Sub(b.start) > l.window {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) > l.window {
		b = &bucket{start: now}
		l.buckets[key] = b
	}

	if b.count >= l.limit {
		return false, l.window - now.Sub(b.start)
	}

	b.count++
	return true, 0
}

// RateLimiter allows limit requests per window for each authenticated user.
// It must be mounted after Authenticate.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	limiter := newRateLimiter(limit, window)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return apperrors.ErrUnauthenticated
			}

			allowed, retryAfter := limiter.allow(identity.UserID, time.Now())
			if !allowed {
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds())+1))
				return apperrors.ErrRateLimited
			}

			return next(c)
		}
	}
}
