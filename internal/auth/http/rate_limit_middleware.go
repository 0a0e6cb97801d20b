package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/webhooks/internal/errors"
	"github.com/allisson/webhooks/internal/httputil"
)

const (
	// limiterIdleTTL is how long an unused limiter is kept before it is swept.
	limiterIdleTTL = time.Hour
	// limiterSweepInterval is the minimum time between two sweeps.
	limiterSweepInterval = 5 * time.Minute
)

// limiterEntry holds a token bucket and the last time it was used.
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterStore keeps one token bucket per key and sweeps idle buckets while serving lookups.
type limiterStore[K comparable] struct {
	mu        sync.Mutex
	limiters  map[K]*limiterEntry
	rps       float64
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore[K comparable](rps float64, burst int) *limiterStore[K] {
	return &limiterStore[K]{
		limiters:  make(map[K]*limiterEntry),
		rps:       rps,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// get returns the limiter for key, creating it on first use.
func (s *limiterStore[K]) get(key K) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		s.sweep(now)
	}

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.limiters[key] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

// sweep drops limiters idle for longer than limiterIdleTTL. Callers hold s.mu.
func (s *limiterStore[K]) sweep(now time.Time) {
	threshold := now.Add(-limiterIdleTTL)
	for key, entry := range s.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(s.limiters, key)
		}
	}
	s.lastSweep = now
}

// size returns the number of tracked keys.
func (s *limiterStore[K]) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// rejectIfLimited writes a 429 with Retry-After when limiter has no token left.
func rejectIfLimited(c *gin.Context, limiter *rate.Limiter, message string) bool {
	if limiter.Allow() {
		return false
	}

	reservation := limiter.Reserve()
	retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
	reservation.Cancel()
	if retryAfter < 1 {
		retryAfter = 1
	}

	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{
		Error:   "rate_limit_exceeded",
		Message: message,
	})
	c.Abort()
	return true
}

// RateLimitMiddleware enforces a per-client token bucket on authenticated requests.
// It must run after AuthenticationMiddleware.
//
// Returns 429 Too Many Requests with a Retry-After header once the bucket is empty.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[uuid.UUID](rps, burst)

	return func(c *gin.Context) {
		client, ok := GetClient(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated client in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if rejectIfLimited(c, store.get(client.ID), "Too many requests, retry after the specified delay") {
			logger.Debug("rate limit exceeded", slog.String("client_id", client.ID.String()))
			return
		}

		c.Next()
	}
}

// TokenRateLimitMiddleware enforces a per-IP token bucket on the unauthenticated token endpoint.
// The address comes from c.ClientIP, which honours X-Forwarded-For from trusted proxies.
func TokenRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[string](rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if rejectIfLimited(c, store.get(clientIP), "Too many token requests from this address, retry later") {
			logger.Debug("token rate limit exceeded", slog.String("client_ip", clientIP))
			return
		}

		c.Next()
	}
}
