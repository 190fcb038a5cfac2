package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const rateLimitKeyPrefix = "rl:api"

type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimiter is a fixed-window limiter keyed by client IP and route,
// counting in Redis. Redis failures let the request through.
type RateLimiter struct {
	store   counterStore
	cfg     config.RateLimit
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewRateLimiter(store counterStore, cfg config.RateLimit, m *metrics.Metrics, logger zerolog.Logger) *RateLimiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &RateLimiter{
		store:   store,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With().Str("component", "rate_limiter").Logger(),
	}
}

// Limit wraps next. A nil limiter, a nil handler or a zero MaxRequests
// leaves next untouched.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	if rl == nil || next == nil || rl.store == nil || rl.cfg.MaxRequests <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		route := r.Pattern
		if route == "" {
			route = r.Method + " " + r.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s", rateLimitKeyPrefix, ip, route)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		count, err := rl.store.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
			next(w, r)
			return
		}
		if count == 1 {
			if err := rl.store.Expire(ctx, key, rl.cfg.Window).Err(); err != nil {
				rl.logger.Warn().Err(err).Str("key", key).Msg("set rate limit window failed")
			}
		}

		remaining := rl.cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		ttl, _ := rl.store.TTL(ctx, key).Result()
		retryAfter := int(ttl.Seconds())
		if retryAfter <= 0 {
			retryAfter = int(rl.cfg.Window.Seconds())
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.MaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.Itoa(retryAfter))

		if int(count) > rl.cfg.MaxRequests {
			logging.FromContext(r.Context()).Warn().
				Str("client_ip", ip).
				Str("route", route).
				Int64("count", count).
				Msg("rate limit exceeded")
			if rl.metrics != nil {
				rl.metrics.RateLimited.Inc()
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httperrors.RespondTooManyRequests(w, "Too many requests. Please try again later.")
			return
		}

		next(w, r)
	}
}

// clientIP prefers the first X-Forwarded-For hop, then the peer address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
