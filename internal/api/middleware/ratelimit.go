package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/api/metrics"
	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/ports"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
)

// RateLimit counts requests per client IP under the named policy. Rejected
// requests return domain.ErrRateLimited before the handler runs. When the
// limiter itself fails the request is let through.
func RateLimit(limiter ports.RateLimiter, policy string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			d, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("policy", policy).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
			h.Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))

			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				h.Set(HeaderRetryAfter, strconv.Itoa(secs))
				metrics.RateLimitRejectionsTotal.WithLabelValues(policy).Inc()
				log.Debug().Str("policy", policy).Str("ip", key).Msg("rate limit exceeded")
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
