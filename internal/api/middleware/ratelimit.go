package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/leverblum/boardsctrl/internal/api/metrics"
	"github.com/leverblum/boardsctrl/internal/core/ports"
)

// RateLimit throttles requests per client IP. Limiter errors fail open.
func RateLimit(limiter ports.RateLimiter, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, err := limiter.Allow(c.Request().Context(), "login:"+ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("rate_limited").Inc()
				c.Response().Header().Set("Retry-After", retryAfter)
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
