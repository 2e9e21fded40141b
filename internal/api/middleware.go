package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every response with an id, minting one when the client
// did not send its own.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, id)
			return next(c)
		}
	}
}

// RateLimit enforces a per-client request rate. The limiter map is never
// pruned; the server fronts a single-host tool, not the open internet.
func RateLimit(limit rate.Limit, burst int) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*rate.Limiter)
	)
	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := clients[ip]; ok {
			return l
		}
		l := rate.NewLimiter(limit, burst)
		clients[ip] = l
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			if !limiterFor(c.RealIP()).Allow() {
				return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "too many requests", "")
			}
			return next(c)
		}
	}
}
