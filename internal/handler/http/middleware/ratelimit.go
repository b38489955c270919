package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPLimiter builds an in-memory per-IP limiter from a formatted rate such as "100-M".
func NewIPLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit rejects requests over the limit of their client IP with 429.
func RateLimit(limiterInstance *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			key := limiterInstance.GetIPKey(r)

			context, err := limiterInstance.Get(r.Context(), key)
			if err != nil {
				slog.Error("Failed to get rate limit context", "ip", key, "error", err)
				response.InternalServerError(w, "Internal server error during rate limit check")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(context.Reset, 10))

			if context.Reached {
				slog.Warn("Rate limit exceeded", "ip", key, "limit", context.Limit)
				response.TooManyRequests(w, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
