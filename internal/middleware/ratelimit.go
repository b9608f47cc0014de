package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter returns middleware that limits by client IP (in-memory store).
// rateFormatted: "20-M", "1000-H", "50-S". Empty disables limiting.
func NewRateLimiter(rateFormatted string) (echo.MiddlewareFunc, error) {
	if rateFormatted == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rate)
	mw := stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(limitReached))
	return echo.WrapMiddleware(mw.Handler), nil
}

func limitReached(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"message":"Too many requests","code":"RATE_LIMITED"}`))
}
