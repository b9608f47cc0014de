package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

// Secure adds security headers to every response.
func Secure(isDevelopment bool) echo.MiddlewareFunc {
	s := secure.New(secure.Options{
		IsDevelopment:      isDevelopment,
		ContentTypeNosniff: true,
		FrameDeny:          true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})
	return echo.WrapMiddleware(s.Handler)
}
