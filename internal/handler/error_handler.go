package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "ideaboard/internal/errors"
)

// NewErrorHandler returns the single place where failed requests are turned
// into responses. The underlying error is logged, the client only sees the
// mapped message.
func NewErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err)

		event := log.Debug()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.Err(err).
			Int("status", status).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func resolveError(err error) (int, apperrors.ErrorResponse) {
	if apperrors.KindOf(err) != apperrors.KindInternal {
		httpErr := apperrors.MapErrorToHTTP(err)
		return httpErr.StatusCode, httpErr.ToErrorResponse()
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		message := http.StatusText(echoErr.Code)
		if m, ok := echoErr.Message.(string); ok && m != "" {
			message = m
		} else if echoErr.Message != nil {
			message = fmt.Sprint(echoErr.Message)
		}
		return echoErr.Code, apperrors.ErrorResponse{Message: message}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}
