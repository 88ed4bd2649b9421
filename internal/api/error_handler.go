package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/api/handler"
	"github.com/oladokun-o/engine/internal/core/domain"
)

// statusByError maps domain sentinels to HTTP codes. The sentinel's own text
// is the client message.
var statusByError = []struct {
	err  error
	code int
}{
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrOrderNotFound, http.StatusNotFound},
	{domain.ErrUserExists, http.StatusConflict},
	{domain.ErrAlreadyVerified, http.StatusConflict},
	{domain.ErrBusy, http.StatusConflict},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrTokenMismatch, http.StatusUnauthorized},
	{domain.ErrWrongRole, http.StatusForbidden},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInvalidCode, http.StatusBadRequest},
	{domain.ErrCodeExpired, http.StatusBadRequest},
	{domain.ErrPasswordMismatch, http.StatusBadRequest},
	{domain.ErrSameEmail, http.StatusBadRequest},
	{domain.ErrInvalidRole, http.StatusBadRequest},
	{domain.ErrUnsupportedLang, http.StatusBadRequest},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
}

// NewHTTPErrorHandler renders every error in the response envelope. Unknown
// errors are logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = handler.Fail(c, code, msg)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.code, m.err.Error()
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
