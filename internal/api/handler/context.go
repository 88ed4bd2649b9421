package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/core/domain"
)

// Context keys set by the Auth middleware.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// callerID returns the authenticated user id or a 401 when the Auth
// middleware did not run.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

func callerRole(c echo.Context) domain.Role {
	role, _ := c.Get(CtxRole).(domain.Role)
	return role
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
