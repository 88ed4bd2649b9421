package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oladokun-o/engine/internal/api/handler"
	"github.com/oladokun-o/engine/internal/core/domain"
)

// RequireRole lets the request through only when the authenticated role is
// one of roles. It must run after Auth.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(handler.CtxRole).(domain.Role)
			if _, ok := allowed[role]; !ok {
				return handler.Fail(c, http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
