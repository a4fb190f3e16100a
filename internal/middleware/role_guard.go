package middleware

import (
	"net/http"

	"github.com/kitchenchain/franchise-api/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// RequireRoles lets the request through only for the listed roles.
// Must run after AuthJWT.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return unauthorized(c)
			}
			if _, ok := allowed[id.Role]; !ok {
				return errorJSON(c, http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
