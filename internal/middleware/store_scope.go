package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// StoreScope compares the store in path parameter param with the caller's
// store. ADMIN and SC_COORDINATOR may address any store.
func StoreScope(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return unauthorized(c)
			}

			storeID, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err != nil || storeID <= 0 {
				return errorJSON(c, http.StatusBadRequest, "invalid store id")
			}

			if !id.Role.CrossStore() && !id.OwnsStore(storeID) {
				return errorJSON(c, http.StatusForbidden, "you are not allowed to access this store")
			}
			return next(c)
		}
	}
}
