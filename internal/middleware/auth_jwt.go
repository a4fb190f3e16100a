package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kitchenchain/franchise-api/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// CtxIdentityKey holds the verified model.Identity.
const CtxIdentityKey = "identity"

// AuthJWT verifies an HS256 bearer token carrying {id, role, store_id, exp}
// and attaches the caller's identity to the context.
func AuthJWT(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c)
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return unauthorized(c)
			}

			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return key, nil
			})
			if err != nil || token == nil || !token.Valid {
				return unauthorized(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}
			// jwt.Parse skips exp when it is absent; a token must carry one
			if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
				return unauthorized(c)
			}

			id, err := parseInt64(claims["id"])
			if err != nil || id <= 0 {
				return unauthorized(c)
			}
			role, _ := claims["role"].(string)
			if !model.Role(role).Valid() {
				return unauthorized(c)
			}
			storeID, err := parseOptionalInt64(claims["store_id"])
			if err != nil {
				return unauthorized(c)
			}

			c.Set(CtxIdentityKey, model.Identity{ID: id, Role: model.Role(role), StoreID: storeID})
			return next(c)
		}
	}
}

// IdentityFrom returns the identity set by AuthJWT.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(CtxIdentityKey).(model.Identity)
	if !ok || id.ID <= 0 {
		return model.Identity{}, false
	}
	return id, true
}

type errorResponse struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{ErrorCode: status, Message: msg})
}

func unauthorized(c echo.Context) error {
	return errorJSON(c, http.StatusUnauthorized, "unauthorized")
}

func parseInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid int")
	}
}

// nil and a missing claim both mean "no store"
func parseOptionalInt64(v interface{}) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	n, err := parseInt64(v)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.New("invalid store_id")
	}
	return &n, nil
}
