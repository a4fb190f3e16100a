package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kitchenchain/franchise-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

func writeData(c echo.Context, status int, data interface{}, msg string) error {
	return c.JSON(status, SuccessResponse{Data: data, Message: msg})
}

func writeFail(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorResponse{ErrorCode: status, Message: msg})
}

// writeError maps use case and echo errors onto the error envelope.
// The cause of a 500 is logged and never returned.
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", he.Err),
			)
		}
		return writeFail(c, he.Status, he.Message)
	}

	var ee *echo.HTTPError
	if errors.As(err, &ee) && ee.Code < http.StatusInternalServerError {
		msg, ok := ee.Message.(string)
		if !ok {
			msg = http.StatusText(ee.Code)
		}
		return writeFail(c, ee.Code, msg)
	}

	slog.ErrorContext(c.Request().Context(), "request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.Any("error", err),
	)
	return writeFail(c, http.StatusInternalServerError, "internal server error")
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// optionalInt64 parses ?name=; ok is false only for a malformed value.
func optionalInt64(c echo.Context, name string) (*int64, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}
