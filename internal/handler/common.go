package handler // handler defines http handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user id stored in the echo
// context by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// internalError logs an unexpected failure under a fresh trace id and
// returns a generic 500 to the client. Persistence-layer detail never
// reaches the caller.
func internalError(c echo.Context, scope string, err error) error {
	traceID := uuid.NewString()
	log.Printf("%s: trace_id=%s %v", scope, traceID, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error":    "internal error",
		"trace_id": traceID,
	})
}
