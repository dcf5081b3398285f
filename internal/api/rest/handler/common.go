package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/tinci/internal/api/middleware"
	apperr "github.com/palemoky/tinci/internal/errors"
)

// respondError sends the error envelope with the status derived from the
// error code.
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// respondOK sends a tool result as the response body.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// queryInt parses an optional integer query parameter. It returns nil when
// the parameter is absent.
func queryInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.InvalidRequest(fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return &n, nil
}

// queryString returns a pointer to an optional query parameter.
func queryString(c *gin.Context, name string) *string {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	return &raw
}

// queryLimit parses ?limit=. Zero means the engine default.
func queryLimit(c *gin.Context) (int, error) {
	n, err := queryInt(c, "limit")
	if err != nil || n == nil {
		return 0, err
	}
	if *n < 0 {
		return 0, apperr.InvalidRequest("limit must not be negative")
	}
	return *n, nil
}
