// File: internal/common/context_helpers.go
package common

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetBearerToken retrieves the token from an "Authorization: Bearer <token>" header.
// Returns an empty string if the header is absent or malformed.
func GetBearerToken(c *gin.Context) string {
	return ParseBearer(c.GetHeader(AuthorizationHeader))
}

// ParseBearer extracts the token part of a bearer authorization value.
func ParseBearer(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// GetRequestID returns the request ID assigned by the logging middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}

// BindJSON decodes the request body into dst. An empty body leaves dst untouched so that
// field validation can report what is missing.
func BindJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrBadRequest.WithMessage("Invalid request body").WithDetails(err.Error())
	}
	return nil
}
