// File: internal/middleware/session.go
package middleware

import (
	"errors"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionContext resolves the session bound to the caller's bearer token, when there is one.
// Requests without a session pass through untouched.
func SessionContext(manager *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := common.GetBearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		sess, err := manager.Lookup(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(common.SessionContextKey, sess)
		case errors.Is(err, session.ErrNotFound):
		default:
			logger.Warn("Session lookup failed", zap.Error(err), zap.String("request_id", common.GetRequestID(c)))
		}
		c.Next()
	}
}

// GetSessionFromContext returns the session placed by SessionContext, or nil.
func GetSessionFromContext(c *gin.Context) *session.Session {
	val, exists := c.Get(common.SessionContextKey)
	if !exists {
		return nil
	}
	sess, ok := val.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
