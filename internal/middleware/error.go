// File: internal/middleware/error.go
package middleware

import (
	"nutrisnap_gateway/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler converts errors attached with c.Error into the response contract.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ginErr := c.Errors.Last()
		apiErr, isAPIErr := common.IsAPIError(ginErr.Err)
		if !isAPIErr {
			logger.Error("Unhandled application error",
				zap.Error(ginErr.Err),
				zap.String("path", c.Request.URL.Path),
				zap.Any("meta", ginErr.Meta),
				zap.String("request_id", common.GetRequestID(c)),
			)
			apiErr = common.ErrInternalServer
			if gin.Mode() == gin.DebugMode && ginErr.Err != nil {
				apiErr = apiErr.WithDetails(ginErr.Err.Error())
			}
		}
		common.Respond(c, apiErr.Response())
	}
}

// Recovery answers a panicking handler with a normalized 500.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", common.GetRequestID(c)),
		)
		common.Respond(c, common.ErrInternalServer.Response())
	})
}

// NotFound is installed as the engine's NoRoute handler.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		common.Respond(c, common.ErrNotFound.Response())
	}
}

// MethodNotAllowed is installed as the engine's NoMethod handler.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		common.Respond(c, common.ErrMethodNotAllowed.Response())
	}
}
