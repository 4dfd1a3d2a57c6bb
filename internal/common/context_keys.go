// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// RequestIDHeader is the header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey holds the request ID inside the gin context
	RequestIDContextKey = "requestID"
	// LoggerContextKey holds a request scoped *zap.Logger
	LoggerContextKey = "logger"
	// SessionContextKey holds the *session.Session resolved from the bearer token
	SessionContextKey = "session"
)
