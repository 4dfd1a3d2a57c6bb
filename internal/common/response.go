// File: internal/common/response.go
package common

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NormalizedResponse is the only shape the gateway ever returns to its caller.
// The HTTP status of the reply always mirrors Status.
type NormalizedResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
	Status  int                    `json:"status"`
}

// OK builds a successful response, marshalling data when given.
func OK(status int, message string, data interface{}) NormalizedResponse {
	resp := NormalizedResponse{Success: true, Message: message, Status: status}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			resp.Data = raw
		}
	}
	return resp
}

// Respond writes resp and stops the handler chain.
func Respond(c *gin.Context, resp NormalizedResponse) {
	if resp.Status == 0 {
		resp.Status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(resp.Status, resp)
}

// RespondWithError sends err using the response contract.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get(LoggerContextKey); exists {
			if logger, ok := l.(*zap.Logger); ok {
				logger.Error("Unhandled internal error being wrapped", zap.Error(err))
			}
		}
		apiErr = ErrInternalServer.WithMessage(err.Error())
	}
	Respond(c, apiErr.Response())
}

// ErrorResponse converts any error into the caller contract. Non-APIError values become a 500.
func ErrorResponse(err error) NormalizedResponse {
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.Response()
	}
	return ErrInternalServer.WithMessage(err.Error()).Response()
}
