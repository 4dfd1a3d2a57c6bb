// File: internal/user/handler.go
package user

import (
	"io"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxProfileBytes bounds the update-user body read from the caller.
const maxProfileBytes = 1 << 20

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("UserHandler"),
	}
}

// RegisterRoutes sets up the routes for user operations.
// It takes the bearer-token middleware as a parameter.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	authGroup.Use(authMW)
	{
		authGroup.PUT("/update-user", h.updateUser)
		authGroup.GET("/get-all-users", h.getAllUsers)
	}
}

func (h *Handler) updateUser(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProfileBytes))
	if err != nil {
		h.logger.Warn("Update user: failed to read body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	common.Respond(c, h.service.UpdateMe(c.Request.Context(), middleware.GetTokenFromContext(c), ProfileUpdate(raw)))
}

func (h *Handler) getAllUsers(c *gin.Context) {
	common.Respond(c, h.service.ListUsers(c.Request.Context(), middleware.GetTokenFromContext(c), common.GetPaginationParams(c)))
}
