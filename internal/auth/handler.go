// File: internal/auth/handler.go
package auth

import (
	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("AuthHandler"),
	}
}

// RegisterRoutes mounts the auth routes under api ("/api") and the versioned reset link under v1 ("/api/v1").
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, v1 *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/register", h.register)
		authGroup.POST("/forgot-password", h.forgotPassword)
		authGroup.POST("/reset-password/:token", h.resetPassword)
		authGroup.POST("/update-password", h.updatePassword)
		authGroup.PATCH("/update-password", h.updatePassword)
		authGroup.POST("/logout", h.logout)
	}
	v1.POST("/auth/reset-password/:token", h.resetPassword)
}

func (h *Handler) login(c *gin.Context) {
	var req Credentials
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	common.Respond(c, h.service.Login(c.Request.Context(), req))
}

func (h *Handler) register(c *gin.Context) {
	var req RegistrationRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warn("Register: Invalid request body", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	common.Respond(c, h.service.Register(c.Request.Context(), req))
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warn("Forgot password: Invalid request body", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	common.Respond(c, h.service.ForgotPassword(c.Request.Context(), req))
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warn("Reset password: Invalid request body", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	// the path parameter is authoritative over any token in the body
	req.Token = c.Param("token")
	common.Respond(c, h.service.ResetPassword(c.Request.Context(), req))
}

func (h *Handler) updatePassword(c *gin.Context) {
	var req PasswordChangeRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warn("Update password: Invalid request body", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	common.Respond(c, h.service.UpdatePassword(c.Request.Context(), c.Request.Method, req, identityOf(c)))
}

func (h *Handler) logout(c *gin.Context) {
	common.Respond(c, h.service.Logout(c.Request.Context(), identityOf(c)))
}

func identityOf(c *gin.Context) Identity {
	id := Identity{Token: common.GetBearerToken(c)}
	if sess := middleware.GetSessionFromContext(c); sess != nil {
		id.UserID = sess.UserID
	}
	return id
}
