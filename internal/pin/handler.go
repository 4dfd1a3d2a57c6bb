// File: internal/pin/handler.go
package pin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerifyRequest is the verify-pin body.
type VerifyRequest struct {
	Pin    string `json:"pin"`
	UserID string `json:"userId,omitempty"`
}

// ResendRequest is the optional resend-pin body. The cooldown is keyed on the session user when
// the caller has one, otherwise on the client IP; UserID is only echoed back.
type ResendRequest struct {
	UserID string `json:"userId,omitempty"`
}

// Handler serves the PIN routes. Verification is simulated; no upstream service is called.
type Handler struct {
	registry *Registry
	logger   *zap.Logger
}

func NewHandler(registry *Registry, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.Named("PinHandler"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/verify-pin", h.verifyPin)
		authGroup.POST("/resend-pin", h.resendPin)
	}
}

var errInvalidPin = common.ErrBadRequest.WithMessage("Valid 6-digit PIN is required")

func (h *Handler) verifyPin(c *gin.Context) {
	var req VerifyRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warn("Verify PIN: Invalid request body", zap.Error(err))
		common.RespondWithError(c, errInvalidPin)
		return
	}
	if !Validate(strings.TrimSpace(req.Pin)) {
		common.RespondWithError(c, errInvalidPin)
		return
	}
	common.Respond(c, common.OK(http.StatusOK, "PIN verified successfully", gin.H{"userId": req.UserID}))
}

func (h *Handler) resendPin(c *gin.Context) {
	var req ResendRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warn("Resend PIN: Invalid request body", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}

	userID := strings.TrimSpace(req.UserID)
	key := "ip:" + c.ClientIP()
	if sess := middleware.GetSessionFromContext(c); sess != nil && sess.UserID != "" {
		userID = sess.UserID
		key = "user:" + sess.UserID
	}
	remaining, ok := h.registry.Start(key)
	if !ok {
		c.Header("Retry-After", strconv.Itoa(remaining))
		apiErr := common.ErrTooManyRequests.
			WithMessage(fmt.Sprintf("Please wait %d seconds before requesting a new PIN", remaining)).
			WithDetails(gin.H{"retryAfterSeconds": remaining})
		common.RespondWithError(c, apiErr)
		return
	}

	h.logger.Info("PIN resend accepted", zap.String("user_id", userID), zap.Int("cooldown_seconds", remaining))
	common.Respond(c, common.OK(http.StatusOK, "PIN resent successfully", gin.H{
		"userId":          userID,
		"cooldownSeconds": remaining,
	}))
}
