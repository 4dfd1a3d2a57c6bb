// File: internal/auth/service.go
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/config"
	"nutrisnap_gateway/internal/session"
	"nutrisnap_gateway/internal/upstream"

	"go.uber.org/zap"
)

// Service defines the authentication operations the gateway proxies to the upstream service.
// Every method returns a complete NormalizedResponse; none of them return an error.
type Service interface {
	Login(ctx context.Context, req Credentials) common.NormalizedResponse
	Register(ctx context.Context, req RegistrationRequest) common.NormalizedResponse
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) common.NormalizedResponse
	ResetPassword(ctx context.Context, req ResetPasswordRequest) common.NormalizedResponse
	UpdatePassword(ctx context.Context, method string, req PasswordChangeRequest, id Identity) common.NormalizedResponse
	Logout(ctx context.Context, id Identity) common.NormalizedResponse
}

var errInvalidPhone = common.ErrBadRequest.
	WithMessage("The phone field must be a valid phone number.").
	WithDetails(map[string]string{"phone": "The phone field must be a valid phone number."})

// ServiceImplementation implements auth.Service.
type ServiceImplementation struct {
	invoker   upstream.Invoker
	validator *common.Validator
	sessions  *session.Manager
	blocklist session.Blocklist
	cfg       *config.Config
	logger    *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new auth service.
func NewService(
	invoker upstream.Invoker,
	validator *common.Validator,
	sessions *session.Manager,
	blocklist session.Blocklist,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		invoker:   invoker,
		validator: validator,
		sessions:  sessions,
		blocklist: blocklist,
		cfg:       cfg,
		logger:    logger.Named("AuthService"),
	}
}

func (s *ServiceImplementation) Login(ctx context.Context, req Credentials) common.NormalizedResponse {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return common.ErrorResponse(err)
	}

	res := s.invoker.Do(ctx, upstream.Call{Method: http.MethodPost, Path: "/auth/login", Body: req})
	resp := upstream.Normalize(res, "Login successful")
	if resp.Success {
		s.attachIdentity(ctx, &resp)
	} else {
		s.logger.Info("Login rejected", zap.Int("status", resp.Status))
	}
	return resp
}

func (s *ServiceImplementation) Register(ctx context.Context, req RegistrationRequest) common.NormalizedResponse {
	mapped := MapRegistration(req)
	if err := s.validator.Struct(mapped); err != nil {
		return common.ErrorResponse(err)
	}
	if !ValidPhone(mapped.Phone, s.cfg.DefaultPhoneRegion) {
		return errInvalidPhone.Response()
	}

	res := s.invoker.Do(ctx, upstream.Call{Method: http.MethodPost, Path: "/users", Body: mapped.upstream()})
	resp := upstream.Normalize(res, "Registration successful")
	if resp.Success {
		s.attachIdentity(ctx, &resp)
	}
	return resp
}

func (s *ServiceImplementation) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) common.NormalizedResponse {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return common.ErrorResponse(err)
	}
	res := s.invoker.Do(ctx, upstream.Call{Method: http.MethodPost, Path: "/auth/forgot-password", Body: req})
	return upstream.Normalize(res, "Password reset link sent")
}

func (s *ServiceImplementation) ResetPassword(ctx context.Context, req ResetPasswordRequest) common.NormalizedResponse {
	req.Token = strings.TrimSpace(req.Token)
	req.PasswordConfirm = firstNonEmpty(req.PasswordConfirm, req.ConfirmPassword)
	req.ConfirmPassword = ""
	if err := s.validator.Struct(req); err != nil {
		return common.ErrorResponse(err)
	}

	body := upstreamPasswordReset{Password: req.Password, PasswordConfirm: req.PasswordConfirm}
	res := s.invoker.Do(ctx, upstream.Call{
		Method: http.MethodPost,
		Path:   "/auth/reset-password/" + url.PathEscape(req.Token),
		Body:   body,
	})
	return upstream.Normalize(res, "Password reset successful")
}

// UpdatePassword forwards method (POST or PATCH) unchanged. A bearer token stands in for userId;
// when one is present the id is still resolved from the session or the token claims if possible.
// A token ended by Logout is answered with 401 and never forwarded.
func (s *ServiceImplementation) UpdatePassword(ctx context.Context, method string, req PasswordChangeRequest, id Identity) common.NormalizedResponse {
	if apiErr := s.checkRevoked(ctx, id.Token); apiErr != nil {
		return apiErr.Response()
	}
	req.Authenticated = id.Token != ""
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" && req.Authenticated {
		req.UserID = firstNonEmpty(id.UserID, UserIDFromToken(id.Token))
	}
	if err := s.validator.Struct(req); err != nil {
		return common.ErrorResponse(err)
	}

	if method != http.MethodPatch {
		method = http.MethodPost
	}
	body := upstreamPasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		UserID:          req.UserID,
	}
	res := s.invoker.Do(ctx, upstream.Call{
		Method: method,
		Path:   "/auth/update-password",
		Body:   body,
		Token:  id.Token,
	})
	return upstream.Normalize(res, "Password updated successfully")
}

// Logout destroys the session bound to the caller's token and stops the gateway from forwarding
// that token again until it expires. It succeeds even without a token.
func (s *ServiceImplementation) Logout(ctx context.Context, id Identity) common.NormalizedResponse {
	if err := s.sessions.Destroy(ctx, id.Token); err != nil {
		s.logger.Error("Failed to destroy session", zap.Error(err))
		return common.ErrInternalServer.WithMessage("Failed to end session").Response()
	}
	if id.Token != "" && s.blocklist != nil {
		expiresAt, ok := ExpiryFromToken(id.Token)
		if !ok {
			expiresAt = time.Now().Add(s.cfg.SessionTTL)
		}
		if err := s.blocklist.Revoke(ctx, id.Token, expiresAt); err != nil {
			s.logger.Error("Failed to revoke token", zap.Error(err))
		}
	}
	return common.OK(http.StatusOK, "Logged out successfully", nil)
}

// checkRevoked returns ErrSessionEnded for a token ended by Logout.
func (s *ServiceImplementation) checkRevoked(ctx context.Context, token string) *common.APIError {
	if token == "" || s.blocklist == nil {
		return nil
	}
	revoked, err := s.blocklist.IsRevoked(ctx, token)
	if err != nil {
		s.logger.Error("Blocklist lookup failed", zap.Error(err))
		return common.ErrInternalServer
	}
	if revoked {
		s.logger.Info("Rejected logged out token on update-password")
		return common.ErrSessionEnded
	}
	return nil
}

// attachIdentity copies the user and token out of a successful body and opens a session for them.
func (s *ServiceImplementation) attachIdentity(ctx context.Context, resp *common.NormalizedResponse) {
	resp.User = ExtractUser(resp.Data)
	resp.Token = ExtractToken(resp.Data)
	if resp.Token == "" {
		return
	}
	if s.blocklist != nil {
		if err := s.blocklist.Restore(ctx, resp.Token); err != nil {
			s.logger.Warn("Failed to restore token", zap.Error(err))
		}
	}
	sess, err := s.sessions.Create(ctx, resp.Token, resp.User)
	if err != nil {
		s.logger.Error("Failed to create session", zap.Error(err))
		return
	}
	s.logger.Info("Session opened", zap.String("session_id", sess.ID.String()), zap.String("user_id", sess.UserID))
}
