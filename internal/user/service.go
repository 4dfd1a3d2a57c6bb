// File: internal/user/service.go
package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/upstream"

	"go.uber.org/zap"
)

var errProfileNotObject = common.ErrBadRequest.WithMessage("Request body must be a JSON object")

// Service defines the bearer-token operations on upstream user records.
type Service interface {
	UpdateMe(ctx context.Context, token string, update ProfileUpdate) common.NormalizedResponse
	ListUsers(ctx context.Context, token string, page common.PaginationQuery) common.NormalizedResponse
}

// ServiceImplementation implements user.Service.
type ServiceImplementation struct {
	invoker upstream.Invoker
	logger  *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(invoker upstream.Invoker, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		invoker: invoker,
		logger:  logger.Named("UserService"),
	}
}

// UpdateMe forwards update to PUT /users/updateMe with the caller's token.
func (s *ServiceImplementation) UpdateMe(ctx context.Context, token string, update ProfileUpdate) common.NormalizedResponse {
	if token == "" {
		return common.ErrUnauthorized.Response()
	}
	if !update.IsObject() {
		return errProfileNotObject.Response()
	}
	res := s.invoker.Do(ctx, upstream.Call{
		Method: http.MethodPut,
		Path:   "/users/updateMe",
		Body:   json.RawMessage(bytes.TrimSpace(update)),
		Token:  token,
	})
	resp := upstream.Normalize(res, "User updated successfully")
	if !resp.Success {
		s.logger.Info("Profile update rejected", zap.Int("status", resp.Status))
	}
	return resp
}

// ListUsers forwards GET /users with the caller's token and any page/limit the caller sent.
func (s *ServiceImplementation) ListUsers(ctx context.Context, token string, page common.PaginationQuery) common.NormalizedResponse {
	if token == "" {
		return common.ErrUnauthorized.Response()
	}
	path := "/users"
	if query := page.Encode(); query != "" {
		path += "?" + query
	}
	res := s.invoker.Do(ctx, upstream.Call{Method: http.MethodGet, Path: path, Token: token})
	return upstream.Normalize(res, "Users retrieved successfully")
}
