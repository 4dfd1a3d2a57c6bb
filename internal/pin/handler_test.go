package pin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/config"
	"nutrisnap_gateway/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(seconds int) (*gin.Engine, *Registry) {
	gin.SetMode(gin.TestMode)
	registry := NewRegistry(&config.Config{PinResendCooldownSeconds: seconds})
	r := gin.New()
	r.Use(withSessionUser())
	NewHandler(registry, zap.NewNop()).RegisterRoutes(r.Group("/api"))
	return r, registry
}

// withSessionUser stands in for the session middleware: the X-Test-User header becomes the session user.
func withSessionUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(common.SessionContextKey, &session.Session{UserID: id})
		}
		c.Next()
	}
}

func post(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, common.NormalizedResponse) {
	t.Helper()
	return postFrom(t, r, path, body, "192.0.2.10", "")
}

func postFrom(t *testing.T, r *gin.Engine, path, body, ip, sessionUser string) (*httptest.ResponseRecorder, common.NormalizedResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":5555"
	if sessionUser != "" {
		req.Header.Set("X-Test-User", sessionUser)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp common.NormalizedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	assert.Equal(t, w.Code, resp.Status)
	return w, resp
}

func TestVerifyPin(t *testing.T) {
	r, _ := newTestRouter(60)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"valid", `{"pin":"123456","userId":"u-1"}`, http.StatusOK, "PIN verified successfully"},
		{"short", `{"pin":"12345"}`, http.StatusBadRequest, "Valid 6-digit PIN is required"},
		{"letters", `{"pin":"12a456"}`, http.StatusBadRequest, "Valid 6-digit PIN is required"},
		{"missing", `{}`, http.StatusBadRequest, "Valid 6-digit PIN is required"},
		{"numeric json", `{"pin":123456}`, http.StatusBadRequest, "Valid 6-digit PIN is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp := post(t, r, "/api/auth/verify-pin", tt.body)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.status == http.StatusOK, resp.Success)
		})
	}

	_, resp := post(t, r, "/api/auth/verify-pin", `{"pin":"123456","userId":"u-1"}`)
	assert.JSONEq(t, `{"userId":"u-1"}`, string(resp.Data))
}

func TestResendPin_Cooldown(t *testing.T) {
	r, registry := newTestRouter(60)

	_, resp := postFrom(t, r, "/api/auth/resend-pin", `{}`, "192.0.2.10", "u-1")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "PIN resent successfully", resp.Message)
	assert.JSONEq(t, `{"userId":"u-1","cooldownSeconds":60}`, string(resp.Data))

	w, resp := postFrom(t, r, "/api/auth/resend-pin", `{}`, "192.0.2.10", "u-1")
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please wait 60 seconds before requesting a new PIN", resp.Message)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	for i := 0; i < 60; i++ {
		registry.TickAll()
	}
	_, resp = postFrom(t, r, "/api/auth/resend-pin", `{}`, "192.0.2.10", "u-1")
	assert.Equal(t, http.StatusOK, resp.Status, "resend is available again after the cooldown")
}

func TestResendPin_SessionUserFollowsAcrossAddresses(t *testing.T) {
	r, _ := newTestRouter(60)

	_, resp := postFrom(t, r, "/api/auth/resend-pin", `{}`, "192.0.2.10", "u-1")
	require.Equal(t, http.StatusOK, resp.Status)

	_, resp = postFrom(t, r, "/api/auth/resend-pin", `{}`, "198.51.100.7", "u-1")
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)

	_, resp = postFrom(t, r, "/api/auth/resend-pin", `{}`, "192.0.2.10", "u-2")
	assert.Equal(t, http.StatusOK, resp.Status, "cooldowns are per session user")
}

func TestResendPin_AnonymousKeyedByClientIP(t *testing.T) {
	r, _ := newTestRouter(30)

	_, resp := post(t, r, "/api/auth/resend-pin", ``)
	assert.Equal(t, http.StatusOK, resp.Status)

	_, resp = post(t, r, "/api/auth/resend-pin", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)

	_, resp = post(t, r, "/api/auth/resend-pin", `{"userId":"someone-else"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.Status, "a client supplied userId does not open a new cooldown")

	_, resp = postFrom(t, r, "/api/auth/resend-pin", `{}`, "203.0.113.9", "")
	assert.Equal(t, http.StatusOK, resp.Status)
}
