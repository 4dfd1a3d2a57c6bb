// File: internal/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/config"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of an upstream reply is buffered.
const maxBodyBytes = 4 << 20

// ErrResponseTooLarge is reported when an upstream reply exceeds maxBodyBytes.
var ErrResponseTooLarge = errors.New("upstream response too large")

// Call describes exactly one outbound request.
type Call struct {
	Method    string
	Path      string      // relative to the configured base URL
	Body      interface{} // marshalled as JSON when non-nil
	Token     string      // sent as "Authorization: Bearer <token>" when non-empty
	RequestID string
}

// Result is the raw outcome of a Call. Err is set only for transport level failures.
type Result struct {
	StatusCode int
	Body       []byte
	Err        error
}

// Invoker performs upstream calls. *Client is the production implementation.
type Invoker interface {
	Do(ctx context.Context, call Call) Result
}

// Client forwards JSON requests to the external REST service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient builds a client bound to UPSTREAM_BASE_URL with UPSTREAM_TIMEOUT_SECONDS applied.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: cfg.UpstreamTimeout}, cfg.UpstreamBaseURL, logger)
}

// NewClientWithHTTP lets tests point the client at an httptest server.
func NewClientWithHTTP(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("UpstreamClient"),
	}
}

// Do sends call and buffers the whole reply. It never returns a nil-status Result without Err.
func (c *Client) Do(ctx context.Context, call Call) Result {
	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return Result{Err: fmt.Errorf("failed to marshal upstream payload: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	url := c.baseURL + call.Path
	req, err := http.NewRequestWithContext(ctx, call.Method, url, body)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to create upstream request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if call.Token != "" {
		req.Header.Set(common.AuthorizationHeader, common.AuthorizationTypeBearer+" "+call.Token)
	}
	if call.RequestID == "" {
		call.RequestID = requestIDFrom(ctx)
	}
	if call.RequestID != "" {
		req.Header.Set(common.RequestIDHeader, call.RequestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Upstream request failed",
			zap.String("method", call.Method),
			zap.String("path", call.Path),
			zap.Error(err),
		)
		return Result{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		c.logger.Warn("Failed to read upstream response", zap.String("path", call.Path), zap.Error(err))
		return Result{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read upstream response: %w", err)}
	}
	if len(data) > maxBodyBytes {
		c.logger.Warn("Upstream response exceeds size limit",
			zap.String("path", call.Path),
			zap.Int("limit_bytes", maxBodyBytes),
		)
		return Result{StatusCode: resp.StatusCode, Err: fmt.Errorf("%w (limit %d bytes)", ErrResponseTooLarge, maxBodyBytes)}
	}

	c.logger.Debug("Upstream request completed",
		zap.String("method", call.Method),
		zap.String("path", call.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", call.RequestID),
	)
	return Result{StatusCode: resp.StatusCode, Body: data}
}

var _ Invoker = (*Client)(nil)

type requestIDKey struct{}

// WithRequestID attaches the caller's request ID so Do can forward it upstream.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
