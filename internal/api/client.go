package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/auth"
	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
)

// Header names and values
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	ContentTypeJSON     = "application/json"
	BearerPrefix        = "Bearer "
	DefaultUserAgent    = "calmkids-app"
)

// MaxResponseBytes is the largest response body the client accepts
const MaxResponseBytes = 8 << 20

// Client talks to the backend API
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenStore
	logger     *zap.Logger
	userAgent  string
	maxBody    int64
	now        func() time.Time
}

// NewClient creates a client for the API at baseURL. The HTTP client has no
// timeout; callers cancel through the request context.
func NewClient(baseURL string, tokens auth.TokenStore, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     logging.OrNop(logger),
		userAgent:  DefaultUserAgent,
		maxBody:    MaxResponseBytes,
		now:        time.Now,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// SetUserAgent sets the User-Agent sent with every request
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL points later requests at a different API
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// GetProfile fetches the signed-in child's profile
func (c *Client) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := c.do(ctx, call{
		op:     OpGetProfile,
		method: http.MethodGet,
		path:   PathProfile,
		auth:   true,
		out:    &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListContent fetches a content library endpoint such as EndpointPDFs and
// returns the response's content list as sent.
func (c *Client) ListContent(ctx context.Context, endpoint string) ([]model.ContentItem, error) {
	if !strings.HasPrefix(endpoint, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	var resp ContentResponse
	err := c.do(ctx, call{
		op:     OpListContent,
		method: http.MethodGet,
		path:   endpoint,
		auth:   true,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, &FetchError{Op: OpListContent, StatusCode: http.StatusOK, Message: msg}
	}
	return resp.Content, nil
}

// Register creates a new account and returns the server's message
func (c *Client) Register(ctx context.Context, req auth.RegisterRequest) (string, error) {
	if err := auth.ValidateRegistration(req); err != nil {
		return "", err
	}
	req.Email = strings.TrimSpace(req.Email)

	var resp MessageResponse
	if err := c.do(ctx, call{op: OpRegister, method: http.MethodPost, path: PathRegister, body: req, out: &resp}); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &FetchError{Op: OpRegister, StatusCode: http.StatusOK, Message: nonEmpty(resp.Text(), "registration failed")}
	}
	return resp.Text(), nil
}

// ForgotPassword asks the server to send a reset link to email
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := auth.ValidateEmail(email); err != nil {
		return "", err
	}

	var resp MessageResponse
	body := forgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := c.do(ctx, call{op: OpForgotPassword, method: http.MethodPost, path: PathForgotPassword, body: body, out: &resp}); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &FetchError{Op: OpForgotPassword, StatusCode: http.StatusOK, Message: nonEmpty(resp.Text(), "could not send reset email")}
	}
	return resp.Text(), nil
}

// ResetPassword sets a new password using the emailed reset token. The
// password pair is validated locally before anything is sent; only a 200
// response counts as success.
func (c *Client) ResetPassword(ctx context.Context, token, email, password, confirm string) (string, error) {
	if err := auth.ValidateResetPassword(password, confirm); err != nil {
		return "", err
	}
	if strings.TrimSpace(token) == "" {
		return "", auth.ErrTokenRequired
	}

	var resp MessageResponse
	body := resetPasswordRequest{Token: strings.TrimSpace(token), Email: strings.TrimSpace(email), Password: password}
	err := c.do(ctx, call{
		op:       OpResetPassword,
		method:   http.MethodPost,
		path:     PathResetPassword,
		body:     body,
		out:      &resp,
		okStatus: func(status int) bool { return status == http.StatusOK },
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// call describes one request
type call struct {
	op       string
	method   string
	path     string
	body     any
	auth     bool
	out      any
	okStatus func(int) bool // defaults to any 2xx
}

// do performs a single request attempt
func (c *Client) do(ctx context.Context, cl call) error {
	requestID := uuid.NewString()
	logger := c.logger.With(
		zap.String("op", cl.op),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.String("request_id", requestID),
	)

	var token string
	if cl.auth {
		t, err := auth.RequireToken(c.tokens, c.now())
		if err != nil {
			logger.Warn("request skipped: no auth token")
			return ErrUnauthenticated
		}
		token = t
	}

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.BaseURL()+cl.path, body)
	if err != nil {
		return &FetchError{Op: cl.op, Message: err.Error(), Err: err}
	}
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderUserAgent, c.userAgent)
	if body != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	if token != "" {
		req.Header.Set(HeaderAuthorization, BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return &FetchError{Op: cl.op, Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	logger = logger.With(zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
	if err != nil {
		logger.Error("reading response failed", zap.Error(err))
		return &FetchError{Op: cl.op, StatusCode: resp.StatusCode, Message: transportMessage(err), Err: err}
	}
	if int64(len(raw)) > c.maxBody {
		logger.Error("response too large", zap.Int64("limit", c.maxBody))
		return &FetchError{Op: cl.op, StatusCode: resp.StatusCode, Message: "response from server is too large", Err: ErrResponseTooLarge}
	}

	ok := cl.okStatus
	if ok == nil {
		ok = isSuccess
	}
	if !ok(resp.StatusCode) {
		msg := messageFromBody(raw)
		if msg == "" {
			msg = nonEmpty(http.StatusText(resp.StatusCode), "unexpected response")
		}
		logger.Warn("request rejected", zap.String("message", msg))
		return &FetchError{Op: cl.op, StatusCode: resp.StatusCode, Message: msg}
	}

	if cl.out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, cl.out); err != nil {
			logger.Error("decoding response failed", zap.Error(err))
			return &FetchError{Op: cl.op, StatusCode: resp.StatusCode, Message: "invalid response from server", Err: err}
		}
	}

	logger.Debug("request completed")
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// messageFromBody pulls "message" or "error" out of a JSON error body
func messageFromBody(raw []byte) string {
	var body MessageResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Text())
}

// transportMessage turns a transport error into readable text
func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return "network error: " + err.Error()
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
