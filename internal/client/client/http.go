package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/google/uuid"
)

// DefaultTimeout bounds connect plus response time when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Config configures an HTTPClient.
type Config struct {
	// BaseURL is prefixed to every request path, e.g. "http://localhost:3000".
	BaseURL string
	// Timeout applies to each request as a whole. Zero means DefaultTimeout.
	Timeout time.Duration
	// Credentials supplies the bearer token. Nil disables authorization.
	Credentials CredentialProvider
	// HTTPClient overrides the underlying client; its Timeout is left alone.
	HTTPClient *http.Client
	// Logger receives one Debug record per request. Nil means logging.Nop().
	Logger logging.Logger
}

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialProvider
	logger      logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// New validates cfg and builds an HTTPClient.
func New(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: base URL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: base URL %q must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var logger logging.Logger = logging.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger
	}

	return &HTTPClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		credentials: cfg.Credentials,
		logger:      logger.With("component", "transport"),
	}, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, params url.Values, out any, opts ...RequestOption) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts)
}

// errorBody is the JSON shape of an API error response.
type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, opts []RequestOption) error {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return unexpected(fmt.Errorf("encode request body: %w", err))
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return unexpected(fmt.Errorf("create request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !o.unauthenticated && c.credentials != nil {
		token, err := c.credentials.Token(ctx)
		if err != nil {
			return unexpected(fmt.Errorf("read credential: %w", err))
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &common.APIError{Status: common.StatusUnknown, Message: common.MsgNetworkError, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &common.APIError{Status: common.StatusUnknown, Message: common.MsgNetworkError, Err: err}
	}

	c.logger.Debug(ctx, "request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return unexpected(fmt.Errorf("decode response body: %w", err))
	}
	return nil
}

// responseError builds the APIError for a non-2xx response. The body message
// wins; otherwise the transport's own description of the status is used.
func responseError(status int, payload []byte) *common.APIError {
	var eb errorBody
	if err := json.Unmarshal(payload, &eb); err == nil && strings.TrimSpace(eb.Message) != "" {
		return &common.APIError{Status: status, Message: eb.Message}
	}
	return &common.APIError{Status: status, Message: statusMessage(status)}
}

func statusMessage(status int) string {
	return fmt.Sprintf("request failed with status code %d", status)
}

func unexpected(err error) *common.APIError {
	return &common.APIError{Status: common.StatusUnknown, Message: common.MsgUnexpectedError, Err: err}
}
