package erpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

type tokenCtxKey struct{}

// WithToken attaches a bearer token to the context. Every request issued
// with that context is decorated with an Authorization header.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

// UnauthorizedHook is invoked whenever the backend answers 401. Making the
// hook idempotent (one logout per session no matter how many requests fail
// at once) is the hook owner's job; the session manager provides that.
type UnauthorizedHook func(ctx context.Context)

// Client is the portal's only HTTP surface towards the ERP backend. It
// decorates requests with the bearer token from the context, unwraps the
// {success, data} envelope and normalizes every failure into *APIError.
type Client struct {
	baseURL        string
	http           *http.Client
	onUnauthorized UnauthorizedHook
}

// Options tune transport behaviour.
type Options struct {
	Timeout  time.Duration
	RetryMax int
}

// NewClient builds a Client for the given backend base URL. GETs are retried
// on transport failures and 5xx responses; mutating verbs are never retried,
// so a flaky create cannot be applied twice.
func NewClient(baseURL string, opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.Logger = nil
	// When retries run out, hand back the last response instead of a bare
	// error; normalization below still needs its status and body.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.Request != nil && resp.Request.Method != http.MethodGet {
			return false, nil
		}
		if err != nil || (resp != nil && resp.StatusCode >= http.StatusInternalServerError) {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}

	return &Client{
		baseURL: baseURL,
		http:    retryClient.StandardClient(),
	}
}

// OnUnauthorized registers the hook fired on 401 responses.
func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorBody struct {
	Message   string            `json:"message"`
	ErrorCode string            `json:"error_code"`
	Details   map[string]string `json:"details"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{
			Message: defaultErrorMessage,
			Code:    CodeNetworkError,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			Message: defaultErrorMessage,
			Code:    CodeNetworkError,
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return c.normalizeError(resp.StatusCode, raw, authenticationFailed, CodeAuthentication)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.normalizeError(resp.StatusCode, raw, defaultErrorMessage, CodeNetworkError)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	// A {success: true, data} body carries its logical payload in data;
	// anything else is returned as-is.
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && *env.Success && env.Data != nil {
		raw = env.Data
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) normalizeError(status int, raw []byte, fallbackMessage, fallbackCode string) error {
	apiErr := &APIError{
		Message: fallbackMessage,
		Code:    fallbackCode,
		Status:  status,
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		if eb.Message != "" {
			apiErr.Message = eb.Message
		}
		if eb.ErrorCode != "" {
			apiErr.Code = eb.ErrorCode
		}
		apiErr.Details = eb.Details
	}

	log.Debug().Int("status", status).Str("code", apiErr.Code).Msg("erp api error")
	return apiErr
}
