package cerebras

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "0.1.0"

const userAgent = "cerebras-go/" + Version

// Client talks to the Cerebras Inference API. It is safe for concurrent use.
// The zero value is not usable; construct with NewClient, NewClientWithConfig
// or FromEnv.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client with the provided API key and default
// configuration.
func NewClient(apiKey string) *Client {
	return &Client{
		cfg:        DefaultConfig().WithAPIKey(apiKey),
		httpClient: http.DefaultClient,
	}
}

// NewClientWithConfig creates a Client from an explicit configuration.
// The configuration is validated and copied; later mutations of cfg do not
// affect the client.
func NewClientWithConfig(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		cfg:        cfg,
		httpClient: hc,
		log:        cfg.Logger,
	}, nil
}

// FromEnv creates a Client configured from CEREBRAS_* environment variables.
func FromEnv() (*Client, error) {
	return NewClientWithConfig(ConfigFromEnv())
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// ChatCompletion sends a non-streaming chat completion request.
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletion, error) {
	req.Stream = false
	if req.Model == "" {
		req.Model = c.cfg.Model
	}

	var out ChatCompletion
	if err := c.postJSON(ctx, "chat", "/chat/completions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Completion sends a non-streaming text completion request.
func (c *Client) Completion(ctx context.Context, req CompletionRequest) (*Completion, error) {
	req.Stream = false
	if req.Model == "" {
		req.Model = c.cfg.Model
	}

	var out Completion
	if err := c.postJSON(ctx, "completion", "/completions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatCompletionStream sends a streaming chat completion request. The caller
// owns the returned stream and must exhaust it or call Close.
func (c *Client) ChatCompletionStream(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionStream, error) {
	req.Stream = true
	if req.Model == "" {
		req.Model = c.cfg.Model
	}

	body, err := c.postStream(ctx, "chat", "/chat/completions", req)
	if err != nil {
		return nil, err
	}
	return newChatCompletionStream(body), nil
}

// CompletionStream sends a streaming text completion request. The caller owns
// the returned stream and must exhaust it or call Close.
func (c *Client) CompletionStream(ctx context.Context, req CompletionRequest) (*CompletionStream, error) {
	req.Stream = true
	if req.Model == "" {
		req.Model = c.cfg.Model
	}

	body, err := c.postStream(ctx, "completion", "/completions", req)
	if err != nil {
		return nil, err
	}
	return newCompletionStream(body), nil
}

// ListModels returns the models available to the account.
func (c *Client) ListModels(ctx context.Context) (*ModelList, error) {
	var out ModelList
	if err := c.getJSON(ctx, "models", "/models", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetModel retrieves metadata for a single model.
func (c *Client) GetModel(ctx context.Context, id string) (*Model, error) {
	var out Model
	if err := c.getJSON(ctx, "models", "/models/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// newRequest builds an authenticated request for the given API path.
// Configuration faults surface here, before any connection is made.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if c.cfg.APIKey == "" {
		return nil, &Error{Op: "config", Message: "set APIKey or CEREBRAS_API_KEY", Err: ErrMissingAPIKey}
	}
	u := strings.TrimSuffix(c.cfg.BaseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// postJSON performs a non-streaming POST and decodes the 2xx response.
// The configured timeout applies.
func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.debugLog("request", "op", op, "method", req.Method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// getJSON performs a GET and decodes the 2xx response.
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	c.debugLog("request", "op", op, "method", req.Method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// postStream performs a streaming POST and hands the open body to the caller.
// The configured timeout does not apply; stream lifetime is governed by ctx.
func (c *Client) postStream(ctx context.Context, op, path string, in any) (io.ReadCloser, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	c.debugLog("stream request", "op", op, "method", req.Method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errorFromResponse(op, resp)
		resp.Body.Close()
		return nil, apiErr
	}
	return resp.Body, nil
}

// debugLog emits a debug record when a logger is configured.
func (c *Client) debugLog(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}
