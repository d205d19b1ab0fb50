package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/tanchung/sport-store/cmd/config"
	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/utils/errors"
	"github.com/tanchung/sport-store/utils/logger"
	"go.uber.org/zap"
)

// TokenSource resolves the backend bearer token for the session carried in
// ctx. Refresh must be single-flight per session: concurrent 401s trigger
// one refresh call and the rest wait for its result.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context, stale string) (string, error)
}

// Client is the one HTTP boundary to the remote commerce backend. Every
// gateway repository goes through it; nothing else issues backend calls.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Envelope is the backend's uniform response wrapper.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		http: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
	}
}

// SetTokenSource wires the session token provider after construction; the
// token source itself depends on this client for login and refresh calls.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

type requestOptions struct {
	public bool
}

type Option func(*requestOptions)

// Public marks a request as not requiring a bearer token.
func Public() Option {
	return func(o *requestOptions) {
		o.public = true
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts ...Option) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...Option) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts ...Option) error {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	token := ""
	if !o.public {
		if c.tokens == nil {
			return errors.SetCustomError(constant.ErrUnauthorize)
		}
		var err error
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return err
		}
	}

	resp, err := c.send(ctx, method, path, query, body, token)
	if err != nil {
		return err
	}

	// A 401 on an authenticated call triggers exactly one refresh attempt;
	// if the retried call is rejected again the session is gone.
	if resp.StatusCode == http.StatusUnauthorized && !o.public {
		resp.Body.Close()
		token, err = c.tokens.Refresh(ctx, token)
		if err != nil {
			return errors.SetCustomError(constant.ErrSessionExpired)
		}
		resp, err = c.send(ctx, method, path, query, body, token)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			return errors.SetCustomError(constant.ErrSessionExpired)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return errors.SetCustomErrorWithMessage(constant.ErrBackend, resp.Status)
		}
		return errors.SetCustomError(constant.ErrInternal)
	}

	// Application-level failure: any envelope code other than 200 carries
	// the backend's own message to the caller.
	if env.Code != http.StatusOK {
		if env.Code == http.StatusNotFound {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		return errors.SetCustomErrorWithMessage(constant.ErrBackend, env.Message)
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			logger.Error("[backend] decode result", zap.String("path", path), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, token string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		payload = bytes.NewReader(b)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("[backend] request failed", zap.String("method", method), zap.String("path", path), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrBackendUnreachable)
	}
	return resp, nil
}
