// Package api is the gateway to the planner's REST API. Every call takes the
// caller's token explicitly and returns typed results or an *Error; the client
// keeps no session state of its own.
package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"tableflip.dev/willow/pkg/planner"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Options configure a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Logger    *zap.Logger
	Transport http.RoundTripper
}

type Client struct {
	base      string
	timeout   time.Duration
	transport http.RoundTripper
	log       *zap.Logger
}

// New validates the base URL and builds a Client.
func New(o Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(o.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base url %q must be http or https", o.BaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api: base url %q has no host", o.BaseURL)
	}
	c := &Client{
		base:      strings.TrimRight(u.String(), "/"),
		timeout:   o.Timeout,
		transport: o.Transport,
		log:       o.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.transport == nil {
		c.transport = http.DefaultTransport
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c, nil
}

// BaseURL is the API root requests are issued against.
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) httpClient(token string) *http.Client {
	rt := c.transport
	if token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.transport,
		}
	}
	return &http.Client{Transport: rt, Timeout: c.timeout}
}

// do issues one request. Payloads are validated before anything is sent.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, in, out any) error {
	op := method + " " + path
	var body io.Reader
	if in != nil {
		if err := planner.Validate(in); err != nil {
			return invalid(op, err)
		}
		b, err := json.Marshal(in)
		if err != nil {
			return invalid(op, err)
		}
		body = bytes.NewReader(b)
	}

	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &Error{Op: op, Kind: NetworkFailure, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient(token).Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return &Error{Op: op, Kind: NetworkFailure, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.log.Debug("request",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))
	if err != nil {
		return &Error{Op: op, Kind: NetworkFailure, Status: resp.StatusCode, RequestID: requestID, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classify(op, resp.StatusCode, data, requestID)
		c.log.Info("request rejected",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.Stringer("kind", apiErr.Kind))
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Kind: ServerError, Status: resp.StatusCode, RequestID: requestID, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// list decodes a collection endpoint. A body that is not a JSON array yields
// an empty list rather than an error.
func list[T any](ctx context.Context, c *Client, token, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}
	out := make([]T, 0)
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, &Error{Op: http.MethodGet + " " + path, Kind: ServerError, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

func itemPath(collection string, id int) string {
	return fmt.Sprintf("%s%d/", collection, id)
}

// ErrNoToken is returned when the server accepted credentials but issued no
// access token.
var ErrNoToken = errors.New("api: no access token in response")
