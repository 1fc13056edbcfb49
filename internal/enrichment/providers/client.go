package providers

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
	"unicode/utf8"

	"golang.org/x/time/rate"
)

const (
	maxResponseBytes = 1 << 20
	maxSnippetBytes  = 200
	defaultTimeout   = 10 * time.Second
)

// Config is the per-adapter configuration.
type Config struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	RateLimitRPS float64 // <= 0 disables client-side throttling
}

// WithDefaults fills empty fields from an adapter's constants.
func (c Config) WithDefaults(baseURL string, timeout time.Duration) Config {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = baseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = timeout
	}
	return c
}

// AuthStyle selects how the API key is presented.
type AuthStyle int

const (
	AuthBearer   AuthStyle = iota // Authorization: Bearer <key>
	AuthQueryKey                  // ?api_key=<key>
)

// Client performs the single outbound call each adapter operation makes and
// maps every failure onto a ProviderError.
type Client struct {
	providerID string
	cfg        Config
	auth       AuthStyle
	queryParam string
	httpClient *http.Client
	limiter    *rate.Limiter
	headers    http.Header
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithQueryKeyAuth sends the API key as the named query parameter.
func WithQueryKeyAuth(param string) ClientOption {
	return func(c *Client) {
		c.auth = AuthQueryKey
		c.queryParam = param
	}
}

// WithHeader sets a static header on every request, replacing any default.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

func NewClient(providerID string, cfg Config, opts ...ClientOption) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	c := &Client{
		providerID: providerID,
		cfg:        cfg,
		auth:       AuthBearer,
		httpClient: &http.Client{},
		headers:    make(http.Header),
	}
	if cfg.RateLimitRPS > 0 {
		burst := int(cfg.RateLimitRPS)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// GetJSON issues GET base+path?query and decodes a 2xx body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// PostJSON issues POST base+path with body encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !c.Configured() {
		return NotConfigured(c.providerID)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return NewProviderError(ErrorTimeout, c.providerID, "rate limiter wait exceeded deadline", nil)
		}
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return NewProviderError(ErrorInternal, c.providerID, "build request", c.scrub(err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return NewProviderError(ErrorTimeout, c.providerID, fmt.Sprintf("no response within %s", c.cfg.Timeout), nil)
		}
		return NewProviderError(ErrorProviderOutage, c.providerID, "request failed", c.scrub(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return NewProviderError(ErrorTimeout, c.providerID, "response body read timed out", nil)
		}
		return NewProviderError(ErrorProviderOutage, c.providerID, "read response body", c.scrub(err))
	}

	if perr := c.classify(resp.StatusCode, raw); perr != nil {
		return perr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return NewProviderError(ErrorBadData, c.providerID, "decode response", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u, err := url.Parse(c.cfg.BaseURL + path)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if c.auth == AuthQueryKey {
		q.Set(c.queryParam, c.cfg.APIKey)
	}
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth == AuthBearer {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	return req, nil
}

// classify maps a status code onto the error taxonomy. 202 is treated as a
// failure: providers use it for lookups queued for later delivery.
func (c *Client) classify(status int, body []byte) *ProviderError {
	switch {
	case status == http.StatusAccepted:
		return NewProviderError(ErrorProcessing, c.providerID, "lookup queued, result not yet available", nil)
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewProviderError(ErrorAuthentication, c.providerID, fmt.Sprintf("status %d", status), nil)
	case status == http.StatusNotFound:
		return NewProviderError(ErrorNotFound, c.providerID, "no record", nil)
	case status == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, c.providerID, "throttled by provider", nil)
	default:
		msg := fmt.Sprintf("status %d", status)
		if s := c.snippet(body); s != "" {
			msg += ": " + s
		}
		return NewProviderError(ErrorProviderOutage, c.providerID, msg, nil)
	}
}

func (c *Client) snippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > maxSnippetBytes {
		cut := maxSnippetBytes
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return redactValue(s, c.cfg.APIKey)
}

// scrub strips the API key from transport errors, which often echo the URL.
func (c *Client) scrub(err error) error {
	return errors.New(redactValue(err.Error(), c.cfg.APIKey))
}
