package forwarder

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

const (
	storeURITemplate = "/api/%s/store/"
	maxErrorBodySize = 4 << 10
)

// Client posts ingestion payloads to the store endpoint of a project.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client) error

// WithTimeout bounds each forward request. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
		return nil
	}
}

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client is nil")
		}
		if hc.Timeout <= 0 {
			return fmt.Errorf("http client must have a timeout")
		}
		c.client = hc
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// NewClient creates a forwarder for the ingestion API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse ingest url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("ingest url must use http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("ingest url %q has no host", baseURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}

	c := &Client{
		client:    &http.Client{Transport: transport, Timeout: model.DefaultForwardTimeout},
		baseURL:   strings.TrimRight(u.String(), "/"),
		userAgent: BuildUserAgent(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Timeout returns the bound applied to each request.
func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

// StoreURL returns the endpoint a payload for target is posted to.
func (c *Client) StoreURL(target model.Target) string {
	q := url.Values{}
	q.Set("sentry_key", target.PublicKey)
	return c.baseURL + fmt.Sprintf(storeURITemplate, url.PathEscape(target.ProjectID)) + "?" + q.Encode()
}

// Forward posts payload as JSON. Transport failures and non-2xx responses are
// both returned as *ForwardError. There is no retry.
func (c *Client) Forward(ctx context.Context, target model.Target, payload *model.IngestionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.StoreURL(target), bytes.NewReader(body))
	if err != nil {
		return newForwardError(target, 0, "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return newForwardError(target, 0, "", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newForwardError(target, resp.StatusCode, string(respBody), nil)
	}
	if readErr != nil {
		return newForwardError(target, resp.StatusCode, "", readErr)
	}
	return nil
}
