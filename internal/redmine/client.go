// Package redmine is a client for the Redmine REST API.
package redmine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/config"
)

// AppVersion is reported in the User-Agent header and by --version.
var AppVersion = "0.1.0"

const (
	apiKeyHeader   = "X-Redmine-API-Key"
	requestTimeout = 30 * time.Second
	connectTimeout = 10 * time.Second
	maxRetryTime   = 30 * time.Second
)

// Options tune a Client. The zero value gives production behavior.
type Options struct {
	DryRun     bool
	HTTPClient *http.Client
	Logger     *zerolog.Logger

	// MaxElapsed bounds the total time spent retrying transient failures.
	MaxElapsed time.Duration
	// InitialInterval is the first backoff delay.
	InitialInterval time.Duration
}

// Client represents a Redmine API client.
type Client struct {
	baseURL         string
	apiKey          string
	http            *http.Client
	log             zerolog.Logger
	dryRun          bool
	maxElapsed      time.Duration
	initialInterval time.Duration
}

// NewClient creates a client for the resolved configuration.
func NewClient(cfg config.Config, opts Options) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(cfg.URL, "/"),
		apiKey:          cfg.APIKey,
		http:            opts.HTTPClient,
		log:             zerolog.Nop(),
		dryRun:          opts.DryRun,
		maxElapsed:      opts.MaxElapsed,
		initialInterval: opts.InitialInterval,
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	if c.http == nil {
		c.http = defaultHTTPClient()
	}
	if c.maxElapsed <= 0 {
		c.maxElapsed = maxRetryTime
	}
	return c
}

func defaultHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	return &http.Client{Timeout: requestTimeout, Transport: transport}
}

// BaseURL returns the server URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// DryRun reports whether requests are simulated.
func (c *Client) DryRun() bool { return c.dryRun }

// notFound names the resource a 404 refers to.
type notFound struct {
	resource string
	id       string
	hint     string
}

type response struct {
	status int
	body   []byte
}

func (c *Client) apiURL(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// get performs a GET request and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, nf *notFound, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, nf, out)
}

// do performs one logical API operation: send with retry, classify the
// status, and decode the body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any, nf *notFound, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return apperr.Validationf("failed to serialize request body: %v", err)
		}
	}

	resp, err := c.send(ctx, method, c.apiURL(path, q), payload)
	if err != nil {
		return err
	}
	if err := classifyStatus(resp.status, resp.body, nf); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return apperr.API(0, fmt.Sprintf("failed to parse response: %v - body: %s", err, resp.body))
	}
	return nil
}

// send executes the request, retrying transient failures with exponential
// backoff until maxElapsed has passed.
func (c *Client) send(ctx context.Context, method, u string, payload []byte) (*response, error) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxElapsed
	if c.initialInterval > 0 {
		b.InitialInterval = c.initialInterval
	}

	attempt := 0
	op := func() (*response, error) {
		attempt++
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return nil, backoff.Permanent(apperr.Network("failed to build request", err))
		}
		req.Header.Set(apiKeyHeader, c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "rdm/"+AppVersion)

		c.log.Debug().Str("method", method).Str("url", u).Int("attempt", attempt).Msg("request")
		resp, err := c.http.Do(req)
		if err != nil {
			nerr := apperr.Network(fmt.Sprintf("request failed: %v", err), err)
			if ctx.Err() == nil && isTransient(err) {
				return nil, nerr
			}
			return nil, backoff.Permanent(nerr)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, backoff.Permanent(apperr.Network("failed to read response", err))
		}
		c.log.Debug().Int("status", resp.StatusCode).Int("bytes", len(data)).Msg("response")

		if retryableStatus(resp.StatusCode) {
			nerr := apperr.Network(fmt.Sprintf("server error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)), nil)
			nerr.Status = resp.StatusCode
			return nil, nerr
		}
		return &response{status: resp.StatusCode, body: data}, nil
	}

	notify := func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Dur("wait", wait).Msg("transient failure, retrying")
	}

	resp, err := backoff.RetryNotifyWithData(op, backoff.WithContext(b, ctx), notify)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Network(err.Error(), err)
	}
	return resp, nil
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// isTransient reports connection and timeout failures.
func isTransient(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}

// classifyStatus maps an HTTP status to the error taxonomy. It returns nil
// for 2xx responses.
func classifyStatus(status int, body []byte, nf *notFound) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		e := apperr.Auth("Invalid API key or unauthorized").
			WithHint("Check your API key with `rdm config show` or set REDMINE_API_KEY.")
		e.Status = status
		return e
	case status == http.StatusForbidden:
		e := apperr.Auth("Access forbidden - check your permissions")
		e.Status = status
		return e
	case status == http.StatusNotFound:
		if nf != nil {
			return apperr.NotFound(nf.resource, nf.id, nf.hint)
		}
		return apperr.API(status, "Resource not found")
	}
	return apperr.API(status, fmt.Sprintf("API request failed: %d %s - %s",
		status, http.StatusText(status), strings.TrimSpace(string(body))))
}

// simulate reports a mutating request without sending it.
func (c *Client) simulate(method, path string, body any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.MarshalIndent(body, "", "  ")
		if err != nil {
			return apperr.Validationf("failed to serialize request body: %v", err)
		}
	}
	c.log.Debug().Str("method", method).Str("path", path).Msg("dry run")
	return apperr.DryRun(method, path, payload)
}
