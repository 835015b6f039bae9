package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
)

// DefaultRender is the render prefix used when none is configured
const DefaultRender = "vi"

// Options configures a Client
type Options struct {
	// Host is the base URL of the application, e.g. https://app.appspot.com
	Host       string
	Render     string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	// HTTPClient replaces the default client; its Jar is replaced when nil.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client is a session against one backend
type Client struct {
	host       string
	render     string
	http       *http.Client
	retries    int
	retryDelay time.Duration
	logger     zerolog.Logger
}

// New creates a client for opts.Host
func New(opts Options) (*Client, error) {
	host := strings.TrimRight(strings.TrimSpace(opts.Host), "/")
	u, err := url.Parse(host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid host URL %q", opts.Host).
			WithDetail("host", opts.Host)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot create cookie jar")
		}
		httpClient.Jar = jar
	}

	render := strings.Trim(opts.Render, "/")
	if render == "" {
		render = DefaultRender
	}

	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}

	return &Client{
		host:       host,
		render:     render,
		http:       httpClient,
		retries:    retries,
		retryDelay: opts.RetryDelay,
		logger:     logging.Component(opts.Logger, "client").With().Str("host", host).Logger(),
	}, nil
}

// Host returns the base URL the client talks to
func (c *Client) Host() string {
	return c.host
}

// endpoint builds a URL below the render prefix
func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, c.render)
	for _, p := range parts {
		escaped = append(escaped, strings.Trim(p, "/"))
	}
	return c.host + "/" + strings.Join(escaped, "/")
}

// rootEndpoint builds a URL at the host root
func (c *Client) rootEndpoint(path string) string {
	return c.host + "/" + strings.TrimLeft(path, "/")
}

// request describes one HTTP call so it can be rebuilt for every attempt
type request struct {
	method      string
	url         string
	query       url.Values
	form        url.Values
	body        []byte
	contentType string
}

func (r request) build(ctx context.Context) (*http.Request, error) {
	target := r.url
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + r.query.Encode()
	}

	var body io.Reader
	contentType := r.contentType
	switch {
	case r.body != nil:
		body = bytes.NewReader(r.body)
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send performs r, retrying transport failures and 5xx answers
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	var lastErr *errors.ViurError
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Dur("delay", c.retryDelay).
				Msg("Retrying request")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		resp, err := c.attempt(ctx, r)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if status, _ := err.Details["status"].(int); status != 0 && status < 500 {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, r request) (*http.Response, *errors.ViurError) {
	req, err := r.build(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot build request").
			WithDetail("url", r.url)
	}

	c.logger.Debug().Str("method", r.method).Str("url", r.url).Msg("Request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSourceUnavailable, "request failed").
			WithDetail("method", r.method).
			WithDetail("url", r.url)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, errors.Newf(errors.ErrSourceUnavailable, "unexpected status %d", resp.StatusCode).
			WithDetail("method", r.method).
			WithDetail("url", r.url).
			WithDetail("status", resp.StatusCode).
			WithDetail("body", strings.TrimSpace(string(snippet)))
	}
	return resp, nil
}

// read performs r and returns the whole response body
func (c *Client) read(ctx context.Context, r request) ([]byte, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSourceUnavailable, "cannot read response").
			WithDetail("url", r.url)
	}
	return body, nil
}

// decode performs r and decodes its JSON answer into v
func (c *Client) decode(ctx context.Context, r request, v any) error {
	body, err := c.read(ctx, r)
	if err != nil {
		return err
	}
	if err := unmarshal(body, v); err != nil {
		return errors.Wrap(err, errors.ErrSourceUnavailable, "malformed JSON answer").
			WithDetail("url", r.url)
	}
	return nil
}

func unmarshal(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}

// statusOf returns the HTTP status attached to err, or 0
func statusOf(err error) int {
	status, _ := errors.GetErrorDetails(err)["status"].(int)
	return status
}

func (c *Client) String() string {
	return fmt.Sprintf("Client(%s/%s)", c.host, c.render)
}
