// Package apiclient calls the dashboard's backend API.
//
// Every request resolves against the origin the dashboard is served from plus [BasePath],
// so a Client works the same on every deployment host.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// BasePath prefixes the path of every request a Client makes.
const BasePath = "/api/"

var ErrEmptyOrigin = errors.New("origin has no host")

// An Error is a response from the API with a non-2xx status.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// A Client issues requests to the API.
// A Client is safe for concurrent use; construct one and share it.
type Client struct {
	base *url.URL
	http *http.Client
}

// An Option configures a *Client.
type Option func(*Client)

// WithHTTPClient sets the *http.Client requests are sent with.
// Timeouts, retries and transports are configured on it.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// New constructs a *Client for the API at origin.
// Any path on origin is discarded: requests always go to origin + [BasePath].
func New(origin *url.URL, opts ...Option) *Client {
	c := &Client{
		base: &url.URL{Scheme: origin.Scheme, Host: origin.Host, Path: BasePath},
		http: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Parse constructs a *Client from an origin like "https://dash.example.com".
func Parse(origin string, opts ...Option) (*Client, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parsing origin: %w", err)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyOrigin, origin)
	}

	return New(u, opts...), nil
}

// BaseURL returns the URL every request path is resolved against.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// URL resolves p against the Client's base URL.
// p may carry a query; dot segments never climb above [BasePath].
func (c *Client) URL(p string) *url.URL {
	rel, query, _ := strings.Cut(p, "?")
	clean := path.Clean("/" + rel)
	if strings.HasSuffix(rel, "/") && clean != "/" {
		clean += "/"
	}

	u := *c.base
	u.Path = strings.TrimSuffix(c.base.Path, "/") + clean
	u.RawQuery = query
	return &u
}

// NewRequest constructs an *http.Request for p.
// If body is not nil, it is encoded as JSON.
func (c *Client) NewRequest(ctx context.Context, method, p string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(p).String(), r)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Do sends req, decoding a JSON response into v if v is not nil.
// A non-2xx response returns an *Error.
func (c *Client) Do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return &Error{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       string(b),
		}
	}

	if v == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s %s: %w", req.Method, req.URL, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, p string, v any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, p, nil)
	if err != nil {
		return err
	}

	return c.Do(req, v)
}
