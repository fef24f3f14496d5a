// Package fetch retrieves source audio bytes over HTTP(S) or from local
// file:// locators.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/simonhull/dawmark/internal/types"
)

// DefaultMaxSize caps a full fetch. Larger bodies fail rather than
// exhausting memory.
const DefaultMaxSize = 2 << 30

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "dawmark"

var errTooLarge = errors.New("response exceeds size limit")

// Client fetches source audio. The zero value is not usable; call New.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxSize    int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxSize limits how many bytes Fetch accepts.
func WithMaxSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// New creates a Client. Timeouts come from the caller's context; the
// default *http.Client only bounds idle connections.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		userAgent: DefaultUserAgent,
		maxSize:   DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the complete resource. Failures, including context
// deadlines, are reported as *types.FetchError.
func (c *Client) Fetch(ctx context.Context, locator string) ([]byte, error) {
	data, err := c.get(ctx, locator, -1, -1)
	if err != nil {
		return nil, &types.FetchError{URL: Redact(locator), Err: err}
	}
	return data, nil
}

// FetchRange returns up to length bytes starting at offset, using an HTTP
// Range request. Servers that ignore the range are handled by truncating
// the full response.
func (c *Client) FetchRange(ctx context.Context, locator string, offset, length int64) ([]byte, error) {
	if offset < 0 || length <= 0 {
		return nil, &types.FetchError{URL: Redact(locator), Err: fmt.Errorf("invalid range %d+%d", offset, length)}
	}
	data, err := c.get(ctx, locator, offset, length)
	if err != nil {
		return nil, &types.FetchError{URL: Redact(locator), Err: err}
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, locator string, offset, length int64) ([]byte, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "http", "https":
	case "file":
		return readFile(ctx, u.Path, offset, length, c.maxSize)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if length > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+length-1))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = Redact(ue.URL)
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPartialContent && length > 0:
		return io.ReadAll(io.LimitReader(resp.Body, length))
	case resp.StatusCode == http.StatusOK && length > 0:
		if _, err := io.CopyN(io.Discard, resp.Body, offset); err != nil {
			return nil, err
		}
		return io.ReadAll(io.LimitReader(resp.Body, length))
	case resp.StatusCode == http.StatusOK:
		return readLimited(resp.Body, c.maxSize)
	default:
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errTooLarge
	}
	return data, nil
}

func readFile(ctx context.Context, name string, offset, length, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if length > 0 {
		buf := make([]byte, length)
		n, err := f.ReadAt(buf, offset)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return buf[:n], nil
	}
	return readLimited(f, limit)
}

// Redact drops the query string so signatures never reach logs or errors.
func Redact(locator string) string {
	u, err := url.Parse(locator)
	if err != nil {
		return "<invalid url>"
	}
	if u.RawQuery != "" {
		u.RawQuery = "REDACTED"
	}
	u.Fragment = ""
	u.User = nil
	return u.String()
}
