// Package http provides HTTP-based implementations of tccs.Fetcher: a direct
// fetcher and a fetcher that races several proxy strategies.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for one HTTP attempt.
const DefaultFetchTimeout = 8 * time.Second

// maxBodyBytes caps a page download; article pages are far smaller.
const maxBodyBytes = 16 << 20

// DefaultUserAgent identifies requests made by the fetchers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; tccs/1.0; +https://xaydungdang.org.vn)"

// Ensure Fetcher implements tccs.Fetcher at compile time.
var _ tccs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Response bodies are decoded to UTF-8 using the declared charset.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (8s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url, adding https:// when the scheme is
// missing. Failures are EFETCH errors, except cancellation of ctx which is
// returned as is.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, f.client, NormalizeTarget(url), f.userAgent)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", tccs.Errorf(tccs.EFETCH, "cannot reach page: %v", err)
	}
	return string(body), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

// get performs a GET request and returns the UTF-8 decoded body.
func get(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
