package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// DefaultMinBodyLength is the shortest response accepted as a page.
// Proxies answer blocked or missing pages with short stubs.
const DefaultMinBodyLength = 500

// Ensure ProxyFetcher implements tccs.Fetcher at compile time.
var _ tccs.Fetcher = (*ProxyFetcher)(nil)

// Strategy is one route to a page, usually through a public CORS proxy.
type Strategy struct {
	Name string

	// URL returns the request URL for the target page.
	URL func(target string) string

	// Parse extracts the page HTML from the response body.
	// The body is used as-is when Parse is nil.
	Parse func(body []byte) (string, error)

	// Fetcher, when set, retrieves the page itself instead of a GET of URL.
	Fetcher tccs.Fetcher
}

// Direct fetches the page without a proxy.
func Direct() Strategy {
	return Strategy{
		Name: "Direct",
		URL:  func(target string) string { return target },
	}
}

// CorsProxy routes through corsproxy.io.
func CorsProxy() Strategy {
	return Strategy{
		Name: "CorsProxy.io",
		URL: func(target string) string {
			return "https://corsproxy.io/?" + url.QueryEscape(target)
		},
	}
}

// AllOrigins routes through api.allorigins.win, which wraps the page in JSON.
func AllOrigins() Strategy {
	return Strategy{
		Name: "AllOrigins",
		URL: func(target string) string {
			return "https://api.allorigins.win/get?url=" + url.QueryEscape(target) +
				"&timestamp=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
		},
		Parse: func(body []byte) (string, error) {
			var data struct {
				Contents string `json:"contents"`
			}
			if err := json.Unmarshal(body, &data); err != nil {
				return "", err
			}
			return data.Contents, nil
		},
	}
}

// CodeTabs routes through api.codetabs.com.
func CodeTabs() Strategy {
	return Strategy{
		Name: "CodeTabs",
		URL: func(target string) string {
			return "https://api.codetabs.com/v1/proxy?quest=" + url.QueryEscape(target)
		},
	}
}

// TemplateStrategy builds a strategy from a URL template in which "{url}"
// is replaced by the escaped target, e.g. "https://proxy.local/?u={url}".
func TemplateStrategy(name, template string) Strategy {
	return Strategy{
		Name: name,
		URL: func(target string) string {
			return strings.ReplaceAll(template, "{url}", url.QueryEscape(target))
		},
	}
}

// StrategyFromFetcher adapts a Fetcher, such as a headless browser, into a
// strategy.
func StrategyFromFetcher(name string, f tccs.Fetcher) Strategy {
	return Strategy{Name: name, Fetcher: f}
}

// DefaultStrategies returns the public proxies tried by default.
func DefaultStrategies() []Strategy {
	return []Strategy{CorsProxy(), AllOrigins(), CodeTabs()}
}

// ProxyFetcher races all strategies for a page and returns the first
// response that succeeds. Losing attempts are cancelled.
type ProxyFetcher struct {
	client     *http.Client
	strategies []Strategy
	timeout    time.Duration
	minBody    int
	userAgent  string
}

// ProxyOption configures a ProxyFetcher.
type ProxyOption func(*ProxyFetcher)

// WithStrategies replaces the default strategies.
func WithStrategies(s ...Strategy) ProxyOption {
	return func(f *ProxyFetcher) {
		f.strategies = s
	}
}

// WithAttemptTimeout bounds each strategy attempt.
// Defaults to DefaultFetchTimeout (8s).
func WithAttemptTimeout(d time.Duration) ProxyOption {
	return func(f *ProxyFetcher) {
		f.timeout = d
	}
}

// WithMinBodyLength sets the shortest accepted page, in characters.
func WithMinBodyLength(n int) ProxyOption {
	return func(f *ProxyFetcher) {
		f.minBody = n
	}
}

// WithHTTPClient sets the client used for strategy requests.
func WithHTTPClient(c *http.Client) ProxyOption {
	return func(f *ProxyFetcher) {
		f.client = c
	}
}

// NewProxyFetcher creates a ProxyFetcher using DefaultStrategies unless
// overridden.
func NewProxyFetcher(opts ...ProxyOption) *ProxyFetcher {
	f := &ProxyFetcher{
		client:     &http.Client{},
		strategies: DefaultStrategies(),
		timeout:    DefaultFetchTimeout,
		minBody:    DefaultMinBodyLength,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NormalizeTarget trims rawURL and adds an https scheme when it has none.
func NormalizeTarget(rawURL string) string {
	target := strings.TrimSpace(rawURL)
	if !strings.HasPrefix(target, "http") {
		target = "https://" + target
	}
	return target
}

// Fetch returns the first page any strategy retrieves. When every strategy
// fails it returns EFETCH listing each strategy's error in strategy order.
func (f *ProxyFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if len(f.strategies) == 0 {
		return "", tccs.Errorf(tccs.EINVALID, "no fetch strategies configured")
	}
	target := NormalizeTarget(rawURL)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		index int
		html  string
		err   error
	}
	results := make(chan result, len(f.strategies))
	for i, s := range f.strategies {
		go func() {
			html, err := f.attempt(ctx, s, target)
			results <- result{index: i, html: html, err: err}
		}()
	}

	errs := make([]string, len(f.strategies))
	for range f.strategies {
		r := <-results
		if r.err == nil {
			return r.html, nil
		}
		errs[r.index] = fmt.Sprintf("%s: %v", f.strategies[r.index].Name, r.err)
	}
	return "", tccs.Errorf(tccs.EFETCH, "cannot reach page: %s", strings.Join(errs, "; "))
}

func (f *ProxyFetcher) attempt(ctx context.Context, s Strategy, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var html string
	if s.Fetcher != nil {
		var err error
		if html, err = s.Fetcher.Fetch(ctx, target); err != nil {
			return "", err
		}
	} else {
		if s.URL == nil {
			return "", errors.New("strategy has no URL")
		}
		body, err := get(ctx, f.client, s.URL(target), f.userAgent)
		if err != nil {
			return "", err
		}
		if s.Parse == nil {
			html = string(body)
		} else if html, err = s.Parse(body); err != nil {
			return "", err
		}
	}

	if utf8.RuneCountInString(html) <= f.minBody {
		return "", errors.New("response too short or empty")
	}
	return html, nil
}

// Close closes any strategy fetchers.
func (f *ProxyFetcher) Close() error {
	var errs []error
	for _, s := range f.strategies {
		if s.Fetcher != nil {
			errs = append(errs, s.Fetcher.Close())
		}
	}
	return errors.Join(errs...)
}
