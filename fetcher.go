package tccs

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may race several remote strategies and return the first
// that succeeds.
type Fetcher interface {
	// Fetch returns the HTML of the page at url.
	// Returns EFETCH when no strategy could retrieve the page.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
