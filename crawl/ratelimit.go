package crawl

import (
	"context"
	"strings"
	"sync"

	tccs "github.com/Trantu1102/NB-TCCS"
	"golang.org/x/time/rate"
)

var _ tccs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces fetches per host with one token bucket each.
// Hosts are compared case-insensitively and without a leading "www.", so
// the publisher's two spellings share a bucket.
type DomainLimiter struct {
	limit rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter allows rps requests per second to each host with bursts
// of up to burst requests. An rps of zero or less disables limiting and a
// burst below 1 is raised to 1.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limit: limit,
		burst: max(burst, 1),
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.bucket(domain).Wait(ctx)
}

func (d *DomainLimiter) bucket(domain string) *rate.Limiter {
	host := strings.TrimPrefix(strings.ToLower(domain), "www.")

	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.hosts[host] = l
	}
	return l
}
