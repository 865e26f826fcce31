package clip

import (
	"context"
	"sync"

	"github.com/mjarosz/clipdown"
	"golang.org/x/time/rate"
)

var _ clipdown.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests with a token bucket per domain.
// Separate domains never wait on one another.
type DomainLimiter struct {
	mu        sync.Mutex
	perDomain map[string]*rate.Limiter
	rps       float64
}

// NewDomainLimiter returns a limiter allowing rps requests per second
// to any one domain. Bursts are not allowed, so requests to the same
// domain are spaced evenly.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		perDomain: make(map[string]*rate.Limiter),
		rps:       rps,
	}
}

// Wait blocks until the domain's bucket has a token or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiterFor(domain).Wait(ctx)
}

func (d *DomainLimiter) limiterFor(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.perDomain[domain]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.perDomain[domain] = l
	}
	return l
}
