package mock

import (
	"context"

	"github.com/mjarosz/clipdown"
)

var _ clipdown.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of clipdown.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
