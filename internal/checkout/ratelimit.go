package checkout

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
)

type orderCounter interface {
	CountOrdersSince(ctx context.Context, customerPhone string, since time.Time) (int64, error)
}

// rateLimiter gates order submission on the count of recent orders for the
// same phone inside a trailing window.
type rateLimiter struct {
	counter orderCounter
	window  time.Duration
	max     int
	now     func() time.Time
}

func newRateLimiter(counter orderCounter, window time.Duration, max int) (*rateLimiter, error) {
	if counter == nil {
		return nil, fmt.Errorf("order counter required")
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive")
	}
	if max <= 0 {
		return nil, fmt.Errorf("rate limit max must be positive")
	}
	return &rateLimiter{counter: counter, window: window, max: max, now: time.Now}, nil
}

// Allow reports whether the phone may place another order. A failed count
// query fails the whole check: the limiter is the only abuse protection, so
// it never defaults to permissive.
func (r *rateLimiter) Allow(ctx context.Context, customerPhone string) (bool, error) {
	since := r.now().Add(-r.window)
	count, err := r.counter.CountOrdersSince(ctx, customerPhone, since)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check failed")
	}
	return count < int64(r.max), nil
}
