// Package host waits for capabilities of the media host to come up.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autoskip-cli/autoskip/log"
	"github.com/samber/mo"
)

// ErrUnavailable is returned when a probe never succeeded within its attempts.
var ErrUnavailable = errors.New("host capability unavailable")

// Probe checks a capability once.
type Probe[T any] func(ctx context.Context) (T, error)

// Await runs probe up to attempts times, sleeping delay before each attempt.
// The wait ends early when ctx is done.
func Await[T any](ctx context.Context, probe Probe[T], attempts int, delay time.Duration) mo.Result[T] {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return mo.Err[T](fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err()))
		case <-timer.C:
		}

		value, err := probe(ctx)
		if err == nil {
			log.Debugf("host capability ready after %d attempt(s)", i+1)
			return mo.Ok(value)
		}
		lastErr = err
	}

	log.Warnf("host capability still unavailable after %d attempts: %v", attempts, lastErr)
	if lastErr == nil {
		return mo.Err[T](ErrUnavailable)
	}
	return mo.Err[T](fmt.Errorf("%w after %d attempts: %w", ErrUnavailable, attempts, lastErr))
}
