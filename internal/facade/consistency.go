package facade

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/daglabs/gatewaygo/internal/clock"
)

// ConfirmAfterCreate implements the post-create/cancel consistency lookup
// (spec.md §4.4 "Post-create consistency"): after a successful openOrder or
// cancelOrder, the facade issues a follow-up getOrder and makes up to 5
// lookups with growing sleeps against "order not found" eventual-consistency
// errors, bounded to a few seconds total (spec.md §8 scenario S4).
func ConfirmAfterCreate[T any](ctx context.Context, lookup func(ctx context.Context) (T, error), isNotFound func(error) bool) (T, error) {
	var result T
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.Multiplier = 1.8
	// The four jittered sleeps sum to at most ~3.6s, so this bound never
	// cuts the lookup short of its fifth attempt.
	b.MaxElapsedTime = 4 * time.Second
	attempts := 0

	op := func() error {
		attempts++
		var err error
		result, err = lookup(ctx)
		if err == nil {
			return nil
		}
		if isNotFound(err) && attempts < 5 {
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(op, backoff.WithContext(b, ctx))
	return result, err
}

// AmplifiedSchedule returns the 500ms,500ms,1s,3s,3s,... schedule used by
// the Bitget/KuCoin "order not found immediately after create" eventual
// consistency amplification case (spec.md §4.3 "Failure-signal
// amplification").
func AmplifiedSchedule() func(attempt int) time.Duration {
	schedule := []time.Duration{
		500 * time.Millisecond,
		500 * time.Millisecond,
		1000 * time.Millisecond,
		3000 * time.Millisecond,
	}
	return func(attempt int) time.Duration {
		if attempt < len(schedule) {
			return schedule[attempt]
		}
		return schedule[len(schedule)-1]
	}
}

// Clock re-exported for callers of this package that only need the type
// name locally (avoids an extra import in small provider files).
type Clock = clock.Clock
