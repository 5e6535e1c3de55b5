// Package facade implements the generic "withRetry" combinator described in
// spec.md §9: every provider method is a pure "issue one attempt" function
// wrapped by Dispatch, which owns the governor-wait loop, the TimeProfile
// stamping, and the retry-classifier loop (spec.md component C6, §4.4 steps
// 3-6).
package facade

import (
	"context"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// DefaultTimeout is the implicit per-call deadline (spec.md §5).
const DefaultTimeout = 5 * time.Minute

// Deps bundles everything one Dispatch call needs from its caller.
type Deps struct {
	Governor   governor.Governor
	Classifier *retryclassifier.Classifier
	Clock      clock.Clock
	Timeout    time.Duration // 0 means DefaultTimeout
	Endpoint   string
	Kind       governor.Kind
	Weight     int
}

func (d Deps) timeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}

// Dispatch runs attempt under the governor-wait / retry-classify loop and
// returns a sealed Result. attempt must be a pure "issue one HTTP call and
// decode its response" function; Dispatch handles everything else.
func Dispatch[T any](ctx context.Context, deps Deps, attempt func(ctx context.Context) (T, error)) types.Result[T] {
	log := obs.Logger(obs.SubsystemFacade)
	tp := types.NewTimeProfile(deps.Clock.Now())
	timeout := deps.timeout()
	var queueWaitTotal time.Duration

	for {
		tp.StampQueueStart(deps.Clock.Now())
		for {
			wait, err := deps.Governor.Check(ctx, deps.Endpoint, deps.Kind, deps.Weight)
			if err != nil {
				return fail[T](deps, tp, err.Error())
			}
			if wait == 0 {
				break
			}
			queueWaitTotal += wait
			if queueWaitTotal >= timeout {
				log.Warnf("%s: queue wait %s exceeded timeout %s", deps.Endpoint, queueWaitTotal, timeout)
				return fail[T](deps, tp, "Response timeout")
			}
			if err := deps.Clock.Sleep(ctx, wait); err != nil {
				return fail[T](deps, tp, "Response timeout")
			}
		}
		tp.StampQueueEnd(deps.Clock.Now())

		tp.StampExchangeStart(deps.Clock.Now())
		data, err := attempt(ctx)
		tp.StampExchangeEnd(deps.Clock.Now())

		if err == nil {
			tp.Seal(deps.Clock.Now())
			return types.Ok(data, deps.Governor.Snapshot(), tp)
		}

		decision := deps.Classifier.Classify(err, tp.Attempts)
		if decision.Hint != nil {
			deps.Governor.Apply(*decision.Hint)
		}
		if decision.Action == retryclassifier.ActionFail {
			msg := decision.Message
			if msg == "" {
				msg = err.Error()
			}
			return fail[T](deps, tp, msg)
		}

		tp.IncrementAttempt()
		log.Debugf("%s: retrying (attempt %d) after %s", deps.Endpoint, tp.Attempts, decision.Delay)
		if err := deps.Clock.Sleep(ctx, decision.Delay); err != nil {
			return fail[T](deps, tp, "Response timeout")
		}
	}
}

func fail[T any](deps Deps, tp *types.TimeProfile, reason string) types.Result[T] {
	tp.Seal(deps.Clock.Now())
	return types.Err[T](reason, deps.Governor.Snapshot(), tp)
}

// FailImmediate builds a sealed Err result for the pre-flight failures that
// never touch the governor or classifier at all (ClientMissing,
// FuturesModeMissing -- spec.md §7).
func FailImmediate[T any](clk clock.Clock, reason string) types.Result[T] {
	now := clk.Now()
	tp := types.NewTimeProfile(now)
	tp.Seal(now)
	return types.Err[T](reason, nil, tp)
}
