package governor

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// slidingWindowLedger adapts golang.org/x/time/rate's continuous-refill
// token bucket to the Governor contract's check()->waitDuration shape: a
// reservation is taken, and if it isn't immediately payable it's cancelled
// and its delay handed back to the caller instead of blocking. This backs
// every provider whose published limit is a flat "N per window" without
// Binance's multi-ledger weight/order/ban bookkeeping (Bybit's global
// window, one of Bitget's two windows, KuCoin's per-category buckets, OKX's
// per-endpoint buckets, and Coinbase's two buckets).
type slidingWindowLedger struct {
	name    string
	limiter *rate.Limiter
	burst   int
	clock   Clock

	mu             sync.Mutex
	saturatedUntil time.Time
}

func newSlidingWindowLedger(name string, limit int, window time.Duration, clock Clock) *slidingWindowLedger {
	return &slidingWindowLedger{
		name:    name,
		limiter: rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit),
		burst:   limit,
		clock:   clock,
	}
}

func (l *slidingWindowLedger) checkN(now time.Time, n int) time.Duration {
	l.mu.Lock()
	if !l.saturatedUntil.IsZero() && now.Before(l.saturatedUntil) {
		wait := l.saturatedUntil.Sub(now)
		l.mu.Unlock()
		return wait
	}
	l.mu.Unlock()

	r := l.limiter.ReserveN(now, n)
	if !r.OK() {
		// n exceeds burst capacity outright; back off one second
		// rather than spin.
		return time.Second
	}
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
	}
	return delay
}

// Check implements Governor for single-bucket providers (endpoint/kind
// ignored).
func (l *slidingWindowLedger) Check(_ context.Context, _ string, _ Kind, weight int) (time.Duration, error) {
	n := weight
	if n <= 0 {
		n = 1
	}
	return l.checkN(l.clock.Now(), n), nil
}

func (l *slidingWindowLedger) Snapshot() []types.Usage {
	now := l.clock.Now()
	tokens := l.limiter.TokensAt(now)
	used := float64(l.burst) - tokens
	if used < 0 {
		used = 0
	}
	return []types.Usage{{Type: l.name, Fraction: fraction(int(used), l.burst)}}
}

func (l *slidingWindowLedger) Apply(hint GovernorHint) {
	if hint.Saturate {
		l.mu.Lock()
		l.saturatedUntil = l.clock.Now().Add(time.Duration(float64(l.burst)/float64(l.limiter.Limit())) * time.Second)
		l.mu.Unlock()
	}
	if !hint.BanUntil.IsZero() {
		l.mu.Lock()
		if hint.BanUntil.After(l.saturatedUntil) {
			l.saturatedUntil = hint.BanUntil
		}
		l.mu.Unlock()
	}
}
