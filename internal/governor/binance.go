package governor

import (
	"context"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// safetyMultiplier is applied to every debited unit before comparing
// against a ceiling, leaving headroom for clock skew and server-side
// weight we didn't account for locally (spec.md §4.2).
const safetyMultiplier = 1.2

// BinanceDomain selects which of Binance's four independently-ledgered
// products a ledger governs.
type BinanceDomain string

const (
	DomainSpotCom BinanceDomain = "spot-com"
	DomainSpotUS  BinanceDomain = "spot-us"
	DomainUSDM    BinanceDomain = "usdm"
	DomainCoinM   BinanceDomain = "coinm"
)

// BinanceLimits is the numeric ceiling table for one domain (spec.md §4.2,
// §6). NewLimitCutover is the date the spot-com weight ceiling rose from
// 950 to 4500/min; it's only consulted for DomainSpotCom.
type BinanceLimits struct {
	RawRequestsPerMinute int
	WeightPerMinute      int
	WeightPerMinuteAfterCutover int
	NewLimitCutover      time.Time
	OrdersPerWindow      int
	OrderWindow          time.Duration
}

// DefaultBinanceLimits returns the spec.md §4.2/§6 numeric table for domain.
func DefaultBinanceLimits(domain BinanceDomain) BinanceLimits {
	switch domain {
	case DomainSpotCom:
		return BinanceLimits{
			RawRequestsPerMinute:        1800,
			WeightPerMinute:             950,
			WeightPerMinuteAfterCutover: 4500,
			NewLimitCutover:             time.Date(2023, 8, 25, 0, 0, 0, 0, time.UTC),
			OrdersPerWindow:             80,
			OrderWindow:                 11 * time.Second,
		}
	case DomainSpotUS:
		return BinanceLimits{
			RawRequestsPerMinute: 1800,
			WeightPerMinute:      950,
			WeightPerMinuteAfterCutover: 950,
			OrdersPerWindow:      80,
			OrderWindow:          11 * time.Second,
		}
	case DomainUSDM:
		return BinanceLimits{
			RawRequestsPerMinute: 1800,
			WeightPerMinute:      2000,
			WeightPerMinuteAfterCutover: 2000,
			OrdersPerWindow:      250,
			OrderWindow:          10 * time.Second,
		}
	case DomainCoinM:
		return BinanceLimits{
			RawRequestsPerMinute: 1800,
			WeightPerMinute:      2000,
			WeightPerMinuteAfterCutover: 2000,
			OrdersPerWindow:      1000,
			OrderWindow:          60 * time.Second,
		}
	}
	panic("governor: unknown binance domain " + string(domain))
}

// window is a single rolling-window counter with the escalating queue
// penalty described in spec.md §4.2: each overflowing caller in the same
// window waits windowRemaining+queuePenalty, and queuePenalty grows by 1ms
// per overflow so concurrent waiters wake up staggered instead of as a
// thundering herd at the window boundary. queuePenalty resets to 0 when the
// window rolls.
type window struct {
	size         time.Duration
	start        time.Time
	count        int
	queuePenalty time.Duration
}

func (w *window) roll(now time.Time) {
	if w.start.IsZero() || now.Sub(w.start) >= w.size {
		w.start = now
		w.count = 0
		w.queuePenalty = 0
	}
}

// tryDebit returns (0, true) and debits n units if the window has room for
// n*safetyMultiplier under ceiling; otherwise returns the wait the caller
// must observe and bumps queuePenalty, debiting nothing.
func (w *window) tryDebit(now time.Time, n, ceiling int) (time.Duration, bool) {
	w.roll(now)
	debited := int(float64(n) * safetyMultiplier)
	if w.count+debited <= ceiling {
		w.count += debited
		return 0, true
	}
	remaining := w.size - now.Sub(w.start)
	wait := remaining + w.queuePenalty
	w.queuePenalty += time.Millisecond
	return wait, false
}

// Clock is the minimal time source the governor needs; satisfied by
// internal/clock.Clock, duplicated here as a one-method interface so this
// package doesn't need to import clock for just Now().
type Clock interface {
	Now() time.Time
}

// BinanceLedger is the per-domain, per-API-key rate ledger (spec.md §3
// "Governor state", §4.2 "Binance algorithm"). Each binance.Client builds
// its own instance in New; ledgers are not shared between clients, even
// clients of the same domain and key in one process.
type BinanceLedger struct {
	domain BinanceDomain
	limits BinanceLimits
	clock  Clock
	log    btclogger

	mu            sync.Mutex
	raw           window
	weight        window
	order         window
	bannedUntil   time.Time
}

type btclogger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NewBinanceLedger constructs a ledger for domain using clock as its time
// source.
func NewBinanceLedger(domain BinanceDomain, clock Clock) *BinanceLedger {
	limits := DefaultBinanceLimits(domain)
	return &BinanceLedger{
		domain: domain,
		limits: limits,
		clock:  clock,
		log:    obs.Logger(obs.SubsystemGovernor),
		raw:    window{size: time.Minute},
		weight: window{size: time.Minute},
		order:  window{size: limits.OrderWindow},
	}
}

func (l *BinanceLedger) weightCeiling(now time.Time) int {
	if l.domain == DomainSpotCom && !now.Before(l.limits.NewLimitCutover) {
		return l.limits.WeightPerMinuteAfterCutover
	}
	return l.limits.WeightPerMinute
}

// Check implements Governor.
func (l *BinanceLedger) Check(_ context.Context, _ string, kind Kind, weight int) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()

	if !l.bannedUntil.IsZero() && now.Before(l.bannedUntil) {
		return l.bannedUntil.Sub(now), nil
	}

	if wait, ok := l.raw.tryDebit(now, 1, l.limits.RawRequestsPerMinute); !ok {
		return wait, nil
	}
	if wait, ok := l.weight.tryDebit(now, weight, l.weightCeiling(now)); !ok {
		return wait, nil
	}
	if kind == KindOrder {
		if wait, ok := l.order.tryDebit(now, 1, l.limits.OrdersPerWindow); !ok {
			return wait, nil
		}
	}
	return 0, nil
}

// Snapshot implements Governor.
func (l *BinanceLedger) Snapshot() []types.Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock.Now()
	weightCeiling := l.weightCeiling(now)
	usage := []types.Usage{
		{Type: "raw", Fraction: fraction(l.raw.count, l.limits.RawRequestsPerMinute)},
		{Type: "weight", Fraction: fraction(l.weight.count, weightCeiling)},
	}
	if l.limits.OrdersPerWindow > 0 {
		usage = append(usage, types.Usage{Type: "orders", Fraction: fraction(l.order.count, l.limits.OrdersPerWindow)})
	}
	return usage
}

func fraction(count, ceiling int) float64 {
	if ceiling <= 0 {
		return 0
	}
	return float64(count) / float64(ceiling)
}

// Apply implements Governor.
func (l *BinanceLedger) Apply(hint GovernorHint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if hint.Saturate {
		const saturated = 100000
		l.weight.count = saturated
		l.order.count = saturated
		l.log.Warnf("binance %s: ledger saturated by retry classifier", l.domain)
	}
	if !hint.BanUntil.IsZero() {
		l.bannedUntil = hint.BanUntil
		l.log.Warnf("binance %s: banned until %s", l.domain, hint.BanUntil)
	}
	if hint.ReconcileHeader != nil {
		rec := hint.ReconcileHeader
		newCount := rec.ServerCount + rec.InflightDelta
		switch rec.Kind {
		case KindOrder:
			l.order.count = newCount
		default:
			l.weight.count = newCount
		}
		l.log.Debugf("binance %s: reconciled against server header -> %d", l.domain, newCount)
	}
}
