package governor

import (
	"context"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// Bitget limits (spec.md §3, §6): a global per-minute window plus
// independent per-endpoint-name 1-second windows, both shaved by a safety
// margin (effective ceiling = nominal * (1 - margin)).
const (
	BitgetGlobalPerMinute   = 6000
	BitgetPerEndpointPerSec = 20
	BitgetSafetyMargin      = 0.10
)

// BitgetLedger implements the dual-level scheme. Check returns the wait of
// the first window that is full (global, then per-endpoint); it does not
// compare the two waits, so a longer per-endpoint wait shows up only on the
// Check that follows the global wait.
type BitgetLedger struct {
	clock  Clock
	global *slidingWindowLedger

	mu        sync.Mutex
	endpoints map[string]*slidingWindowLedger
}

// NewBitgetLedger constructs Bitget's dual-level ledger.
func NewBitgetLedger(clock Clock) *BitgetLedger {
	effectiveGlobal := int(float64(BitgetGlobalPerMinute) * (1 - BitgetSafetyMargin))
	return &BitgetLedger{
		clock:     clock,
		global:    newSlidingWindowLedger("global", effectiveGlobal, time.Minute, clock),
		endpoints: make(map[string]*slidingWindowLedger),
	}
}

func (l *BitgetLedger) endpointLedger(name string) *slidingWindowLedger {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.endpoints[name]
	if !ok {
		effective := int(float64(BitgetPerEndpointPerSec) * (1 - BitgetSafetyMargin))
		e = newSlidingWindowLedger(name, effective, time.Second, l.clock)
		l.endpoints[name] = e
	}
	return e
}

// Check implements Governor. The global window is consulted first: if it
// has no room, the per-endpoint window is left untouched so its budget
// isn't wasted on a call that will have to wait anyway.
func (l *BitgetLedger) Check(ctx context.Context, endpoint string, kind Kind, weight int) (time.Duration, error) {
	globalWait, err := l.global.Check(ctx, endpoint, kind, weight)
	if err != nil {
		return 0, err
	}
	if globalWait > 0 {
		return globalWait, nil
	}
	perEndpoint := l.endpointLedger(endpoint)
	return perEndpoint.Check(ctx, endpoint, kind, weight)
}

// Snapshot implements Governor.
func (l *BitgetLedger) Snapshot() []types.Usage {
	usage := l.global.Snapshot()
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.endpoints {
		usage = append(usage, e.Snapshot()...)
	}
	return usage
}

// Apply implements Governor. A classifier-issued saturation applies to the
// global window; per-endpoint windows recover naturally since they are
// much shorter-lived.
func (l *BitgetLedger) Apply(hint GovernorHint) {
	l.global.Apply(hint)
}
