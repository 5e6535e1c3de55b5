package governor

import (
	"context"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// OKX has no global ceiling in this design: every endpoint id gets its own
// bucket lazily, created on first use (spec.md §3: "ad-hoc per-endpoint
// bucket (id -> count, frameStart, queueCounter)").
const (
	okxDefaultLimit  = 20
	okxDefaultWindow = 2 * time.Second
)

// OKXLedger is the ad-hoc per-endpoint ledger.
type OKXLedger struct {
	clock Clock

	mu        sync.Mutex
	endpoints map[string]*slidingWindowLedger
}

// NewOKXLedger constructs OKX's per-endpoint ledger.
func NewOKXLedger(clock Clock) *OKXLedger {
	return &OKXLedger{
		clock:     clock,
		endpoints: make(map[string]*slidingWindowLedger),
	}
}

func (l *OKXLedger) endpointLedger(id string) *slidingWindowLedger {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.endpoints[id]
	if !ok {
		e = newSlidingWindowLedger(id, okxDefaultLimit, okxDefaultWindow, l.clock)
		l.endpoints[id] = e
	}
	return e
}

// Check implements Governor.
func (l *OKXLedger) Check(ctx context.Context, endpoint string, kind Kind, weight int) (time.Duration, error) {
	return l.endpointLedger(endpoint).Check(ctx, endpoint, kind, weight)
}

// Snapshot implements Governor.
func (l *OKXLedger) Snapshot() []types.Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	var usage []types.Usage
	for _, e := range l.endpoints {
		usage = append(usage, e.Snapshot()...)
	}
	return usage
}

// Apply implements Governor. The hint carries no endpoint id, so it is
// applied to every per-endpoint ledger created so far; to affect a single
// endpoint, call Apply on the ledger returned by Endpoint().
func (l *OKXLedger) Apply(hint GovernorHint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.endpoints {
		e.Apply(hint)
	}
}

// Endpoint exposes the per-endpoint ledger directly so a classifier can
// target a single endpoint's saturation without affecting the others.
func (l *OKXLedger) Endpoint(id string) Governor {
	return l.endpointLedger(id)
}
