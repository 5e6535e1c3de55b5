package governor

import "time"

// BybitLimits is the spec.md §6 numeric table: 550 requests per 5.5s,
// global across all endpoints.
const (
	BybitRequestsPerWindow = 550
	BybitWindow            = 5500 * time.Millisecond
)

// NewBybitLedger returns Bybit's single global sliding-window ledger.
func NewBybitLedger(clock Clock) Governor {
	return newSlidingWindowLedger("requests", BybitRequestsPerWindow, BybitWindow, clock)
}
