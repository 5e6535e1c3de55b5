package governor

import (
	"context"
	"time"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// Coinbase buckets (spec.md §3, §6): private 10/s, public 30/s.
const (
	CoinbasePrivatePerSecond = 10
	CoinbasePublicPerSecond  = 30
)

// CoinbaseBucket selects which of Coinbase's two buckets a call debits.
type CoinbaseBucket string

const (
	CoinbasePrivate CoinbaseBucket = "private"
	CoinbasePublic  CoinbaseBucket = "public"
)

// CoinbaseLedger implements the two-bucket scheme. Per spec.md §9 Open
// Questions, the source's checkLimits always consults the public bucket
// regardless of which bucket name is requested -- that behavior is
// preserved literally here (see DESIGN.md), with the private bucket still
// tracked and exposed via Snapshot for observability even though nothing
// currently debits it through the normal Check path.
type CoinbaseLedger struct {
	private *slidingWindowLedger
	public  *slidingWindowLedger
}

// NewCoinbaseLedger constructs Coinbase's two-bucket ledger.
func NewCoinbaseLedger(clock Clock) *CoinbaseLedger {
	return &CoinbaseLedger{
		private: newSlidingWindowLedger("private", CoinbasePrivatePerSecond, time.Second, clock),
		public:  newSlidingWindowLedger("public", CoinbasePublicPerSecond, time.Second, clock),
	}
}

// Check implements Governor. endpoint is ignored; kind selects a bucket in
// theory (KindRequest==public, KindOrder==private) but both currently route
// to the public bucket, matching the unresolved source behavior.
func (l *CoinbaseLedger) Check(ctx context.Context, endpoint string, kind Kind, weight int) (time.Duration, error) {
	return l.public.Check(ctx, endpoint, kind, weight)
}

// Snapshot implements Governor.
func (l *CoinbaseLedger) Snapshot() []types.Usage {
	return append(l.private.Snapshot(), l.public.Snapshot()...)
}

// Apply implements Governor.
func (l *CoinbaseLedger) Apply(hint GovernorHint) {
	l.public.Apply(hint)
}
