// Package governor implements the per-provider rate-limit ledgers (spec.md
// component C3): token/window accounting that returns a wait duration
// instead of blocking, so the facade can stamp TimeProfile queue-wait
// fields around the suspension itself.
package governor

import (
	"context"
	"time"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// Kind distinguishes Binance's two independently-ledgered call classes. For
// providers without this distinction, KindRequest is used uniformly.
type Kind int

const (
	KindRequest Kind = iota
	KindOrder
)

// GovernorHint is a mutation the retry classifier applies to a governor
// after classifying a failure (spec.md §4.3): saturate the current window
// so other inflight callers back off too, or record a server-declared ban.
type GovernorHint struct {
	Saturate  bool
	BanUntil  time.Time // zero means "no ban to record"
	ReconcileHeader *HeaderReconciliation
}

// HeaderReconciliation carries a server-reported counter value the governor
// should overwrite its local tally with (spec.md §4.2, Binance
// X-MBX-USED-WEIGHT-1M / X-MBX-ORDER-COUNT-10S headers).
type HeaderReconciliation struct {
	Kind         Kind
	ServerCount  int
	InflightDelta int
}

// Governor is the contract every per-provider ledger implements.
type Governor interface {
	// Check debits weight against endpoint's ledger (a Binance-style
	// ledger also uses kind to pick the right sub-ledger). It returns 0
	// and debits immediately if there's room, or a positive wait
	// duration, in which case the caller must sleep that long and call
	// Check again. The window that reports the wait is not debited; in
	// ledgers made of several windows (Binance, Bitget, KuCoin), windows
	// consulted before it keep the debit they already took.
	Check(ctx context.Context, endpoint string, kind Kind, weight int) (time.Duration, error)

	// Snapshot returns a fractional-usage readout for observability
	// (spec.md §4.2 "Usage readout"). It holds the ledger's own short
	// internal lock while it reads the counters.
	Snapshot() []types.Usage

	// Apply applies a retry classifier's governor hint (saturate the
	// window, record a ban, reconcile against server-reported counters).
	Apply(hint GovernorHint)
}
