package governor

import (
	"context"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// KuCoin categories (spec.md §3): each has its own weight budget per time
// frame, plus a global ceiling across all categories.
type KuCoinCategory string

const (
	KuCoinPublic   KuCoinCategory = "public"
	KuCoinSpot     KuCoinCategory = "spot"
	KuCoinFutures  KuCoinCategory = "futures"
	KuCoinManage   KuCoinCategory = "management"
)

const KuCoinGlobalPerMinute = 6000

// kuCoinCategoryBudgets is the per-category weight budget per 30s frame.
var kuCoinCategoryBudgets = map[KuCoinCategory]int{
	KuCoinPublic:  2000,
	KuCoinSpot:    4000,
	KuCoinFutures: 2000,
	KuCoinManage:  2000,
}

const kuCoinCategoryWindow = 30 * time.Second

// KuCoinLedger implements the category-bucket scheme.
type KuCoinLedger struct {
	clock  Clock
	global *slidingWindowLedger

	mu         sync.Mutex
	categories map[KuCoinCategory]*slidingWindowLedger
}

// NewKuCoinLedger constructs KuCoin's category-bucket ledger.
func NewKuCoinLedger(clock Clock) *KuCoinLedger {
	return &KuCoinLedger{
		clock:      clock,
		global:     newSlidingWindowLedger("global", KuCoinGlobalPerMinute, time.Minute, clock),
		categories: make(map[KuCoinCategory]*slidingWindowLedger),
	}
}

func (l *KuCoinLedger) categoryLedger(cat KuCoinCategory) *slidingWindowLedger {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.categories[cat]
	if !ok {
		budget, ok2 := kuCoinCategoryBudgets[cat]
		if !ok2 {
			budget = kuCoinCategoryBudgets[KuCoinPublic]
		}
		c = newSlidingWindowLedger(string(cat), budget, kuCoinCategoryWindow, l.clock)
		l.categories[cat] = c
	}
	return c
}

// Check implements Governor. endpoint is interpreted as the category name.
func (l *KuCoinLedger) Check(ctx context.Context, endpoint string, kind Kind, weight int) (time.Duration, error) {
	globalWait, err := l.global.Check(ctx, endpoint, kind, weight)
	if err != nil {
		return 0, err
	}
	if globalWait > 0 {
		return globalWait, nil
	}
	cat := l.categoryLedger(KuCoinCategory(endpoint))
	return cat.Check(ctx, endpoint, kind, weight)
}

// Snapshot implements Governor.
func (l *KuCoinLedger) Snapshot() []types.Usage {
	usage := l.global.Snapshot()
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.categories {
		usage = append(usage, c.Snapshot()...)
	}
	return usage
}

// Apply implements Governor.
func (l *KuCoinLedger) Apply(hint GovernorHint) {
	l.global.Apply(hint)
}
