package governor

import (
	"context"
	"testing"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
)

// TestCoinbaseLedgerCheckAlwaysDebitsPublicBucket documents and locks in
// the preserved Open Question (see DESIGN.md): Check routes every call to
// the public bucket regardless of the requested Kind, so a private-bucket
// ceiling (10/s) is never actually enforced through the normal Check path.
func TestCoinbaseLedgerCheckAlwaysDebitsPublicBucket(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewCoinbaseLedger(fake)
	ctx := context.Background()

	for i := 0; i < CoinbasePrivatePerSecond+5; i++ {
		if wait, err := l.Check(ctx, "", KindOrder, 1); err != nil || wait != 0 {
			if i < CoinbasePublicPerSecond {
				t.Fatalf("Check #%d with KindOrder = %v, %v; want 0, nil (public bucket has %d/s room)", i, wait, err, CoinbasePublicPerSecond)
			}
		}
	}

	usage := l.Snapshot()
	var privateFraction float64
	for _, u := range usage {
		if u.Type == "private" {
			privateFraction = u.Fraction
		}
	}
	if privateFraction != 0 {
		t.Fatalf("private bucket fraction after KindOrder calls = %v, want 0 (nothing debits it through Check)", privateFraction)
	}
}

func TestCoinbaseLedgerSnapshotExposesBothBuckets(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewCoinbaseLedger(fake)

	usage := l.Snapshot()
	names := map[string]bool{}
	for _, u := range usage {
		names[u.Type] = true
	}
	if !names["private"] || !names["public"] {
		t.Fatalf("Snapshot = %+v, want entries for both \"private\" and \"public\"", usage)
	}
}

func TestCoinbaseLedgerPublicBucketSaturates(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewCoinbaseLedger(fake)
	ctx := context.Background()

	for i := 0; i < CoinbasePublicPerSecond; i++ {
		if wait, err := l.Check(ctx, "", KindRequest, 1); err != nil || wait != 0 {
			t.Fatalf("Check #%d = %v, %v; want 0, nil", i, wait, err)
		}
	}
	wait, err := l.Check(ctx, "", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("Check after exhausting the public bucket should report a positive wait")
	}
}
