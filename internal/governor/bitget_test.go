package governor

import (
	"context"
	"testing"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
)

func TestBitgetLedgerAllowsUnderBothCeilings(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBitgetLedger(fake)

	wait, err := l.Check(context.Background(), "getOrder", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait != 0 {
		t.Fatalf("Check under both ceilings returned wait = %v, want 0", wait)
	}
}

func TestBitgetLedgerPerEndpointCeilingIndependentPerName(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBitgetLedger(fake)
	ctx := context.Background()

	effective := int(float64(BitgetPerEndpointPerSec) * (1 - BitgetSafetyMargin))
	for i := 0; i < effective; i++ {
		if wait, err := l.Check(ctx, "getOrder", KindRequest, 1); err != nil || wait != 0 {
			t.Fatalf("Check #%d on getOrder = %v, %v; want 0, nil", i, wait, err)
		}
	}
	wait, err := l.Check(ctx, "getOrder", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatalf("Check after exhausting getOrder's per-endpoint window = %v, want > 0", wait)
	}

	// A distinct endpoint name has its own, untouched window.
	if wait, err := l.Check(ctx, "cancelOrder", KindRequest, 1); err != nil || wait != 0 {
		t.Fatalf("Check on a distinct endpoint = %v, %v; want 0, nil", wait, err)
	}
}

func TestBitgetLedgerGlobalSaturationLeavesEndpointUntouched(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBitgetLedger(fake)
	l.Apply(GovernorHint{Saturate: true})

	wait, err := l.Check(context.Background(), "getOrder", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("Check after global Saturate hint should report a positive wait")
	}
}

func TestBitgetLedgerSnapshotIncludesGlobalAndEndpoints(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBitgetLedger(fake)
	if _, err := l.Check(context.Background(), "getOrder", KindRequest, 1); err != nil {
		t.Fatalf("Check error: %v", err)
	}

	usage := l.Snapshot()
	names := map[string]bool{}
	for _, u := range usage {
		names[u.Type] = true
	}
	if !names["global"] {
		t.Error("Snapshot missing the \"global\" usage entry")
	}
	if !names["getOrder"] {
		t.Error("Snapshot missing the per-endpoint \"getOrder\" usage entry")
	}
}
