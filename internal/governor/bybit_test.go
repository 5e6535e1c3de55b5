package governor

import (
	"context"
	"testing"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
)

func TestBybitLedgerAllowsUnderCeiling(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBybitLedger(fake)
	ctx := context.Background()

	for i := 0; i < BybitRequestsPerWindow; i++ {
		if wait, err := l.Check(ctx, "", KindRequest, 1); err != nil || wait != 0 {
			t.Fatalf("Check #%d = %v, %v; want 0, nil", i, wait, err)
		}
	}
}

func TestBybitLedgerBacksOffOverCeiling(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBybitLedger(fake)
	ctx := context.Background()

	for i := 0; i < BybitRequestsPerWindow; i++ {
		if _, err := l.Check(ctx, "", KindRequest, 1); err != nil {
			t.Fatalf("Check #%d error: %v", i, err)
		}
	}

	wait, err := l.Check(ctx, "", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("Check after exhausting the window should report a positive wait")
	}
}

func TestBybitLedgerWindowRollsOver(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBybitLedger(fake)
	ctx := context.Background()

	for i := 0; i < BybitRequestsPerWindow; i++ {
		if _, err := l.Check(ctx, "", KindRequest, 1); err != nil {
			t.Fatalf("Check #%d error: %v", i, err)
		}
	}
	if wait, err := l.Check(ctx, "", KindRequest, 1); err != nil || wait <= 0 {
		t.Fatalf("Check over ceiling before rollover = %v, %v; want a positive wait", wait, err)
	}

	fake.Advance(BybitWindow + time.Second)

	if wait, err := l.Check(ctx, "", KindRequest, 1); err != nil || wait != 0 {
		t.Fatalf("Check after the window rolled over = %v, %v; want 0, nil", wait, err)
	}
}

func TestBybitLedgerSaturateHintBlocksFurtherRequests(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBybitLedger(fake)
	ctx := context.Background()

	l.Apply(GovernorHint{Saturate: true})

	wait, err := l.Check(ctx, "", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("Check after a Saturate hint should report a positive wait")
	}
}

func TestBybitLedgerBanUntilBlocksChecks(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBybitLedger(fake)
	ctx := context.Background()

	banUntil := fake.Now().Add(time.Minute)
	l.Apply(GovernorHint{BanUntil: banUntil})

	wait, err := l.Check(ctx, "", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("Check under an active ban should report a positive wait")
	}

	fake.Advance(time.Minute + time.Second)
	if wait, err := l.Check(ctx, "", KindRequest, 1); err != nil || wait != 0 {
		t.Fatalf("Check after the ban expired = %v, %v; want 0, nil", wait, err)
	}
}

func TestBybitLedgerSnapshotReportsFraction(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewBybitLedger(fake)
	ctx := context.Background()

	half := BybitRequestsPerWindow / 2
	for i := 0; i < half; i++ {
		if _, err := l.Check(ctx, "", KindRequest, 1); err != nil {
			t.Fatalf("Check #%d error: %v", i, err)
		}
	}

	usage := l.Snapshot()
	if len(usage) != 1 {
		t.Fatalf("Snapshot returned %d entries, want 1", len(usage))
	}
	if usage[0].Fraction <= 0 || usage[0].Fraction >= 1 {
		t.Fatalf("Snapshot fraction = %v, want strictly between 0 and 1 after debiting half the window", usage[0].Fraction)
	}
}
