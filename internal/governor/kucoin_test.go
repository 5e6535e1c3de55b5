package governor

import (
	"context"
	"testing"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
)

func TestKuCoinLedgerCategoriesAreIndependent(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewKuCoinLedger(fake)
	ctx := context.Background()

	budget := kuCoinCategoryBudgets[KuCoinFutures]
	for i := 0; i < budget; i++ {
		if wait, err := l.Check(ctx, string(KuCoinFutures), KindRequest, 1); err != nil || wait != 0 {
			t.Fatalf("Check #%d on futures = %v, %v; want 0, nil", i, wait, err)
		}
	}
	wait, err := l.Check(ctx, string(KuCoinFutures), KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("Check after exhausting the futures category budget should report a positive wait")
	}

	if wait, err := l.Check(ctx, string(KuCoinSpot), KindRequest, 1); err != nil || wait != 0 {
		t.Fatalf("Check on spot category after futures exhaustion = %v, %v; want 0, nil", wait, err)
	}
}

func TestKuCoinLedgerUnknownCategoryFallsBackToPublicBudget(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewKuCoinLedger(fake)
	ctx := context.Background()

	budget := kuCoinCategoryBudgets[KuCoinPublic]
	for i := 0; i < budget; i++ {
		if wait, err := l.Check(ctx, "not-a-real-category", KindRequest, 1); err != nil || wait != 0 {
			t.Fatalf("Check #%d on unknown category = %v, %v; want 0, nil", i, wait, err)
		}
	}
	wait, err := l.Check(ctx, "not-a-real-category", KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("unknown category should fall back to the public budget and eventually saturate")
	}
}

func TestKuCoinLedgerGlobalCeilingAppliesAcrossCategories(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	l := NewKuCoinLedger(fake)
	l.Apply(GovernorHint{Saturate: true})

	wait, err := l.Check(context.Background(), string(KuCoinSpot), KindRequest, 1)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if wait <= 0 {
		t.Fatal("Check after global Saturate hint should report a positive wait regardless of category")
	}
}
