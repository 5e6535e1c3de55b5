package keyedmutex

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDistinctKeysDoNotContend(t *testing.T) {
	km := New()
	ctx := context.Background()

	releaseA, err := km.Lock(ctx, "a")
	if err != nil {
		t.Fatalf("Lock(a) error: %v", err)
	}
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB, err := km.Lock(ctx, "b")
		if err != nil {
			t.Errorf("Lock(b) error: %v", err)
			return
		}
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Lock(b) blocked on an unrelated held key")
	}
}

func TestSameKeySerializesFIFO(t *testing.T) {
	km := New()
	ctx := context.Background()

	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	release0, err := km.Lock(ctx, "x")
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}

	const waiters = 5
	starts := make([]chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		starts[i] = make(chan struct{})
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			close(starts[i])
			release, err := km.Lock(ctx, "x")
			if err != nil {
				t.Errorf("Lock error: %v", err)
				return
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			release()
		}(i)
		<-starts[i]
		time.Sleep(5 * time.Millisecond) // best-effort ordering of queue entry
	}

	release0()
	wg.Wait()

	if len(order) != waiters {
		t.Fatalf("got %d completions, want %d", len(order), waiters)
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("completion order = %v, want FIFO order 0..%d", order, waiters-1)
		}
	}
}

func TestLockRespectsContextCancellation(t *testing.T) {
	km := New()
	release, err := km.Lock(context.Background(), "y")
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = km.Lock(ctx, "y")
	if err != context.DeadlineExceeded {
		t.Fatalf("Lock returned %v, want context.DeadlineExceeded", err)
	}
}

func TestEntryIsReclaimedAfterRelease(t *testing.T) {
	km := New()
	release, err := km.Lock(context.Background(), "z")
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	release()

	km.mu.Lock()
	_, exists := km.entries["z"]
	km.mu.Unlock()
	if exists {
		t.Fatal("entry for \"z\" was not reclaimed after the sole holder released")
	}
}

func TestNewWithConcurrencyAllowsParallelHolders(t *testing.T) {
	km := NewWithConcurrency(2)
	ctx := context.Background()

	release1, err := km.Lock(ctx, "pool")
	if err != nil {
		t.Fatalf("Lock #1 error: %v", err)
	}
	defer release1()

	done := make(chan struct{})
	go func() {
		release2, err := km.Lock(ctx, "pool")
		if err != nil {
			t.Errorf("Lock #2 error: %v", err)
			return
		}
		release2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second holder could not acquire within the concurrency bound of 2")
	}
}

func TestDecorateLocksAroundFn(t *testing.T) {
	km := New()
	var concurrent int32
	var maxConcurrent int32

	fn := func(ctx context.Context) (int, error) {
		n := atomic.AddInt32(&concurrent, 1)
		if n > atomic.LoadInt32(&maxConcurrent) {
			atomic.StoreInt32(&maxConcurrent, n)
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&concurrent, -1)
		return 42, nil
	}
	decorated := Decorate(km, "shared", fn)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := decorated(context.Background())
			if err != nil || v != 42 {
				t.Errorf("decorated() = %d, %v; want 42, nil", v, err)
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&maxConcurrent) != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxConcurrent)
	}
}
