package facade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// fakeGovernor is a minimal in-memory Governor double: Checks queue a
// scripted sequence of waits and records every Apply call.
type fakeGovernor struct {
	waits      []time.Duration
	checkCalls int
	applied    []governor.GovernorHint
}

func (g *fakeGovernor) Check(ctx context.Context, endpoint string, kind governor.Kind, weight int) (time.Duration, error) {
	i := g.checkCalls
	g.checkCalls++
	if i < len(g.waits) {
		return g.waits[i], nil
	}
	return 0, nil
}

func (g *fakeGovernor) Snapshot() []types.Usage { return nil }

func (g *fakeGovernor) Apply(hint governor.GovernorHint) {
	g.applied = append(g.applied, hint)
}

func retryOnceClassifier() *retryclassifier.Classifier {
	return retryclassifier.New(retryclassifier.Table{
		RetryCap: 5,
		Rules: []retryclassifier.Rule{
			{Substrings: []string{"transient"}, Delay: retryclassifier.FlatDelay(time.Millisecond)},
		},
	})
}

func TestDispatchSucceedsOnFirstAttempt(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	gov := &fakeGovernor{}
	deps := Deps{Governor: gov, Classifier: retryOnceClassifier(), Clock: fake, Endpoint: "getOrder"}

	result := Dispatch(context.Background(), deps, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	if !result.IsOk() {
		reason, _ := result.Reason()
		t.Fatalf("Dispatch failed unexpectedly: %s", reason)
	}
	data, _ := result.Data()
	if data != 42 {
		t.Fatalf("Dispatch data = %d, want 42", data)
	}
}

func TestDispatchWaitsOnGovernor(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	gov := &fakeGovernor{waits: []time.Duration{time.Second, 0}}
	deps := Deps{Governor: gov, Classifier: retryOnceClassifier(), Clock: fake, Endpoint: "getOrder"}

	calls := 0
	result := Dispatch(context.Background(), deps, func(ctx context.Context) (int, error) {
		calls++
		return 1, nil
	})

	if !result.IsOk() {
		reason, _ := result.Reason()
		t.Fatalf("Dispatch failed unexpectedly: %s", reason)
	}
	if calls != 1 {
		t.Fatalf("attempt invoked %d times, want 1", calls)
	}
	if gov.checkCalls != 2 {
		t.Fatalf("governor Check invoked %d times, want 2 (one queued wait, one clear)", gov.checkCalls)
	}
}

func TestDispatchRetriesOnClassifiedError(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	gov := &fakeGovernor{}
	deps := Deps{Governor: gov, Classifier: retryOnceClassifier(), Clock: fake, Endpoint: "getOrder"}

	attempts := 0
	result := Dispatch(context.Background(), deps, func(ctx context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, &retryclassifier.ExchangeError{Message: "transient network blip"}
		}
		return 7, nil
	})

	if !result.IsOk() {
		reason, _ := result.Reason()
		t.Fatalf("Dispatch failed unexpectedly: %s", reason)
	}
	if attempts != 3 {
		t.Fatalf("attempt invoked %d times, want 3", attempts)
	}
	data, _ := result.Data()
	if data != 7 {
		t.Fatalf("Dispatch data = %d, want 7", data)
	}
}

func TestDispatchFailsOnTerminalError(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	gov := &fakeGovernor{}
	deps := Deps{Governor: gov, Classifier: retryOnceClassifier(), Clock: fake, Endpoint: "getOrder"}

	attempts := 0
	result := Dispatch(context.Background(), deps, func(ctx context.Context) (int, error) {
		attempts++
		return 0, errors.New("insufficient balance")
	})

	if result.IsOk() {
		t.Fatal("Dispatch succeeded, want a terminal failure")
	}
	reason, _ := result.Reason()
	if reason != "insufficient balance" {
		t.Fatalf("Dispatch reason = %q, want the verbatim business rejection", reason)
	}
	if attempts != 1 {
		t.Fatalf("attempt invoked %d times, want 1 (terminal errors never retry)", attempts)
	}
}

func TestDispatchAppliesGovernorHintOnRetry(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	gov := &fakeGovernor{}
	classifier := retryclassifier.New(retryclassifier.Table{
		RetryCap: 5,
		Rules: []retryclassifier.Rule{
			{
				Substrings: []string{"transient"},
				Delay:      retryclassifier.FlatDelay(time.Millisecond),
				Hint: func(e *retryclassifier.ExchangeError, attempt int) *governor.GovernorHint {
					return &governor.GovernorHint{Saturate: true}
				},
			},
		},
	})
	deps := Deps{Governor: gov, Classifier: classifier, Clock: fake, Endpoint: "getOrder"}

	attempts := 0
	Dispatch(context.Background(), deps, func(ctx context.Context) (int, error) {
		attempts++
		if attempts < 2 {
			return 0, &retryclassifier.ExchangeError{Message: "transient blip"}
		}
		return 1, nil
	})

	if len(gov.applied) != 1 || !gov.applied[0].Saturate {
		t.Fatalf("governor.Apply calls = %+v, want exactly one Saturate hint", gov.applied)
	}
}

func TestDispatchTimesOutOnExcessiveQueueWait(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	gov := &fakeGovernor{waits: []time.Duration{10 * time.Minute}}
	deps := Deps{Governor: gov, Classifier: retryOnceClassifier(), Clock: fake, Endpoint: "getOrder", Timeout: time.Minute}

	result := Dispatch(context.Background(), deps, func(ctx context.Context) (int, error) {
		t.Fatal("attempt should never run when the queue wait exceeds the timeout")
		return 0, nil
	})

	if result.IsOk() {
		t.Fatal("Dispatch succeeded, want a timeout failure")
	}
	reason, _ := result.Reason()
	if reason != "Response timeout" {
		t.Fatalf("Dispatch reason = %q, want \"Response timeout\"", reason)
	}
}

func TestDispatchHonorsContextCancellationDuringRetryDelay(t *testing.T) {
	gov := &fakeGovernor{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	deps := Deps{Governor: gov, Classifier: retryOnceClassifier(), Clock: clock.New(), Endpoint: "getOrder"}

	result := Dispatch(ctx, deps, func(ctx context.Context) (int, error) {
		return 0, &retryclassifier.ExchangeError{Message: "transient blip"}
	})

	if result.IsOk() {
		t.Fatal("Dispatch succeeded, want a cancellation failure")
	}
}

func TestFailImmediateNeverTouchesGovernor(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	result := FailImmediate[int](fake, "Cannot connect to Example")

	if result.IsOk() {
		t.Fatal("FailImmediate returned an Ok result")
	}
	reason, _ := result.Reason()
	if reason != "Cannot connect to Example" {
		t.Fatalf("FailImmediate reason = %q, want the given reason verbatim", reason)
	}
	if result.Usage() != nil {
		t.Fatalf("FailImmediate Usage() = %+v, want nil", result.Usage())
	}
}
