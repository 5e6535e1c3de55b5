package retryclassifier

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func testTable() Table {
	return Table{
		RetryCap: 3,
		TerminalRules: []TerminalRule{
			{Substrings: []string{"ip banned"}},
		},
		Rules: []Rule{
			{
				Codes: map[string]bool{"-1021": true},
				Delay: FlatDelay(time.Second),
			},
			{
				HTTPStatuses: map[int]bool{429: true},
				Substrings:   ServerSaturationSubstrings,
				Delay:        LinearDelay(100*time.Millisecond, 50*time.Millisecond),
			},
		},
		DoubleCapSubstrings: ClockSkewSubstrings,
	}
}

func TestClassifyTerminalRule(t *testing.T) {
	c := New(testTable())
	d := c.Classify(&ExchangeError{Message: "Account is IP banned for trading"}, 0)
	if d.Action != ActionFail {
		t.Fatalf("Classify terminal rule: Action = %v, want ActionFail", d.Action)
	}
}

func TestClassifyRetryableCode(t *testing.T) {
	c := New(testTable())
	d := c.Classify(&ExchangeError{Code: "-1021", Message: "Timestamp outside of the recvWindow"}, 0)
	if d.Action != ActionRetry {
		t.Fatalf("Classify retryable code: Action = %v, want ActionRetry", d.Action)
	}
	if d.Delay != time.Second {
		t.Fatalf("Classify retryable code: Delay = %v, want 1s", d.Delay)
	}
}

func TestClassifyRetryableHTTPStatus(t *testing.T) {
	c := New(testTable())
	d := c.Classify(&ExchangeError{HTTPStatus: 429, Message: "too many requests"}, 2)
	if d.Action != ActionRetry {
		t.Fatalf("Classify 429: Action = %v, want ActionRetry", d.Action)
	}
	want := 100*time.Millisecond + 2*50*time.Millisecond
	if d.Delay != want {
		t.Fatalf("Classify 429: Delay = %v, want %v", d.Delay, want)
	}
}

func TestClassifyUnclassifiedErrorFailsVerbatim(t *testing.T) {
	c := New(testTable())
	d := c.Classify(&ExchangeError{Message: "Insufficient balance"}, 0)
	if d.Action != ActionFail {
		t.Fatalf("Classify business rejection: Action = %v, want ActionFail", d.Action)
	}
	if d.Message != "Insufficient balance" {
		t.Fatalf("Classify business rejection: Message = %q, want the verbatim exchange message", d.Message)
	}
}

func TestClassifyRetryCapExhaustion(t *testing.T) {
	c := New(testTable())
	d := c.Classify(&ExchangeError{HTTPStatus: 429, Message: "too many requests"}, 3)
	if d.Action != ActionFail {
		t.Fatalf("Classify at cap: Action = %v, want ActionFail", d.Action)
	}
	if d.Message == "" || d.Message[:len(ExchangeProblemsMarker)] != ExchangeProblemsMarker {
		t.Fatalf("Classify at cap: Message = %q, want it prefixed with %q", d.Message, ExchangeProblemsMarker)
	}
}

func TestClassifyDoubleCapOnClockSkew(t *testing.T) {
	c := New(testTable())
	// attempt 3 would exhaust the plain cap of 3, but the clock-skew
	// substring doubles it to 6 for this call.
	d := c.Classify(&ExchangeError{HTTPStatus: 429, Message: "too many requests, outside of the recvWindow"}, 3)
	if d.Action != ActionRetry {
		t.Fatalf("Classify with clock-skew double cap: Action = %v, want ActionRetry", d.Action)
	}
}

func TestClassifyUnwrapsStdlibWrappedError(t *testing.T) {
	c := New(testTable())
	wrapped := fmt.Errorf("request failed: %w", &ExchangeError{HTTPStatus: 429, Message: "too many requests"})
	d := c.Classify(wrapped, 0)
	if d.Action != ActionRetry {
		t.Fatalf("Classify with fmt.Errorf-wrapped error: Action = %v, want ActionRetry", d.Action)
	}
}

func TestClassifyUnwrapsPkgErrorsCauseChain(t *testing.T) {
	c := New(testTable())
	wrapped := errors.Wrap(&ExchangeError{HTTPStatus: 429, Message: "too many requests"}, "context")
	d := c.Classify(wrapped, 0)
	if d.Action != ActionRetry {
		t.Fatalf("Classify with pkg/errors-wrapped error: Action = %v, want ActionRetry", d.Action)
	}
}

func TestClassifyNonExchangeErrorTreatedAsMessageOnly(t *testing.T) {
	c := New(testTable())
	d := c.Classify(errors.New("too many requests from this address"), 0)
	if d.Action != ActionRetry {
		t.Fatalf("Classify plain error matching a shared substring: Action = %v, want ActionRetry", d.Action)
	}
}

func TestExchangeErrorMessage(t *testing.T) {
	withCode := &ExchangeError{Code: "-1021", Message: "bad timestamp"}
	if got, want := withCode.Error(), "-1021: bad timestamp"; got != want {
		t.Errorf("ExchangeError.Error() = %q, want %q", got, want)
	}
	withoutCode := &ExchangeError{Message: "bad timestamp"}
	if got, want := withoutCode.Error(), "bad timestamp"; got != want {
		t.Errorf("ExchangeError.Error() without code = %q, want %q", got, want)
	}
}
