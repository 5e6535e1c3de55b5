package retryclassifier

import "time"

// NetworkFaultSubstrings are the connection-level failures common to every
// provider (spec.md §4.3).
var NetworkFaultSubstrings = []string{
	"fetch failed", "etimedout", "econnreset", "eai_again",
	"socket hang up", "getaddrinfo", "tls handshake", "gateway timeout",
}

// ServerSaturationSubstrings are the server-overload messages common to
// every provider (spec.md §4.3).
var ServerSaturationSubstrings = []string{
	"internal system error", "server error", "server timeout",
	"too many visits", "too many requests", "possible ip block",
	"unknown error", "request throttled by system-level protection",
}

// ClockSkewSubstrings are the recvWindow/timestamp-drift messages common to
// every provider (spec.md §4.3).
var ClockSkewSubstrings = []string{
	"outside of the recvwindow", "recv_window",
	"kc-api-timestamp", "request timestamp expired",
}

// FlatDelay returns a DelayFn that always waits d, regardless of attempt.
func FlatDelay(d time.Duration) DelayFn {
	return func(int) time.Duration { return d }
}

// LinearDelay returns a DelayFn computing base + attempt*step.
func LinearDelay(base, step time.Duration) DelayFn {
	return func(attempt int) time.Duration { return base + time.Duration(attempt)*step }
}

// AttemptMultiple returns a DelayFn computing (attempt+1)*unit.
func AttemptMultiple(unit time.Duration) DelayFn {
	return func(attempt int) time.Duration { return time.Duration(attempt+1) * unit }
}

// DefaultRetryCap is the default attempt budget per call (spec.md §4.3/§7).
const DefaultRetryCap = 10
