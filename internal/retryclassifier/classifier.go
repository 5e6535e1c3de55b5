// Package retryclassifier implements the retry/failure-classification
// engine (spec.md component C4): given a failed call's error, decide
// whether to retry (and how long to wait, and what to tell the governor)
// or fail terminally.
package retryclassifier

import (
	"strings"
	"time"

	"github.com/daglabs/gatewaygo/internal/governor"
)

// Action is the classifier's verdict for one failed attempt.
type Action int

const (
	ActionRetry Action = iota
	ActionFail
)

// Decision is what the Facade does next: sleep Delay, optionally apply Hint
// to the governor, and either re-invoke the call (Retry) or wrap Message in
// an Err result (Fail).
type Decision struct {
	Action  Action
	Delay   time.Duration
	Hint    *governor.GovernorHint
	Message string
}

// ExchangeError is the normalized shape every provider's transport layer
// produces from a failed HTTP response: a machine-readable code (provider's
// own vocabulary, may be empty) and the exchange's own message text.
type ExchangeError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *ExchangeError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// ExchangeProblemsMarker prefixes a Fail message when the attempt budget is
// exhausted on a transient error, so upstream systems can distinguish
// connector-level failure from a business rejection (spec.md §4.3, §7).
const ExchangeProblemsMarker = "exchange problems: "

// DelayFn computes the pre-retry delay for a classified error on a given
// zero-based attempt count.
type DelayFn func(attempt int) time.Duration

// Rule is one entry in a provider's classification table.
type Rule struct {
	// Codes is the provider's retry-on-code set (spec.md §6). Matched
	// against ExchangeError.Code exactly.
	Codes map[string]bool
	// Substrings is matched case-insensitively against
	// ExchangeError.Message (spec.md §4.3's "retry-on-message-substring
	// set").
	Substrings []string
	// HTTPStatuses is matched against ExchangeError.HTTPStatus.
	HTTPStatuses map[int]bool
	Delay DelayFn
	// DelayFromError computes the retry delay from the classified error
	// itself (e.g. Binance's "banned until <ts>" message carrying an
	// absolute unban time), taking precedence over Delay when set.
	DelayFromError func(e *ExchangeError, attempt int) time.Duration
	Hint           func(e *ExchangeError, attempt int) *governor.GovernorHint
}

func (r Rule) matches(e *ExchangeError) bool {
	if e.Code != "" && r.Codes != nil && r.Codes[e.Code] {
		return true
	}
	if r.HTTPStatuses != nil && r.HTTPStatuses[e.HTTPStatus] {
		return true
	}
	if len(r.Substrings) > 0 {
		lower := strings.ToLower(e.Message)
		for _, s := range r.Substrings {
			if strings.Contains(lower, strings.ToLower(s)) {
				return true
			}
		}
	}
	return false
}

// TerminalRule is a rule that always fails immediately, optionally applying
// a governor hint first (e.g. Binance 403 suspected IP block).
type TerminalRule struct {
	HTTPStatuses map[int]bool
	Substrings   []string
	Hint         func(e *ExchangeError) *governor.GovernorHint
}

func (r TerminalRule) matches(e *ExchangeError) bool {
	if r.HTTPStatuses != nil && r.HTTPStatuses[e.HTTPStatus] {
		return true
	}
	if len(r.Substrings) > 0 {
		lower := strings.ToLower(e.Message)
		for _, s := range r.Substrings {
			if strings.Contains(lower, strings.ToLower(s)) {
				return true
			}
		}
	}
	return false
}

// Table is a provider's full classification table: network/server
// saturation substrings shared across providers (spec.md §4.3), plus
// provider-specific rules checked first, plus an attempt cap.
type Table struct {
	Rules         []Rule
	TerminalRules []TerminalRule
	RetryCap      int
	// DoubleCapSubstrings names message substrings (clock-skew errors)
	// that double the retry budget, per spec.md §4.3/§7 (KuCoin clock
	// skew case).
	DoubleCapSubstrings []string
}

// Classifier implements the spec.md §4.3 contract for one provider.
type Classifier struct {
	table Table
}

// New builds a Classifier from a provider's Table.
func New(table Table) *Classifier {
	return &Classifier{table: table}
}

// Classify decides what to do with a failed attempt. err is normally (or
// wraps) an *ExchangeError; any other error is treated as one with no code
// and no HTTP status whose message is err.Error(), so it can match only the
// substring-based rules of the table.
func (c *Classifier) Classify(err error, attempt int) Decision {
	ee, ok := asExchangeError(err)
	if !ok {
		ee = &ExchangeError{Message: err.Error()}
	}

	for _, t := range c.table.TerminalRules {
		if t.matches(ee) {
			var hint *governor.GovernorHint
			if t.Hint != nil {
				hint = t.Hint(ee)
			}
			return Decision{Action: ActionFail, Hint: hint, Message: ee.Message}
		}
	}

	cap := c.table.RetryCap
	for _, s := range c.table.DoubleCapSubstrings {
		if strings.Contains(strings.ToLower(ee.Message), strings.ToLower(s)) {
			cap *= 2
			break
		}
	}

	for _, rule := range c.table.Rules {
		if !rule.matches(ee) {
			continue
		}
		if attempt >= cap {
			return Decision{
				Action:  ActionFail,
				Message: ExchangeProblemsMarker + ee.Error(),
			}
		}
		var hint *governor.GovernorHint
		if rule.Hint != nil {
			hint = rule.Hint(ee, attempt)
		}
		delay := time.Duration(0)
		switch {
		case rule.DelayFromError != nil:
			delay = rule.DelayFromError(ee, attempt)
		case rule.Delay != nil:
			delay = rule.Delay(attempt)
		}
		return Decision{Action: ActionRetry, Delay: delay, Hint: hint}
	}

	// Not in any retry set: a business rejection, surfaced verbatim and
	// never retried (spec.md §4.3 "Terminal conditions").
	return Decision{Action: ActionFail, Message: ee.Message}
}

func asExchangeError(err error) (*ExchangeError, bool) {
	type causer interface{ Cause() error }
	for err != nil {
		if ee, ok := err.(*ExchangeError); ok {
			return ee, true
		}
		if u, ok := err.(interface{ Unwrap() error }); ok {
			err = u.Unwrap()
			continue
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
			continue
		}
		break
	}
	return nil, false
}
