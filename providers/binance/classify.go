package binance

import (
	"strings"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
)

var (
	classifierOnce sync.Once
	classifier     *retryclassifier.Classifier
)

// orderNotFoundSubstrings flags the "order does not exist" eventual
// consistency response a follow-up getOrder can see immediately after a
// successful create/cancel (spec.md §4.4's Post-create consistency).
var orderNotFoundSubstrings = []string{"order does not exist", "order not found"}

func isOrderNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range orderNotFoundSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// retryableCodes is Binance's retry-on-code set (spec.md §6): clock skew
// (-1021), unknown/disconnected/timeout (-1000,-1001,-1003,-1006,-1007),
// ban-in-effect and rate-limited (-1003 is shared for both weight and IP
// ban signaling), invalid-listen-key-style transient auth blips (-1004),
// -1008 ("server overloaded"), -1015 ("too many orders"), -1099, and a bare
// 502 from the load balancer.
var retryableCodes = map[string]bool{
	"-1021": true, "-1000": true, "-1001": true, "-1003": true,
	"-1004": true, "-1006": true, "-1007": true, "-1008": true,
	"-1015": true, "-1099": true,
}

// banFallbackDelay is the wait applied when a ban message is recognized but
// carries no parseable unban timestamp.
const banFallbackDelay = 30 * time.Second

// Classifier returns the (lazily-built, shared) Binance retry classification
// table (spec.md §4.3/§6).
func Classifier() *retryclassifier.Classifier {
	classifierOnce.Do(func() {
		classifier = retryclassifier.New(retryclassifier.Table{
			RetryCap: retryclassifier.DefaultRetryCap,
			TerminalRules: []retryclassifier.TerminalRule{
				{
					// A bare 403 with no ban-until timestamp is Binance's
					// suspected-IP-block response: fail immediately and
					// saturate the local ledger rather than hammer a
					// blocked IP with further attempts.
					HTTPStatuses: map[int]bool{403: true},
					Hint: func(e *retryclassifier.ExchangeError) *governor.GovernorHint {
						return &governor.GovernorHint{Saturate: true}
					},
				},
			},
			Rules: []retryclassifier.Rule{
				{
					// -1003/-1008 "way too many requests, banned until <ts>"
					// carries its own unban deadline: retry and sleep out
					// the ban instead of failing the call outright.
					Substrings: []string{"banned until"},
					DelayFromError: func(e *retryclassifier.ExchangeError, attempt int) time.Duration {
						until := parseBanTimestamp(e.Message)
						if until.IsZero() {
							return banFallbackDelay
						}
						if d := time.Until(until) + time.Millisecond; d > 0 {
							return d
						}
						return time.Millisecond
					},
					Hint: func(e *retryclassifier.ExchangeError, attempt int) *governor.GovernorHint {
						until := parseBanTimestamp(e.Message)
						if until.IsZero() {
							return &governor.GovernorHint{Saturate: true}
						}
						return &governor.GovernorHint{BanUntil: until}
					},
				},
				{
					Codes: retryableCodes,
					HTTPStatuses: map[int]bool{502: true},
					Substrings: append(append([]string{}, retryclassifier.NetworkFaultSubstrings...), retryclassifier.ServerSaturationSubstrings...),
					Delay: retryclassifier.LinearDelay(300*time.Millisecond, 200*time.Millisecond),
					Hint: func(e *retryclassifier.ExchangeError, attempt int) *governor.GovernorHint {
						if e.Code == "-1003" || e.Code == "-1015" {
							return &governor.GovernorHint{Saturate: true}
						}
						return nil
					},
				},
				{
					Substrings: retryclassifier.ClockSkewSubstrings,
					Delay:      retryclassifier.FlatDelay(100 * time.Millisecond),
				},
			},
			DoubleCapSubstrings: retryclassifier.ClockSkewSubstrings,
		})
	})
	return classifier
}

// parseBanTimestamp extracts the millisecond unix timestamp Binance embeds
// in its -1003 "IP banned until <ms>" message. Returns the zero Time if the
// message doesn't carry one, in which case the caller falls back to
// saturating the ledger instead of recording an exact ban.
func parseBanTimestamp(msg string) time.Time {
	const marker = "banned until "
	idx := indexOf(msg, marker)
	if idx < 0 {
		return time.Time{}
	}
	digits := msg[idx+len(marker):]
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		return time.Time{}
	}
	ms := int64(0)
	for i := 0; i < end; i++ {
		ms = ms*10 + int64(digits[i]-'0')
	}
	return time.UnixMilli(ms)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
