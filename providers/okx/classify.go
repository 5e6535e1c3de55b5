package okx

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

// orderNotFoundSubstrings flags the "order not found" eventual consistency
// response a follow-up getOrder can see immediately after a successful
// create/cancel (spec.md §4.4's Post-create consistency).
var orderNotFoundSubstrings = []string{"order not found"}

func isOrderNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range orderNotFoundSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// retryableCodes is OKX's retry-on-code set (spec.md §6): 1, 50001, 50004,
// 50005, 50011, 50013, 50026, 50057, 50102.
var retryableCodes = map[string]bool{
	"1": true, "50001": true, "50004": true, "50005": true,
	"50011": true, "50013": true, "50026": true, "50057": true, "50102": true,
}

const tooManyRequestsCode = "50011"

// Classifier returns the shared OKX retry classification table.
func Classifier() *retryclassifier.Classifier {
	classifierOnce.Do(func() {
		classifier = retryclassifier.New(retryclassifier.Table{
			RetryCap: retryclassifier.DefaultRetryCap,
			Rules: []retryclassifier.Rule{
				{
					// "50011 (too many requests): (attempt+1) x 10s"
					// (spec.md §4.3's numeric table).
					Codes: map[string]bool{tooManyRequestsCode: true},
					Delay: func(attempt int) time.Duration { return time.Duration(attempt+1) * 10 * time.Second },
					Hint: func(e *retryclassifier.ExchangeError, attempt int) *governor.GovernorHint {
						return &governor.GovernorHint{Saturate: true}
					},
				},
				{
					Codes:        retryableCodes,
					HTTPStatuses: map[int]bool{429: true, 500: true, 502: true, 503: true, 504: true},
					Substrings:   append(append([]string{}, retryclassifier.NetworkFaultSubstrings...), retryclassifier.ServerSaturationSubstrings...),
					Delay:        retryclassifier.LinearDelay(300*time.Millisecond, 200*time.Millisecond),
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
